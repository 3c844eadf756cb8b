package protocol

import "time"

// Image is the metadata for an uploaded photo. The content stream itself is
// retrieved from the image content route.
type Image struct {
	// ID is the unique identifier for this image.
	ID string `json:"id"`
	// OwnedBy is the user that uploaded this image.
	OwnedBy string `json:"ownedBy"`
	// FileName is the original client-side filename.
	FileName string `json:"fileName"`
	// ContentType indicates the mime-type of the image contents.
	ContentType string `json:"contentType"`
	// ContentSize denotes the length of the content stream, in bytes.
	ContentSize int64 `json:"contentSize"`
	// ObservationID is the owning observation, empty while unattached.
	ObservationID string `json:"observationId,omitempty"`
	// CreatedDate is the timestamp of when the image was uploaded.
	CreatedDate time.Time `json:"createdDate"`
}
