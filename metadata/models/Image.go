package models

import "time"

// Image is an uploaded photo that may be attached to an observation. The
// image row holds metadata only; the bytes live in the content store under
// StorageKey.
type Image struct {
	// ID is the unique identifier of the image.
	ID string `db:"id"`
	// OwnedBy identifies the user that uploaded the image.
	OwnedBy string `db:"ownedBy"`
	// FileName is the original client-side filename.
	FileName string `db:"fileName"`
	// ContentType is the MIME type declared at upload.
	ContentType string `db:"contentType"`
	// ContentSize is the size in bytes of the stored content.
	ContentSize int64 `db:"contentSize"`
	// StorageKey is the key of the content in the object store.
	StorageKey string `db:"storageKey"`
	// ObservationID is the owning observation, empty while the image is an
	// unattached upload.
	ObservationID NullableString `db:"observationId"`
	// CreatedDate is when the record was created.
	CreatedDate time.Time `db:"createdDate"`
}
