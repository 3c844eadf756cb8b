package protocol

import "time"

// Observation is the base structure for a citizen report as exposed over the
// API. Draft observations are only returned to their owner and to moderators.
type Observation struct {
	// ID is the unique identifier for this observation.
	ID string `json:"id"`
	// Title is a short summary provided by the reporter.
	Title string `json:"title"`
	// Description is the free text body of the report.
	Description string `json:"description"`
	// Latitude is the WGS84 latitude of the observed location.
	Latitude float64 `json:"latitude"`
	// Longitude is the WGS84 longitude of the observed location.
	Longitude float64 `json:"longitude"`
	// ObservedDate is when the reporter says the observation happened.
	ObservedDate time.Time `json:"observedDate"`
	// OwnedBy is the user that created this observation.
	OwnedBy string `json:"ownedBy"`
	// Published indicates whether this observation is visible to everyone.
	Published bool `json:"published"`
	// CreatedDate is the timestamp of when the observation was created.
	CreatedDate time.Time `json:"createdDate"`
	// ModifiedDate is the timestamp of when the observation was last changed.
	ModifiedDate time.Time `json:"modifiedDate"`
	// ImageIDs are identifiers of images attached to this observation.
	ImageIDs []string `json:"imageIds,omitempty"`
}
