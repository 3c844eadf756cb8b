package protocol

import "time"

// CreateObservationRequest is a subset of Observation for creating a new
// report. Observations are always created as drafts owned by the caller.
type CreateObservationRequest struct {
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
	// ImageIDs are previously uploaded images to attach. Each image must be
	// owned by the caller and not yet attached to another observation.
	ImageIDs []string `json:"imageIds,omitempty"`
}
