package protocol

import "time"

// UpdateObservationRequest is a subset of Observation for updating an
// existing report. Publication state is not changed through this request;
// the publish and unpublish routes handle that.
type UpdateObservationRequest struct {
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
	// ImageIDs are the images that should be attached after the update.
	ImageIDs []string `json:"imageIds,omitempty"`
}
