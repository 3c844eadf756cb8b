package models

import "time"

// Observation is a geotagged citizen report. Observations are created in a
// draft state visible only to their owner and moderators, and become visible
// to everyone once a moderator publishes them.
type Observation struct {
	// ID is the unique identifier of the observation.
	ID string `db:"id"`
	// Title is a short summary provided by the reporter.
	Title string `db:"title"`
	// Description is the free text body of the report.
	Description string `db:"description"`
	// Latitude is the WGS84 latitude of the observed location.
	Latitude float64 `db:"latitude"`
	// Longitude is the WGS84 longitude of the observed location.
	Longitude float64 `db:"longitude"`
	// ObservedDate is when the reporter says the observation happened.
	ObservedDate time.Time `db:"observedDate"`
	// OwnedBy identifies the user that created the observation.
	OwnedBy string `db:"ownedBy"`
	// Published indicates whether a moderator has made this observation
	// visible to anonymous callers.
	Published bool `db:"published"`
	// CreatedDate is when the record was created.
	CreatedDate time.Time `db:"createdDate"`
	// ModifiedDate is when the record was last changed.
	ModifiedDate time.Time `db:"modifiedDate"`
	// ImageIDs are identifiers of images attached to this observation.
	ImageIDs []string `db:"-"`
}

// ObservationResultset wraps a page of observations along with totals so
// callers can page through listings.
type ObservationResultset struct {
	// TotalRows is the total matching rows regardless of paging.
	TotalRows int
	// PageNumber is the requested page, starting at 1.
	PageNumber int
	// PageSize is the requested page size.
	PageSize int
	// Observations holds the rows for this page.
	Observations []Observation
}
