package protocol

// ObservationResultset encapsulates a page of observations along with
// resultset metric information exposing page size, page number, total rows,
// and page count from the data store.
type ObservationResultset struct {
	// Resultset contains meta information about the resultset.
	Resultset
	// Observations contains the list of observations in this page of results.
	Observations []Observation `json:"observations,omitempty"`
}
