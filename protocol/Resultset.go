package protocol

// Resultset provides a summation of an accompanying array of items from a
// request with a page number and size. For example, if the request is for
// page 3 of observations with 20 per page and 56 match, then TotalRows=56,
// PageCount=3, PageNumber=3, PageSize=20 and PageRows=16.
type Resultset struct {
	// TotalRows is the total number of items matching the query.
	TotalRows int `json:"totalRows"`
	// PageCount is the total rows divided by page size, rounded up.
	PageCount int `json:"pageCount"`
	// PageNumber is the requested page number for this resultset.
	PageNumber int `json:"pageNumber"`
	// PageSize is the requested page size for this resultset.
	PageSize int `json:"pageSize"`
	// PageRows is the number of items in this page, never more than PageSize.
	PageRows int `json:"pageRows"`
}
