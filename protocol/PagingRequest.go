package protocol

import (
	"net/url"
	"strconv"
)

// PagingRequest supports a request constrained to a given page number and
// size.
type PagingRequest struct {
	// PageNumber is the requested page number for this request.
	PageNumber int `json:"pageNumber"`
	// PageSize is the requested page size for this request.
	PageSize int `json:"pageSize"`
}

// NewPagingRequest reads pageNumber and pageSize from parsed query
// parameters, falling back to the first page of 20 when absent or invalid.
func NewPagingRequest(values url.Values) PagingRequest {
	pr := PagingRequest{PageNumber: 1, PageSize: 20}
	if v, err := strconv.Atoi(values.Get("pageNumber")); err == nil && v > 0 {
		pr.PageNumber = v
	}
	if v, err := strconv.Atoi(values.Get("pageSize")); err == nil && v > 0 {
		pr.PageSize = v
	}
	return pr
}
