package dao

import "testing"

func TestPagingRequestNormalized(t *testing.T) {
	cases := []struct {
		name       string
		in         PagingRequest
		pageNumber int
		pageSize   int
		offset     int
	}{
		{"zero value gets defaults", PagingRequest{}, 1, 100, 0},
		{"negative page clamps to first", PagingRequest{PageNumber: -3, PageSize: 10}, 1, 10, 0},
		{"oversized page clamps", PagingRequest{PageNumber: 1, PageSize: 100000}, 1, 100, 0},
		{"third page offsets", PagingRequest{PageNumber: 3, PageSize: 25}, 3, 25, 50},
	}
	for _, c := range cases {
		got := c.in.normalized()
		if got.PageNumber != c.pageNumber {
			t.Errorf("%s: expected page %d, got %d", c.name, c.pageNumber, got.PageNumber)
		}
		if got.PageSize != c.pageSize {
			t.Errorf("%s: expected size %d, got %d", c.name, c.pageSize, got.PageSize)
		}
		if got.offset() != c.offset {
			t.Errorf("%s: expected offset %d, got %d", c.name, c.offset, got.offset())
		}
	}
}
