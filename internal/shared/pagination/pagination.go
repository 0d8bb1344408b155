// Package pagination carries the page envelope shared by the listing use cases.
package pagination

// DefaultPageSize applies when a request does not specify a page size.
const DefaultPageSize = 10

// MaxPageSize caps the page size a caller may request.
const MaxPageSize = 100

// Request is a zero-based page request.
type Request struct {
	Page     int
	PageSize int
}

// Normalize clamps the request into valid bounds.
func (r Request) Normalize() Request {
	if r.Page < 0 {
		r.Page = 0
	}
	if r.PageSize <= 0 {
		r.PageSize = DefaultPageSize
	}
	if r.PageSize > MaxPageSize {
		r.PageSize = MaxPageSize
	}
	return r
}

// Offset returns the number of rows to skip.
func (r Request) Offset() int {
	return r.Page * r.PageSize
}

// Page holds one page of results plus the totals needed by clients to walk
// every page. TotalCurrentResults is the row count of this page only.
type Page[T any] struct {
	TotalResults        int64 `json:"totalResults"`
	TotalCurrentResults int   `json:"totalCurrentResults"`
	Page                int   `json:"page"`
	PageSize            int   `json:"pageSize"`
	Results             []T   `json:"results"`
}

// NewPage assembles the envelope around an already-fetched slice.
func NewPage[T any](results []T, total int64, req Request) Page[T] {
	return Page[T]{
		TotalResults:        total,
		TotalCurrentResults: len(results),
		Page:                req.Page,
		PageSize:            req.PageSize,
		Results:             results,
	}
}

// Header is the X-Pagination response header payload.
type Header struct {
	TotalResults int64 `json:"totalResults"`
	TotalPages   int   `json:"totalPages"`
	Page         int   `json:"page"`
	PageSize     int   `json:"pageSize"`
	HasNext      bool  `json:"hasNext"`
	HasPrevious  bool  `json:"hasPrevious"`
}

// NewHeader derives the header payload from the page envelope.
func NewHeader[T any](page Page[T]) Header {
	totalPages := 0
	if page.PageSize > 0 {
		totalPages = int((page.TotalResults + int64(page.PageSize) - 1) / int64(page.PageSize))
	}
	return Header{
		TotalResults: page.TotalResults,
		TotalPages:   totalPages,
		Page:         page.Page,
		PageSize:     page.PageSize,
		HasNext:      page.Page+1 < totalPages,
		HasPrevious:  page.Page > 0,
	}
}
