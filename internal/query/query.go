// Package query translates listing request parameters into storage-agnostic
// search/sort specs and pagination metadata.
package query

import "strings"

// DefaultSortField is used when the sort parameter names no field.
const DefaultSortField = "email"

// Spec describes a parsed search/sort request. A Spec with an empty
// SearchField matches every record.
type Spec struct {
	SearchField string
	SearchValue string
	SortField   string
	SortDesc    bool
}

// HasSearch reports whether the spec carries a usable search filter.
func (s Spec) HasSearch() bool {
	return s.SearchField != "" && s.SearchValue != ""
}

// ParseSpec builds a Spec from the raw search and sort query parameters.
//
// search is split once on the first ':' into a field name and a value; the
// resulting filter is a case-insensitive substring match on that one field.
// A search without a colon, or with an empty field or value, yields an
// unfiltered spec rather than an error.
//
// sort is split once on ':' into a field and a direction; "desc" sorts
// descending, anything else ascending. The field defaults to email.
func ParseSpec(search, sort string) Spec {
	spec := Spec{SortField: DefaultSortField}

	if field, value, ok := strings.Cut(search, ":"); ok {
		spec.SearchField = field
		spec.SearchValue = value
	}

	if sort != "" {
		field, direction, _ := strings.Cut(sort, ":")
		if field != "" {
			spec.SortField = field
		}
		spec.SortDesc = direction == "desc"
	}

	return spec
}

// Page holds pagination metadata derived from a total record count.
type Page struct {
	TotalPages  int
	HasPrevious bool
	HasNext     bool
	Skip        int64
}

// Paginate computes page metadata for a listing of count records split into
// pages of pageSize, positioned at pageNumber (1-based). Page numbers beyond
// the last page are not rejected; they produce an empty page with
// HasNext=false.
func Paginate(count int64, pageNumber, pageSize int) Page {
	if pageSize < 1 {
		pageSize = 1
	}
	if pageNumber < 1 {
		pageNumber = 1
	}

	totalPages := int((count + int64(pageSize) - 1) / int64(pageSize))

	return Page{
		TotalPages:  totalPages,
		HasPrevious: pageNumber > 1,
		HasNext:     pageNumber < totalPages,
		Skip:        int64(pageNumber-1) * int64(pageSize),
	}
}
