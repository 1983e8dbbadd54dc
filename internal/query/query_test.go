package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSpec_SearchWithColumn(t *testing.T) {
	spec := ParseSpec("email:bob", "")

	assert.True(t, spec.HasSearch())
	assert.Equal(t, "email", spec.SearchField)
	assert.Equal(t, "bob", spec.SearchValue)
}

func TestParseSpec_SearchWithoutColon(t *testing.T) {
	spec := ParseSpec("bob", "")

	assert.False(t, spec.HasSearch())
}

func TestParseSpec_SearchEmptyValue(t *testing.T) {
	spec := ParseSpec("email:", "")

	assert.False(t, spec.HasSearch())
}

func TestParseSpec_SortDefaults(t *testing.T) {
	spec := ParseSpec("", "")

	assert.Equal(t, "email", spec.SortField)
	assert.False(t, spec.SortDesc)
}

func TestParseSpec_Sort(t *testing.T) {
	tests := []struct {
		name     string
		sort     string
		field    string
		sortDesc bool
	}{
		{name: "descending", sort: "name:desc", field: "name", sortDesc: true},
		{name: "ascending", sort: "name:asc", field: "name", sortDesc: false},
		{name: "unknown direction is ascending", sort: "name:sideways", field: "name", sortDesc: false},
		{name: "missing direction is ascending", sort: "name", field: "name", sortDesc: false},
		{name: "missing field keeps default", sort: ":desc", field: "email", sortDesc: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := ParseSpec("", tt.sort)

			assert.Equal(t, tt.field, spec.SortField)
			assert.Equal(t, tt.sortDesc, spec.SortDesc)
		})
	}
}

func TestPaginate_LastPage(t *testing.T) {
	page := Paginate(23, 3, 10)

	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.HasPrevious)
	assert.False(t, page.HasNext)
	assert.Equal(t, int64(20), page.Skip)
}

func TestPaginate_EmptyCollection(t *testing.T) {
	page := Paginate(0, 1, 10)

	assert.Equal(t, 0, page.TotalPages)
	assert.False(t, page.HasPrevious)
	assert.False(t, page.HasNext)
	assert.Equal(t, int64(0), page.Skip)
}

func TestPaginate_MiddlePage(t *testing.T) {
	page := Paginate(100, 5, 10)

	assert.Equal(t, 10, page.TotalPages)
	assert.True(t, page.HasPrevious)
	assert.True(t, page.HasNext)
	assert.Equal(t, int64(40), page.Skip)
}

func TestPaginate_BeyondLastPage(t *testing.T) {
	page := Paginate(23, 9, 10)

	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.HasPrevious)
	assert.False(t, page.HasNext)
	assert.Equal(t, int64(80), page.Skip)
}
