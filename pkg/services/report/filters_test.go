package report

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/de-tools/biz-atlas/pkg/models/domain"
)

func TestNormalizeFilters_Defaults(t *testing.T) {
	f := NormalizeFilters(url.Values{})

	assert.Equal(t, domain.DefaultDateRange, f.DateRange)
	assert.Equal(t, 1, f.Page.Page)
	assert.Equal(t, 10, f.Page.PageSize)
	assert.Empty(t, f.Category)
	assert.Empty(t, f.Search)
}

func TestNormalizeFilters_DateRange(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected domain.DateRange
	}{
		{name: "absent falls back to latest year", raw: "", expected: domain.DateRange2014},
		{name: "year", raw: "2012", expected: domain.DateRange2012},
		{name: "span", raw: "2011-2014", expected: domain.DateRangeSpan},
		{name: "quarter is case insensitive", raw: "Q3", expected: domain.DateRangeQ3},
		{name: "all", raw: "all", expected: domain.DateRangeAll},
		{name: "unknown means no date filter", raw: "last-tuesday", expected: domain.DateRangeAll},
		{name: "whitespace is trimmed", raw: "  2013 ", expected: domain.DateRange2013},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NormalizeFilters(url.Values{"dateRange": {tt.raw}})
			assert.Equal(t, tt.expected, f.DateRange)
		})
	}
}

func TestNormalizeFilters_Pagination(t *testing.T) {
	tests := []struct {
		name     string
		page     string
		pageSize string
		expPage  int
		expSize  int
	}{
		{name: "valid values pass through", page: "3", pageSize: "25", expPage: 3, expSize: 25},
		{name: "garbage falls back", page: "abc", pageSize: "xyz", expPage: 1, expSize: 10},
		{name: "zero and negative fall back", page: "0", pageSize: "-5", expPage: 1, expSize: 10},
		{name: "page size is capped", page: "2", pageSize: "5000", expPage: 2, expSize: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NormalizeFilters(url.Values{"page": {tt.page}, "pageSize": {tt.pageSize}})
			assert.Equal(t, tt.expPage, f.Page.Page)
			assert.Equal(t, tt.expSize, f.Page.PageSize)
		})
	}
}

func TestNormalizeFilters_CaseHandling(t *testing.T) {
	f := NormalizeFilters(url.Values{
		"status":   {" Shipped "},
		"sortBy":   {"PRICE"},
		"category": {"Bikes"},
		"search":   {"  mountain "},
	})

	assert.Equal(t, "shipped", f.Status)
	assert.Equal(t, "price", f.SortBy)
	assert.Equal(t, "Bikes", f.Category, "dimension values keep their case")
	assert.Equal(t, "mountain", f.Search)
}

func TestDimensionValue_AllMeansAbsent(t *testing.T) {
	assert.Empty(t, dimensionValue("all"))
	assert.Empty(t, dimensionValue("All"))
	assert.Equal(t, "Bikes", dimensionValue("Bikes"))
}
