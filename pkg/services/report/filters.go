package report

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/de-tools/biz-atlas/pkg/models/domain"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 100
)

// knownDateRanges is the closed set of accepted dateRange values. Any
// other value means "no date filter"; an absent value means the most
// recent complete year.
var knownDateRanges = map[string]domain.DateRange{
	"2011":      domain.DateRange2011,
	"2012":      domain.DateRange2012,
	"2013":      domain.DateRange2013,
	"2014":      domain.DateRange2014,
	"2011-2014": domain.DateRangeSpan,
	"q1":        domain.DateRangeQ1,
	"q2":        domain.DateRangeQ2,
	"q3":        domain.DateRangeQ3,
	"q4":        domain.DateRangeQ4,
	"all":       domain.DateRangeAll,
}

// NormalizeFilters turns raw request parameters into a FilterSet.
// Malformed values never error; they fall back to documented defaults.
// Search and dimension values stay opaque here — binding them into a
// query is the predicate builder's job.
func NormalizeFilters(params url.Values) domain.FilterSet {
	return domain.FilterSet{
		DateRange:  normalizeDateRange(params.Get("dateRange")),
		Category:   strings.TrimSpace(params.Get("category")),
		Vendor:     strings.TrimSpace(params.Get("vendor")),
		Status:     strings.ToLower(strings.TrimSpace(params.Get("status"))),
		Territory:  strings.TrimSpace(params.Get("territory")),
		Department: strings.TrimSpace(params.Get("department")),
		Search:     strings.TrimSpace(params.Get("search")),
		SortBy:     strings.ToLower(strings.TrimSpace(params.Get("sortBy"))),
		Page: domain.PageSpec{
			Page:     parsePositiveInt(params.Get("page"), defaultPage, 0),
			PageSize: parsePositiveInt(params.Get("pageSize"), defaultPageSize, maxPageSize),
		},
	}
}

func normalizeDateRange(raw string) domain.DateRange {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return domain.DefaultDateRange
	}
	if dr, ok := knownDateRanges[value]; ok {
		return dr
	}
	return domain.DateRangeAll
}

// parsePositiveInt clamps non-numeric or non-positive input to def and
// caps the result at max when max > 0.
func parsePositiveInt(raw string, def, max int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return def
	}
	if max > 0 && n > max {
		return max
	}
	return n
}

// "all" in a dimension filter means the filter is absent.
func dimensionValue(raw string) string {
	if strings.EqualFold(raw, "all") {
		return ""
	}
	return raw
}
