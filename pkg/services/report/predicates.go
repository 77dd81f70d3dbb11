package report

import (
	"strings"
	"time"

	"github.com/de-tools/biz-atlas/pkg/models/domain"
)

// Fragment is one boolean clause with its bound parameter values.
// User-supplied text only ever enters Args; Clause is always assembled
// from fixed literals and placeholders.
type Fragment struct {
	Clause string
	Args   []any
}

type window struct {
	start time.Time
	end   time.Time // exclusive
}

func ymd(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// dateWindows is the fixed lookup from the enumerated date ranges to
// their half-open [start, end) windows. DateRangeAll is deliberately
// absent: all-time reports carry no date clause.
var dateWindows = map[domain.DateRange]window{
	domain.DateRange2011: {ymd(2011, 1, 1), ymd(2012, 1, 1)},
	domain.DateRange2012: {ymd(2012, 1, 1), ymd(2013, 1, 1)},
	domain.DateRange2013: {ymd(2013, 1, 1), ymd(2014, 1, 1)},
	domain.DateRange2014: {ymd(2014, 1, 1), ymd(2015, 1, 1)},
	domain.DateRangeSpan: {ymd(2011, 1, 1), ymd(2015, 1, 1)},
	domain.DateRangeQ1:   {ymd(2014, 1, 1), ymd(2014, 4, 1)},
	domain.DateRangeQ2:   {ymd(2014, 4, 1), ymd(2014, 7, 1)},
	domain.DateRangeQ3:   {ymd(2014, 7, 1), ymd(2014, 10, 1)},
	domain.DateRangeQ4:   {ymd(2014, 10, 1), ymd(2015, 1, 1)},
}

// previousWindows derives the comparison window for growth metrics:
// a year maps to the prior year, a quarter to the preceding quarter.
// The multi-year span and all-time have no meaningful predecessor.
var previousWindows = map[domain.DateRange]window{
	domain.DateRange2011: {ymd(2010, 1, 1), ymd(2011, 1, 1)},
	domain.DateRange2012: {ymd(2011, 1, 1), ymd(2012, 1, 1)},
	domain.DateRange2013: {ymd(2012, 1, 1), ymd(2013, 1, 1)},
	domain.DateRange2014: {ymd(2013, 1, 1), ymd(2014, 1, 1)},
	domain.DateRangeQ1:   {ymd(2013, 10, 1), ymd(2014, 1, 1)},
	domain.DateRangeQ2:   {ymd(2014, 1, 1), ymd(2014, 4, 1)},
	domain.DateRangeQ3:   {ymd(2014, 4, 1), ymd(2014, 7, 1)},
	domain.DateRangeQ4:   {ymd(2014, 7, 1), ymd(2014, 10, 1)},
}

// dateClause restricts col to the current window. ok is false when the
// range applies no date filter.
func dateClause(col string, dr domain.DateRange) (Fragment, bool) {
	w, ok := dateWindows[dr]
	if !ok {
		return Fragment{}, false
	}
	return windowClause(col, w), true
}

// prevDateClause restricts col to the previous-period window. ok is
// false when no previous period exists; callers must then report
// growth as 0 rather than comparing against nothing.
func prevDateClause(col string, dr domain.DateRange) (Fragment, bool) {
	w, ok := previousWindows[dr]
	if !ok {
		return Fragment{}, false
	}
	return windowClause(col, w), true
}

func windowClause(col string, w window) Fragment {
	return Fragment{
		Clause: col + " >= ? AND " + col + " < ?",
		Args:   []any{w.start, w.end},
	}
}

// hasPreviousPeriod reports whether growth metrics are computable for
// the range.
func hasPreviousPeriod(dr domain.DateRange) bool {
	_, ok := previousWindows[dr]
	return ok
}

// monthLabels returns the "YYYY-MM" buckets covered by the range, used
// to zero-fill trend series. Nil for all-time.
func monthLabels(dr domain.DateRange) []string {
	w, ok := dateWindows[dr]
	if !ok {
		return nil
	}
	var labels []string
	for t := w.start; t.Before(w.end); t = t.AddDate(0, 1, 0) {
		labels = append(labels, t.Format("2006-01"))
	}
	return labels
}

// eqClause binds value as a parameter against a fixed column literal.
// Callers pass compile-time column names only.
func eqClause(col, value string) Fragment {
	return Fragment{Clause: col + " = ?", Args: []any{value}}
}

// likeEscaper neutralizes LIKE metacharacters in search terms so the
// term is matched literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// searchClause matches the bound term as a literal infix against each
// column. ok is false for an empty term.
func searchClause(term string, cols ...string) (Fragment, bool) {
	if term == "" || len(cols) == 0 {
		return Fragment{}, false
	}
	pattern := "%" + likeEscaper.Replace(term) + "%"
	parts := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols))
	for _, col := range cols {
		parts = append(parts, col+" LIKE ?")
		args = append(args, pattern)
	}
	return Fragment{Clause: "(" + strings.Join(parts, " OR ") + ")", Args: args}, true
}

// salesOrderStatuses and purchaseOrderStatuses are the fixed status
// vocabularies of the operational schema. Unknown names apply no
// filter.
var salesOrderStatuses = map[string]int{
	"in-process":  1,
	"approved":    2,
	"backordered": 3,
	"rejected":    4,
	"shipped":     5,
	"cancelled":   6,
}

var purchaseOrderStatuses = map[string]int{
	"pending":  1,
	"approved": 2,
	"rejected": 3,
	"complete": 4,
}

var salesOrderStatusNames = invertStatus(salesOrderStatuses)
var purchaseOrderStatusNames = invertStatus(purchaseOrderStatuses)

func invertStatus(m map[string]int) map[int64]string {
	out := make(map[int64]string, len(m))
	for name, code := range m {
		out[int64(code)] = name
	}
	return out
}

func statusClause(col, name string, vocabulary map[string]int) (Fragment, bool) {
	code, ok := vocabulary[name]
	if !ok {
		return Fragment{}, false
	}
	return Fragment{Clause: col + " = ?", Args: []any{code}}, true
}

// where joins fragments with AND into a WHERE clause; empty input
// yields an empty clause and no args.
func where(frags ...Fragment) (string, []any) {
	parts := make([]string, 0, len(frags))
	var args []any
	for _, f := range frags {
		if f.Clause == "" {
			continue
		}
		parts = append(parts, f.Clause)
		args = append(args, f.Args...)
	}
	if len(parts) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(parts, " AND "), args
}
