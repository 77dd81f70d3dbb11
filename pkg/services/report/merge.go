package report

import (
	"sort"
	"strconv"

	"github.com/de-tools/biz-atlas/pkg/models/domain"
)

// growthRate is the one growth computation used everywhere: percentage
// change versus the previous period, 0 when the previous period is
// empty or missing.
func growthRate(current, previous float64) float64 {
	if previous <= 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// percentOf returns value as a percentage of total, 0 for an empty
// total.
func percentOf(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return value / total * 100
}

// safeDiv returns numerator/denominator, 0 for an empty denominator.
func safeDiv(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// attachGrowth sets GrowthRate on each record from a previous-period
// value map keyed by entity key. Entities absent from the previous
// period grow by 0.
func attachGrowth(records []domain.DimensionMetric, previous map[string]float64) {
	for i := range records {
		records[i].GrowthRate = growthRate(records[i].Value, previous[records[i].Key])
	}
}

// attachShare sets Share on each record as its percentage of the
// summed Value across all records.
func attachShare(records []domain.DimensionMetric) {
	var total float64
	for _, rec := range records {
		total += rec.Value
	}
	for i := range records {
		records[i].Share = percentOf(records[i].Value, total)
	}
}

// sortByValueDesc orders records by Value descending with a
// deterministic tie-break on Key ascending. Numeric keys compare as
// numbers so "10" ranks after "9".
func sortByValueDesc(records []domain.DimensionMetric) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Value != records[j].Value {
			return records[i].Value > records[j].Value
		}
		return keyLess(records[i].Key, records[j].Key)
	})
}

func keyLess(a, b string) bool {
	na, errA := strconv.ParseInt(a, 10, 64)
	nb, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		return na < nb
	}
	return a < b
}

// topN returns the first n records by Value descending, ties broken by
// Key ascending. The input is not modified.
func topN(records []domain.DimensionMetric, n int) []domain.DimensionMetric {
	ranked := make([]domain.DimensionMetric, len(records))
	copy(ranked, records)
	sortByValueDesc(ranked)
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// foldChildren attaches child records to their parents by parent key.
// Parents without children keep an empty (non-nil) child list; orphan
// children are dropped.
func foldChildren(parents []domain.DimensionMetric, children map[string][]domain.DimensionMetric) {
	for i := range parents {
		if kids, ok := children[parents[i].Key]; ok {
			parents[i].Children = kids
		} else {
			parents[i].Children = []domain.DimensionMetric{}
		}
	}
}

// rebucket collapses records into named buckets via a fixed mapping of
// record key to bucket name. Additive metrics (Value, Count) are
// summed; rate metrics (Rate, GrowthRate) are averaged across input
// buckets, not summed. Keys missing from the mapping fall into the
// fallback bucket. Output is ordered by Value descending, name
// ascending on ties.
func rebucket(records []domain.DimensionMetric, mapping map[string]string, fallback string) []domain.DimensionMetric {
	type bucket struct {
		domain.DimensionMetric
		members int
	}
	buckets := make(map[string]*bucket)
	var order []string
	for _, rec := range records {
		name, ok := mapping[rec.Key]
		if !ok {
			name = fallback
		}
		b, exists := buckets[name]
		if !exists {
			b = &bucket{DimensionMetric: domain.DimensionMetric{Key: name, Name: name}}
			buckets[name] = b
			order = append(order, name)
		}
		b.Value += rec.Value
		b.Count += rec.Count
		b.Rate += rec.Rate
		b.GrowthRate += rec.GrowthRate
		b.members++
	}

	out := make([]domain.DimensionMetric, 0, len(order))
	for _, name := range order {
		b := buckets[name]
		b.Rate = safeDiv(b.Rate, float64(b.members))
		b.GrowthRate = safeDiv(b.GrowthRate, float64(b.members))
		out = append(out, b.DimensionMetric)
	}
	sortByValueDesc(out)
	return out
}

// classifyStock splits items into low and high stock: low when the
// summed quantity is under the item's own safety-stock level, high
// when above twice that level. Thresholds come from the product
// configuration, never a global constant.
func classifyStock(items []domain.StockItem) (low, high []domain.StockItem) {
	low = make([]domain.StockItem, 0)
	high = make([]domain.StockItem, 0)
	for _, item := range items {
		switch {
		case item.Quantity < item.SafetyStock:
			low = append(low, item)
		case item.Quantity > 2*item.SafetyStock:
			high = append(high, item)
		}
	}
	return low, high
}

// zeroFillTrend projects sparse period buckets onto the full label
// sequence of the selected window so chart series are stable. With no
// label sequence (all-time windows) the observed points are returned
// in label order.
func zeroFillTrend(points map[string]domain.TrendPoint, labels []string) []domain.TrendPoint {
	if labels == nil {
		out := make([]domain.TrendPoint, 0, len(points))
		for _, p := range points {
			out = append(out, p)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
		return out
	}
	out := make([]domain.TrendPoint, 0, len(labels))
	for _, label := range labels {
		p, ok := points[label]
		if !ok {
			p = domain.TrendPoint{Label: label}
		}
		out = append(out, p)
	}
	return out
}

// pageOf derives the pagination block for a listing response.
func pageOf(spec domain.PageSpec, totalRecords int64) domain.Page {
	totalPages := int(totalRecords) / spec.PageSize
	if int(totalRecords)%spec.PageSize != 0 {
		totalPages++
	}
	return domain.Page{
		Page:         spec.Page,
		PageSize:     spec.PageSize,
		TotalRecords: totalRecords,
		TotalPages:   totalPages,
	}
}
