package report

import (
	"github.com/de-tools/biz-atlas/pkg/models/domain"
	"github.com/de-tools/biz-atlas/pkg/models/store"
)

// dimensionRows lifts grouped aggregate rows into merged dimension
// records. countCol may be empty when the query has no count metric.
func dimensionRows(rs store.ResultSet, keyCol, nameCol, valueCol, countCol string) []domain.DimensionMetric {
	out := make([]domain.DimensionMetric, 0, len(rs))
	for _, row := range rs {
		rec := domain.DimensionMetric{
			Key:   row.String(keyCol),
			Name:  row.String(nameCol),
			Value: row.Float(valueCol),
		}
		if countCol != "" {
			rec.Count = row.Int(countCol)
		}
		out = append(out, rec)
	}
	return out
}

// valueByKey indexes one numeric column by entity key, the lookup side
// of a previous-period join.
func valueByKey(rs store.ResultSet, keyCol, valueCol string) map[string]float64 {
	out := make(map[string]float64, len(rs))
	for _, row := range rs {
		out[row.String(keyCol)] = row.Float(valueCol)
	}
	return out
}

// trendRows indexes period buckets by label for zero-filling.
func trendRows(rs store.ResultSet, labelCol, valueCol, countCol string) map[string]domain.TrendPoint {
	out := make(map[string]domain.TrendPoint, len(rs))
	for _, row := range rs {
		p := domain.TrendPoint{
			Label: row.String(labelCol),
			Value: row.Float(valueCol),
		}
		if countCol != "" {
			p.Count = row.Int(countCol)
		}
		out[p.Label] = p
	}
	return out
}

// firstRow returns the single row of a summary query, or an empty row
// when the store returned nothing (all accessors then read zero).
func firstRow(rs store.ResultSet) store.Row {
	if len(rs) == 0 {
		return store.Row{}
	}
	return rs[0]
}
