package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/biz-atlas/pkg/models/domain"
)

func TestGrowthRate(t *testing.T) {
	assert.InDelta(t, 25.0, growthRate(125, 100), 0.001)
	assert.InDelta(t, -50.0, growthRate(50, 100), 0.001)
	assert.Zero(t, growthRate(100, 0), "empty previous period never divides")
	assert.Zero(t, growthRate(100, -10))
}

func TestPercentOf(t *testing.T) {
	assert.InDelta(t, 40.0, percentOf(20, 50), 0.001)
	assert.Zero(t, percentOf(20, 0))
}

func TestAttachGrowth(t *testing.T) {
	records := []domain.DimensionMetric{
		{Key: "1", Value: 200},
		{Key: "2", Value: 80},
		{Key: "3", Value: 50},
	}
	attachGrowth(records, map[string]float64{"1": 100, "2": 100})

	assert.InDelta(t, 100.0, records[0].GrowthRate, 0.001)
	assert.InDelta(t, -20.0, records[1].GrowthRate, 0.001)
	assert.Zero(t, records[2].GrowthRate, "entity absent from previous period grows by 0")
}

func TestAttachShare(t *testing.T) {
	records := []domain.DimensionMetric{
		{Key: "a", Value: 75},
		{Key: "b", Value: 25},
	}
	attachShare(records)
	assert.InDelta(t, 75.0, records[0].Share, 0.001)
	assert.InDelta(t, 25.0, records[1].Share, 0.001)

	empty := []domain.DimensionMetric{{Key: "a"}, {Key: "b"}}
	attachShare(empty)
	assert.Zero(t, empty[0].Share)
}

func TestTopN_DeterministicTieBreak(t *testing.T) {
	records := []domain.DimensionMetric{
		{Key: "9", Value: 10},
		{Key: "2", Value: 10},
		{Key: "5", Value: 30},
		{Key: "1", Value: 10},
	}

	ranked := topN(records, 3)

	require.Len(t, ranked, 3)
	assert.Equal(t, "5", ranked[0].Key)
	assert.Equal(t, "1", ranked[1].Key, "equal values rank by key ascending")
	assert.Equal(t, "2", ranked[2].Key)
	assert.Equal(t, "9", records[0].Key, "input order is untouched")
}

func TestTopN_NumericKeysCompareAsNumbers(t *testing.T) {
	records := []domain.DimensionMetric{
		{Key: "10", Value: 10},
		{Key: "9", Value: 10},
	}
	ranked := topN(records, 2)
	assert.Equal(t, "9", ranked[0].Key)
	assert.Equal(t, "10", ranked[1].Key)
}

func TestTopN_ShorterThanN(t *testing.T) {
	records := []domain.DimensionMetric{{Key: "a", Value: 1}}
	assert.Len(t, topN(records, 5), 1)
}

func TestFoldChildren(t *testing.T) {
	parents := []domain.DimensionMetric{
		{Key: "1", Name: "Bikes"},
		{Key: "2", Name: "Accessories"},
	}
	children := map[string][]domain.DimensionMetric{
		"1": {{Key: "11", Name: "Road Bikes"}, {Key: "12", Name: "Mountain Bikes"}},
		"9": {{Key: "91", Name: "Orphan"}},
	}

	foldChildren(parents, children)

	assert.Len(t, parents[0].Children, 2)
	assert.NotNil(t, parents[1].Children, "childless parent keeps an empty list")
	assert.Empty(t, parents[1].Children)
}

func TestRebucket(t *testing.T) {
	territories := []domain.DimensionMetric{
		{Key: "US", Value: 100, Count: 10, GrowthRate: 20},
		{Key: "CA", Value: 50, Count: 5, GrowthRate: 10},
		{Key: "FR", Value: 30, Count: 3, GrowthRate: 6},
		{Key: "JP", Value: 20, Count: 2, GrowthRate: 4},
	}

	regions := rebucket(territories, regionsByCountry, regionFallback)

	require.Len(t, regions, 3)
	assert.Equal(t, "North America", regions[0].Name)
	assert.InDelta(t, 150.0, regions[0].Value, 0.001, "additive metrics sum")
	assert.EqualValues(t, 15, regions[0].Count)
	assert.InDelta(t, 15.0, regions[0].GrowthRate, 0.001, "rate metrics average")
	assert.Equal(t, "Europe", regions[1].Name)
	assert.Equal(t, "Other", regions[2].Name, "unmapped countries fall back")
	assert.InDelta(t, 20.0, regions[2].Value, 0.001)
}

func TestClassifyStock(t *testing.T) {
	items := []domain.StockItem{
		{ProductID: 1, Quantity: 5, SafetyStock: 10},
		{ProductID: 2, Quantity: 10, SafetyStock: 10},
		{ProductID: 3, Quantity: 15, SafetyStock: 10},
		{ProductID: 4, Quantity: 20, SafetyStock: 10},
		{ProductID: 5, Quantity: 21, SafetyStock: 10},
		{ProductID: 6, Quantity: 3, SafetyStock: 2},
	}

	low, high := classifyStock(items)

	require.Len(t, low, 1)
	assert.EqualValues(t, 1, low[0].ProductID, "below its own safety level")
	require.Len(t, high, 1)
	assert.EqualValues(t, 5, high[0].ProductID, "above twice its own safety level")
}

func TestClassifyStock_EmptyListsAreNotNil(t *testing.T) {
	low, high := classifyStock(nil)
	assert.NotNil(t, low)
	assert.NotNil(t, high)
}

func TestZeroFillTrend(t *testing.T) {
	points := map[string]domain.TrendPoint{
		"2014-02": {Label: "2014-02", Value: 10, Count: 1},
	}

	filled := zeroFillTrend(points, []string{"2014-01", "2014-02", "2014-03"})

	require.Len(t, filled, 3)
	assert.Zero(t, filled[0].Value)
	assert.InDelta(t, 10.0, filled[1].Value, 0.001)
	assert.Equal(t, "2014-03", filled[2].Label)
}

func TestZeroFillTrend_NoLabelsSortsObserved(t *testing.T) {
	points := map[string]domain.TrendPoint{
		"2013-Q2": {Label: "2013-Q2", Value: 2},
		"2013-Q1": {Label: "2013-Q1", Value: 1},
	}
	filled := zeroFillTrend(points, nil)
	require.Len(t, filled, 2)
	assert.Equal(t, "2013-Q1", filled[0].Label)
}

func TestPageOf(t *testing.T) {
	page := pageOf(domain.PageSpec{Page: 2, PageSize: 10}, 25)
	assert.Equal(t, 2, page.Page)
	assert.EqualValues(t, 25, page.TotalRecords)
	assert.Equal(t, 3, page.TotalPages)

	page = pageOf(domain.PageSpec{Page: 1, PageSize: 10}, 0)
	assert.Zero(t, page.TotalPages)
}
