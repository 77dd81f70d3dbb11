package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/biz-atlas/pkg/models/domain"
	"github.com/de-tools/biz-atlas/pkg/models/store"
)

func TestRegistry_CoversEveryReportType(t *testing.T) {
	registry := NewRegistry()

	expected := []domain.ReportType{
		domain.ReportOverview,
		domain.ReportSales,
		domain.ReportSalesAnalytics,
		domain.ReportSalesTerritory,
		domain.ReportCustomerAnalytics,
		domain.ReportProductList,
		domain.ReportProducts,
		domain.ReportCategories,
		domain.ReportInventory,
		domain.ReportHR,
		domain.ReportPurchasing,
		domain.ReportPurchaseOrders,
		domain.ReportVendors,
		domain.ReportVendorPerformance,
		domain.ReportFinancial,
	}
	for _, report := range expected {
		_, err := registry.Get(report)
		assert.NoError(t, err, "missing plan for %s", report)
	}
	assert.Len(t, registry.SupportedReports(), len(expected))
}

func TestRegistry_UnknownReport(t *testing.T) {
	_, err := NewRegistry().Get("weather")
	assert.ErrorIs(t, err, ErrUnknownReport)
}

// Every query a plan emits must carry user input exclusively through
// bound parameters; the query text itself stays free of request values.
func TestPlans_UserInputNeverEntersQueryText(t *testing.T) {
	hostile := `'; DROP TABLE sales_order_header; --`
	f := domain.FilterSet{
		DateRange:  domain.DateRange2014,
		Category:   hostile,
		Vendor:     hostile,
		Status:     hostile,
		Territory:  hostile,
		Department: hostile,
		Search:     hostile,
		SortBy:     hostile,
		Page:       domain.PageSpec{Page: 1, PageSize: 10},
	}

	registry := NewRegistry()
	for _, report := range registry.SupportedReports() {
		plan, err := registry.Get(report)
		require.NoError(t, err)
		for _, q := range plan.Queries {
			query, _ := q.Build(f)
			assert.NotContains(t, query, "DROP TABLE", "%s/%s leaks input into query text", report, q.ID)
			assert.NotContains(t, query, hostile, "%s/%s leaks input into query text", report, q.ID)
		}
	}
}

func TestPlans_UnknownSortKeyFallsBack(t *testing.T) {
	f := domain.FilterSet{
		DateRange: domain.DateRange2014,
		SortBy:    "evil_column; --",
		Page:      domain.PageSpec{Page: 1, PageSize: 10},
	}

	query, _ := salesOrderPageQuery(f)
	assert.Contains(t, query, "ORDER BY soh.order_date DESC")

	query, _ = productPageQuery(f)
	assert.Contains(t, query, "ORDER BY p.name ASC")
}

func TestPlans_PaginationBindsLimitAndOffset(t *testing.T) {
	f := domain.FilterSet{
		DateRange: domain.DateRange2014,
		Page:      domain.PageSpec{Page: 3, PageSize: 20},
	}

	query, args := salesOrderPageQuery(f)
	assert.Contains(t, query, "LIMIT ? OFFSET ?")
	require.GreaterOrEqual(t, len(args), 2)
	assert.Equal(t, 20, args[len(args)-2])
	assert.Equal(t, 40, args[len(args)-1])
}

func TestPlans_PreviousPeriodQueriesSkipWhenNoPredecessor(t *testing.T) {
	f := domain.FilterSet{DateRange: domain.DateRangeAll}

	for _, build := range []func(domain.FilterSet) (string, []any){
		prevSalesSummaryQuery,
		prevMonthlyRevenueQuery,
		prevFinancialSummaryQuery,
	} {
		query, args := build(f)
		assert.Empty(t, query)
		assert.Nil(t, args)
	}
}

func TestPlans_StatusFilterUsesVocabularyCodes(t *testing.T) {
	f := domain.FilterSet{
		DateRange: domain.DateRange2014,
		Status:    "shipped",
		Page:      domain.PageSpec{Page: 1, PageSize: 10},
	}

	query, args := salesOrderCountQuery(f)
	assert.Contains(t, query, "soh.status = ?")
	assert.Contains(t, args, 5)
	assert.False(t, strings.Contains(query, "shipped"), "status names never enter the query")
}

func TestMergeOverview(t *testing.T) {
	f := domain.FilterSet{DateRange: domain.DateRangeQ1}
	rs := store.ResultSets{
		"summary": {{"total_orders": int64(4), "total_revenue": 200.0, "total_customers": int64(3)}},
		"monthlyRevenue": {
			{"month": "2014-02", "revenue": 200.0, "orders": int64(4)},
		},
		"byCategory": {
			{"category_id": int64(1), "category": "Bikes", "revenue": 150.0},
			{"category_id": int64(2), "category": "Accessories", "revenue": 50.0},
		},
		"topProducts": {},
	}

	merged, err := mergeOverview(f, rs)

	require.NoError(t, err)
	report, ok := merged.(domain.OverviewReport)
	require.True(t, ok)
	assert.InDelta(t, 50.0, report.AvgOrderValue, 0.001)
	require.Len(t, report.MonthlyRevenue, 3, "quarter trend zero-fills to three months")
	assert.Zero(t, report.MonthlyRevenue[0].Value)
	assert.InDelta(t, 200.0, report.MonthlyRevenue[1].Value, 0.001)
	assert.InDelta(t, 75.0, report.RevenueByCategory[0].Share, 0.001)
	assert.NotNil(t, report.TopProducts)
}

func TestMergeSalesAnalytics_NoPreviousPeriodMeansZeroGrowth(t *testing.T) {
	f := domain.FilterSet{DateRange: domain.DateRangeAll}
	rs := store.ResultSets{
		"summary":          {{"total_orders": int64(10), "total_revenue": 1000.0}},
		"prevSummary":      {},
		"monthlyTrend":     {},
		"prevMonthlyTrend": {},
		"byCategory":       {},
		"prevByCategory":   {},
	}

	merged, err := mergeSalesAnalytics(f, rs)

	require.NoError(t, err)
	report := merged.(domain.SalesAnalyticsReport)
	assert.Zero(t, report.Revenue.GrowthRate)
	assert.Zero(t, report.Orders.GrowthRate)
	assert.InDelta(t, 1000.0, report.Revenue.Current, 0.001)
}

func TestMergeSalesTerritory(t *testing.T) {
	rs := store.ResultSets{
		"territories": {
			{"territory_id": int64(1), "name": "Northwest", "country": "US", "revenue": 100.0, "orders": int64(10)},
			{"territory_id": int64(2), "name": "Canada", "country": "CA", "revenue": 100.0, "orders": int64(5)},
			{"territory_id": int64(3), "name": "France", "country": "FR", "revenue": 40.0, "orders": int64(4)},
			{"territory_id": int64(4), "name": "Japan", "country": "JP", "revenue": 10.0, "orders": int64(1)},
		},
		"prevTerritories": {
			{"territory_id": int64(1), "revenue": 50.0},
		},
	}

	merged, err := mergeSalesTerritory(domain.FilterSet{DateRange: domain.DateRange2014}, rs)

	require.NoError(t, err)
	report := merged.(domain.TerritoryReport)

	require.Len(t, report.Territories, 4)
	assert.InDelta(t, 100.0, report.Territories[0].GrowthRate, 0.001)
	assert.Zero(t, report.Territories[1].GrowthRate)

	require.Len(t, report.Regions, 3)
	assert.Equal(t, "North America", report.Regions[0].Name)
	assert.InDelta(t, 200.0, report.Regions[0].Value, 0.001)
	assert.Equal(t, "Other", report.Regions[2].Name)

	require.Len(t, report.TopTerritories, 4)
	assert.EqualValues(t, 1, report.TopTerritories[0].ID, "revenue ties rank by id ascending")
	assert.EqualValues(t, 2, report.TopTerritories[1].ID)
}

func TestMergeCategories_FoldsSubcategories(t *testing.T) {
	rs := store.ResultSets{
		"byCategory": {
			{"category_id": int64(1), "category": "Bikes", "revenue": 300.0},
			{"category_id": int64(2), "category": "Clothing", "revenue": 100.0},
		},
		"prevByCategory": {
			{"category_id": int64(1), "revenue": 200.0},
		},
		"bySubcategory": {
			{"subcategory_id": int64(11), "category_id": int64(1), "subcategory": "Road Bikes", "revenue": 180.0, "products": int64(3)},
			{"subcategory_id": int64(12), "category_id": int64(1), "subcategory": "Mountain Bikes", "revenue": 120.0, "products": int64(2)},
		},
	}

	merged, err := mergeCategories(domain.FilterSet{DateRange: domain.DateRange2014}, rs)

	require.NoError(t, err)
	report := merged.(domain.CategoriesReport)
	require.Len(t, report.Categories, 2)

	bikes := report.Categories[0]
	assert.Equal(t, "Bikes", bikes.Name)
	assert.InDelta(t, 50.0, bikes.GrowthRate, 0.001)
	assert.InDelta(t, 75.0, bikes.Share, 0.001)
	require.Len(t, bikes.Children, 2)

	clothing := report.Categories[1]
	assert.Zero(t, clothing.GrowthRate, "no previous revenue means zero growth")
	assert.NotNil(t, clothing.Children)
	assert.Empty(t, clothing.Children)
}

func TestMergeInventory_ClassifiesAgainstOwnSafetyStock(t *testing.T) {
	rs := store.ResultSets{
		"summary": {{"total_items": int64(3), "total_quantity": int64(60), "total_value": 500.0}},
		"stockLevels": {
			{"product_id": int64(1), "name": "Chain", "safety_stock_level": int64(50), "quantity": int64(10)},
			{"product_id": int64(2), "name": "Pedal", "safety_stock_level": int64(4), "quantity": int64(10)},
			{"product_id": int64(3), "name": "Seat", "safety_stock_level": int64(10), "quantity": int64(15)},
		},
		"byLocation": {},
	}

	merged, err := mergeInventory(domain.FilterSet{}, rs)

	require.NoError(t, err)
	report := merged.(domain.InventoryReport)
	require.Len(t, report.LowStock, 1)
	assert.Equal(t, "Chain", report.LowStock[0].Name)
	require.Len(t, report.HighStock, 1)
	assert.Equal(t, "Pedal", report.HighStock[0].Name)
}

func TestMergeHR_GroupsDepartments(t *testing.T) {
	rs := store.ResultSets{
		"summary": {{"total_employees": int64(20), "active_employees": int64(18), "avg_vacation_hours": 40.0}},
		"byDepartment": {
			{"department_id": int64(1), "department": "Engineering", "group_name": "Research and Development", "headcount": int64(8)},
			{"department_id": int64(2), "department": "Tool Design", "group_name": "Research and Development", "headcount": int64(4)},
			{"department_id": int64(3), "department": "Sales", "group_name": "Sales and Marketing", "headcount": int64(6)},
		},
		"hiresByYear": {
			{"year": int64(2012), "hires": int64(5)},
		},
	}

	merged, err := mergeHR(domain.FilterSet{}, rs)

	require.NoError(t, err)
	report := merged.(domain.HRReport)
	require.Len(t, report.ByDepartment, 2)
	rd := report.ByDepartment[0]
	assert.Equal(t, "Research and Development", rd.Name)
	assert.EqualValues(t, 12, rd.Count, "group headcount sums its departments")
	require.Len(t, rd.Children, 2)
	assert.Equal(t, "2012", report.HiresByYear[0].Label)
}

func TestMergeVendorPerformance(t *testing.T) {
	rs := store.ResultSets{
		"spend": {
			{"vendor_id": int64(1), "name": "Litware", "spend": 500.0, "orders": int64(5)},
			{"vendor_id": int64(2), "name": "Proseware", "spend": 300.0, "orders": int64(3)},
			{"vendor_id": int64(3), "name": "Contoso", "spend": 0.0, "orders": int64(0)},
		},
		"delivery": {
			{"vendor_id": int64(1), "received": 90.0, "rejected": 10.0, "on_time_lines": int64(8), "lines": int64(10)},
			{"vendor_id": int64(2), "received": 50.0, "rejected": 0.0, "on_time_lines": int64(5), "lines": int64(5)},
		},
	}

	merged, err := mergeVendorPerformance(domain.FilterSet{}, rs)

	require.NoError(t, err)
	report := merged.(domain.VendorPerformanceReport)
	require.Len(t, report.Vendors, 3)

	litware := report.Vendors[0]
	assert.InDelta(t, 80.0, litware.OnTimeRate, 0.001)
	assert.InDelta(t, 10.0, litware.RejectionRate, 0.001)

	contoso := report.Vendors[2]
	assert.Zero(t, contoso.OnTimeRate, "vendor without delivery lines never divides by zero")
	assert.Zero(t, contoso.RejectionRate)

	assert.InDelta(t, 800.0, report.TotalSpend, 0.001)
}

func TestMergeSales_PaginationAndStatusNames(t *testing.T) {
	f := domain.FilterSet{
		DateRange: domain.DateRange2014,
		Page:      domain.PageSpec{Page: 2, PageSize: 10},
	}
	rs := store.ResultSets{
		"summary": {{"total_orders": int64(21), "total_revenue": 420.0}},
		"byStatus": {
			{"status": int64(5), "orders": int64(20), "revenue": 400.0},
			{"status": int64(99), "orders": int64(1), "revenue": 20.0},
		},
		"pageCount": {{"total_records": int64(21)}},
		"ordersPage": {
			{"sales_order_id": int64(43659), "order_date": "2014-03-01", "status": int64(5), "sub_total": 95.0, "total_due": 100.0, "customer": "Jo Berry", "territory": "Northwest"},
		},
	}

	merged, err := mergeSales(f, rs)

	require.NoError(t, err)
	report := merged.(domain.SalesReport)
	assert.Equal(t, "shipped", report.StatusBreakdown[0].Name)
	assert.Equal(t, "N/A", report.StatusBreakdown[1].Name, "unknown status codes surface as N/A")
	assert.Equal(t, 3, report.Page.TotalPages)
	require.Len(t, report.Orders, 1)
	assert.Equal(t, "shipped", report.Orders[0].Status)
	assert.Equal(t, 2014, report.Orders[0].Date.Year())
}
