package report

import (
	"sort"

	"github.com/de-tools/biz-atlas/pkg/models/domain"
	"github.com/de-tools/biz-atlas/pkg/models/store"
)

// regionsByCountry is the fixed re-bucketing table collapsing territory
// country codes into dashboard regions.
var regionsByCountry = map[string]string{
	"US": "North America",
	"CA": "North America",
	"FR": "Europe",
	"DE": "Europe",
	"GB": "Europe",
	"AU": "Pacific",
}

const regionFallback = "Other"

func salesSummaryQuery(f domain.FilterSet) (string, []any) {
	date, _ := dateClause("order_date", f.DateRange)
	clause, args := where(date)
	return `
		SELECT
			COUNT(*) AS total_orders,
			COALESCE(SUM(total_due), 0) AS total_revenue,
			COUNT(DISTINCT customer_id) AS total_customers
		FROM sales_order_header` + clause, args
}

func prevSalesSummaryQuery(f domain.FilterSet) (string, []any) {
	prev, ok := prevDateClause("order_date", f.DateRange)
	if !ok {
		return "", nil
	}
	clause, args := where(prev)
	return `
		SELECT
			COUNT(*) AS total_orders,
			COALESCE(SUM(total_due), 0) AS total_revenue
		FROM sales_order_header` + clause, args
}

func monthlyRevenueQuery(f domain.FilterSet) (string, []any) {
	date, _ := dateClause("order_date", f.DateRange)
	clause, args := where(date)
	return `
		SELECT
			DATE_FORMAT(order_date, '%Y-%m') AS month,
			COALESCE(SUM(total_due), 0) AS revenue,
			COUNT(*) AS orders
		FROM sales_order_header` + clause + `
		GROUP BY DATE_FORMAT(order_date, '%Y-%m')
		ORDER BY month`, args
}

// categoryRevenueQuery aggregates line revenue per product category for
// the given window clause builder.
func categoryRevenueQuery(f domain.FilterSet, previous bool) (string, []any) {
	var date Fragment
	var ok bool
	if previous {
		date, ok = prevDateClause("soh.order_date", f.DateRange)
		if !ok {
			return "", nil
		}
	} else {
		date, _ = dateClause("soh.order_date", f.DateRange)
	}
	clause, args := where(date)
	return `
		SELECT
			pc.product_category_id AS category_id,
			pc.name AS category,
			COALESCE(SUM(sod.line_total), 0) AS revenue
		FROM sales_order_detail sod
		JOIN sales_order_header soh ON soh.sales_order_id = sod.sales_order_id
		JOIN product p ON p.product_id = sod.product_id
		JOIN product_subcategory psc ON psc.product_subcategory_id = p.product_subcategory_id
		JOIN product_category pc ON pc.product_category_id = psc.product_category_id` + clause + `
		GROUP BY pc.product_category_id, pc.name
		ORDER BY pc.product_category_id`, args
}

func productRevenueQuery(f domain.FilterSet) (string, []any) {
	date, _ := dateClause("soh.order_date", f.DateRange)
	clause, args := where(date)
	return `
		SELECT
			p.product_id,
			p.name,
			COALESCE(SUM(sod.line_total), 0) AS revenue,
			COALESCE(SUM(sod.order_qty), 0) AS quantity
		FROM sales_order_detail sod
		JOIN sales_order_header soh ON soh.sales_order_id = sod.sales_order_id
		JOIN product p ON p.product_id = sod.product_id` + clause + `
		GROUP BY p.product_id, p.name
		ORDER BY p.product_id`, args
}

func overviewPlan() Plan {
	return Plan{
		Report: domain.ReportOverview,
		Queries: []querySpec{
			{ID: "summary", Build: salesSummaryQuery},
			{ID: "monthlyRevenue", Build: monthlyRevenueQuery},
			{ID: "byCategory", Build: func(f domain.FilterSet) (string, []any) {
				return categoryRevenueQuery(f, false)
			}},
			{ID: "topProducts", Build: productRevenueQuery},
		},
		Merge: mergeOverview,
	}
}

func mergeOverview(f domain.FilterSet, rs store.ResultSets) (domain.Report, error) {
	summary := firstRow(rs["summary"])

	byCategory := dimensionRows(rs["byCategory"], "category_id", "category", "revenue", "")
	attachShare(byCategory)
	sortByValueDesc(byCategory)

	products := dimensionRows(rs["topProducts"], "product_id", "name", "revenue", "quantity")
	attachShare(products)

	orders := summary.Int("total_orders")
	revenue := summary.Float("total_revenue")

	return domain.OverviewReport{
		TotalRevenue:      revenue,
		TotalOrders:       orders,
		TotalCustomers:    summary.Int("total_customers"),
		AvgOrderValue:     safeDiv(revenue, float64(orders)),
		MonthlyRevenue:    zeroFillTrend(trendRows(rs["monthlyRevenue"], "month", "revenue", "orders"), monthLabels(f.DateRange)),
		RevenueByCategory: byCategory,
		TopProducts:       topN(products, 5),
	}, nil
}

var salesOrderSorts = map[string]string{
	"date":     "soh.order_date DESC",
	"total":    "soh.total_due DESC",
	"customer": "customer ASC",
}

func salesOrderFilters(f domain.FilterSet) []Fragment {
	date, _ := dateClause("soh.order_date", f.DateRange)
	frags := []Fragment{date}
	if status, ok := statusClause("soh.status", f.Status, salesOrderStatuses); ok {
		frags = append(frags, status)
	}
	if territory := dimensionValue(f.Territory); territory != "" {
		frags = append(frags, eqClause("soh.territory_id", territory))
	}
	return frags
}

func salesOrderCountQuery(f domain.FilterSet) (string, []any) {
	clause, args := where(salesOrderFilters(f)...)
	return `
		SELECT COUNT(*) AS total_records
		FROM sales_order_header soh` + clause, args
}

func salesOrderPageQuery(f domain.FilterSet) (string, []any) {
	clause, args := where(salesOrderFilters(f)...)
	sortExpr, ok := salesOrderSorts[f.SortBy]
	if !ok {
		sortExpr = salesOrderSorts["date"]
	}
	args = append(args, f.Page.PageSize, f.Page.Offset())
	return `
		SELECT
			soh.sales_order_id,
			soh.order_date,
			soh.status,
			soh.sub_total,
			soh.total_due,
			COALESCE(CONCAT(pp.first_name, ' ', pp.last_name), '') AS customer,
			COALESCE(st.name, '') AS territory
		FROM sales_order_header soh
		LEFT JOIN customer c ON c.customer_id = soh.customer_id
		LEFT JOIN person pp ON pp.person_id = c.person_id
		LEFT JOIN sales_territory st ON st.territory_id = soh.territory_id` + clause + `
		ORDER BY ` + sortExpr + `, soh.sales_order_id ASC
		LIMIT ? OFFSET ?`, args
}

func salesStatusQuery(f domain.FilterSet) (string, []any) {
	date, _ := dateClause("order_date", f.DateRange)
	clause, args := where(date)
	return `
		SELECT
			status,
			COUNT(*) AS orders,
			COALESCE(SUM(total_due), 0) AS revenue
		FROM sales_order_header` + clause + `
		GROUP BY status
		ORDER BY status`, args
}

func salesPlan() Plan {
	return Plan{
		Report: domain.ReportSales,
		Queries: []querySpec{
			{ID: "summary", Build: salesSummaryQuery},
			{ID: "byStatus", Build: salesStatusQuery},
			{ID: "pageCount", Build: salesOrderCountQuery},
			{ID: "ordersPage", Build: salesOrderPageQuery},
		},
		Merge: mergeSales,
	}
}

func mergeSales(f domain.FilterSet, rs store.ResultSets) (domain.Report, error) {
	summary := firstRow(rs["summary"])
	orders := summary.Int("total_orders")
	revenue := summary.Float("total_revenue")

	byStatus := make([]domain.DimensionMetric, 0, len(rs["byStatus"]))
	for _, row := range rs["byStatus"] {
		code := row.Int("status")
		name, ok := salesOrderStatusNames[code]
		if !ok {
			name = "N/A"
		}
		byStatus = append(byStatus, domain.DimensionMetric{
			Key:   row.String("status"),
			Name:  name,
			Value: row.Float("revenue"),
			Count: row.Int("orders"),
		})
	}

	page := make([]domain.OrderRecord, 0, len(rs["ordersPage"]))
	for _, row := range rs["ordersPage"] {
		page = append(page, domain.OrderRecord{
			ID:           row.Int("sales_order_id"),
			Date:         row.Time("order_date"),
			Counterparty: row.String("customer"),
			Territory:    row.String("territory"),
			Status:       statusName(row.Int("status"), salesOrderStatusNames),
			SubTotal:     row.Float("sub_total"),
			TotalDue:     row.Float("total_due"),
		})
	}

	return domain.SalesReport{
		TotalRevenue:    revenue,
		TotalOrders:     orders,
		AvgOrderValue:   safeDiv(revenue, float64(orders)),
		StatusBreakdown: byStatus,
		Orders:          page,
		Page:            pageOf(f.Page, firstRow(rs["pageCount"]).Int("total_records")),
	}, nil
}

func statusName(code int64, names map[int64]string) string {
	if name, ok := names[code]; ok {
		return name
	}
	return "N/A"
}

func prevMonthlyRevenueQuery(f domain.FilterSet) (string, []any) {
	prev, ok := prevDateClause("order_date", f.DateRange)
	if !ok {
		return "", nil
	}
	clause, args := where(prev)
	return `
		SELECT
			DATE_FORMAT(order_date, '%Y-%m') AS month,
			COALESCE(SUM(total_due), 0) AS revenue
		FROM sales_order_header` + clause + `
		GROUP BY DATE_FORMAT(order_date, '%Y-%m')
		ORDER BY month`, args
}

func salesAnalyticsPlan() Plan {
	return Plan{
		Report: domain.ReportSalesAnalytics,
		Queries: []querySpec{
			{ID: "summary", Build: salesSummaryQuery},
			{ID: "prevSummary", Build: prevSalesSummaryQuery},
			{ID: "monthlyTrend", Build: monthlyRevenueQuery},
			{ID: "prevMonthlyTrend", Build: prevMonthlyRevenueQuery},
			{ID: "byCategory", Build: func(f domain.FilterSet) (string, []any) {
				return categoryRevenueQuery(f, false)
			}},
			{ID: "prevByCategory", Build: func(f domain.FilterSet) (string, []any) {
				return categoryRevenueQuery(f, true)
			}},
		},
		Merge: mergeSalesAnalytics,
	}
}

func mergeSalesAnalytics(f domain.FilterSet, rs store.ResultSets) (domain.Report, error) {
	summary := firstRow(rs["summary"])
	prev := firstRow(rs["prevSummary"])

	revenue := summary.Float("total_revenue")
	orders := summary.Float("total_orders")
	prevRevenue := prev.Float("total_revenue")
	prevOrders := prev.Float("total_orders")
	avg := safeDiv(revenue, orders)
	prevAvg := safeDiv(prevRevenue, prevOrders)

	// Previous-period months are aligned to current months by position
	// inside their windows, so January compares to January (years) and
	// the first month of a quarter to the first month of the prior
	// quarter.
	trend := zeroFillTrend(trendRows(rs["monthlyTrend"], "month", "revenue", "orders"), monthLabels(f.DateRange))
	prevTrend := trendValuesInOrder(rs["prevMonthlyTrend"], f.DateRange)
	for i := range trend {
		if i < len(prevTrend) {
			trend[i].Previous = prevTrend[i]
		}
	}

	byCategory := dimensionRows(rs["byCategory"], "category_id", "category", "revenue", "")
	attachGrowth(byCategory, valueByKey(rs["prevByCategory"], "category_id", "revenue"))
	attachShare(byCategory)
	sortByValueDesc(byCategory)

	return domain.SalesAnalyticsReport{
		Revenue:       domain.Metric{Current: revenue, Previous: prevRevenue, GrowthRate: growthRate(revenue, prevRevenue)},
		Orders:        domain.Metric{Current: orders, Previous: prevOrders, GrowthRate: growthRate(orders, prevOrders)},
		AvgOrderValue: domain.Metric{Current: avg, Previous: prevAvg, GrowthRate: growthRate(avg, prevAvg)},
		MonthlyTrend:  trend,
		ByCategory:    byCategory,
	}, nil
}

// trendValuesInOrder flattens the previous-period monthly buckets onto
// the previous window's label sequence.
func trendValuesInOrder(rs store.ResultSet, dr domain.DateRange) []float64 {
	w, ok := previousWindows[dr]
	if !ok {
		return nil
	}
	points := trendRows(rs, "month", "revenue", "")
	var out []float64
	for t := w.start; t.Before(w.end); t = t.AddDate(0, 1, 0) {
		out = append(out, points[t.Format("2006-01")].Value)
	}
	return out
}

func territoryRevenueQuery(f domain.FilterSet, previous bool) (string, []any) {
	var date Fragment
	if previous {
		var ok bool
		date, ok = prevDateClause("soh.order_date", f.DateRange)
		if !ok {
			return "", nil
		}
	} else {
		date, _ = dateClause("soh.order_date", f.DateRange)
	}
	clause, args := where(date)
	return `
		SELECT
			st.territory_id,
			st.name,
			st.country_region_code AS country,
			COALESCE(SUM(soh.total_due), 0) AS revenue,
			COUNT(*) AS orders
		FROM sales_order_header soh
		JOIN sales_territory st ON st.territory_id = soh.territory_id` + clause + `
		GROUP BY st.territory_id, st.name, st.country_region_code
		ORDER BY st.territory_id`, args
}

func salesTerritoryPlan() Plan {
	return Plan{
		Report: domain.ReportSalesTerritory,
		Queries: []querySpec{
			{ID: "territories", Build: func(f domain.FilterSet) (string, []any) {
				return territoryRevenueQuery(f, false)
			}},
			{ID: "prevTerritories", Build: func(f domain.FilterSet) (string, []any) {
				return territoryRevenueQuery(f, true)
			}},
		},
		Merge: mergeSalesTerritory,
	}
}

func mergeSalesTerritory(_ domain.FilterSet, rs store.ResultSets) (domain.Report, error) {
	prevRevenue := valueByKey(rs["prevTerritories"], "territory_id", "revenue")

	territories := make([]domain.TerritoryMetric, 0, len(rs["territories"]))
	countryMetrics := make([]domain.DimensionMetric, 0, len(rs["territories"]))
	for _, row := range rs["territories"] {
		revenue := row.Float("revenue")
		growth := growthRate(revenue, prevRevenue[row.String("territory_id")])
		territories = append(territories, domain.TerritoryMetric{
			ID:         row.Int("territory_id"),
			Name:       row.String("name"),
			Country:    row.String("country"),
			Revenue:    revenue,
			Orders:     row.Int("orders"),
			GrowthRate: growth,
		})
		countryMetrics = append(countryMetrics, domain.DimensionMetric{
			Key:        row.String("country"),
			Name:       row.String("country"),
			Value:      revenue,
			Count:      row.Int("orders"),
			GrowthRate: growth,
		})
	}

	return domain.TerritoryReport{
		Territories:    territories,
		Regions:        rebucket(countryMetrics, regionsByCountry, regionFallback),
		TopTerritories: topTerritories(territories, 5),
	}, nil
}

// topTerritories ranks by revenue descending, ties broken by territory
// id ascending.
func topTerritories(territories []domain.TerritoryMetric, n int) []domain.TerritoryMetric {
	ranked := make([]domain.TerritoryMetric, len(territories))
	copy(ranked, territories)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Revenue != ranked[j].Revenue {
			return ranked[i].Revenue > ranked[j].Revenue
		}
		return ranked[i].ID < ranked[j].ID
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func customerCountQuery(f domain.FilterSet) (string, []any) {
	date, _ := dateClause("order_date", f.DateRange)
	clause, args := where(date)
	return `
		SELECT COUNT(DISTINCT customer_id) AS total_customers
		FROM sales_order_header` + clause, args
}

func newCustomerCountQuery(f domain.FilterSet) (string, []any) {
	date, ok := dateClause("first_order", f.DateRange)
	if !ok {
		// With no window every customer counts as new exactly once.
		return `
			SELECT COUNT(*) AS new_customers
			FROM (
				SELECT customer_id, MIN(order_date) AS first_order
				FROM sales_order_header
				GROUP BY customer_id
			) first_orders`, nil
	}
	clause, args := where(date)
	return `
		SELECT COUNT(*) AS new_customers
		FROM (
			SELECT customer_id, MIN(order_date) AS first_order
			FROM sales_order_header
			GROUP BY customer_id
		) first_orders` + clause, args
}

func customerSegmentQuery(f domain.FilterSet, previous bool) (string, []any) {
	var date Fragment
	if previous {
		var ok bool
		date, ok = prevDateClause("soh.order_date", f.DateRange)
		if !ok {
			return "", nil
		}
	} else {
		date, _ = dateClause("soh.order_date", f.DateRange)
	}
	clause, args := where(date)
	return `
		SELECT
			CASE WHEN c.store_id IS NULL THEN 'individual' ELSE 'store' END AS segment,
			COUNT(DISTINCT soh.customer_id) AS customers,
			COALESCE(SUM(soh.total_due), 0) AS revenue
		FROM sales_order_header soh
		JOIN customer c ON c.customer_id = soh.customer_id` + clause + `
		GROUP BY CASE WHEN c.store_id IS NULL THEN 'individual' ELSE 'store' END
		ORDER BY segment`, args
}

func topCustomerQuery(f domain.FilterSet) (string, []any) {
	date, _ := dateClause("soh.order_date", f.DateRange)
	clause, args := where(date)
	return `
		SELECT
			soh.customer_id,
			COALESCE(CONCAT(pp.first_name, ' ', pp.last_name), CONCAT('Customer #', soh.customer_id)) AS customer,
			COALESCE(SUM(soh.total_due), 0) AS revenue,
			COUNT(*) AS orders
		FROM sales_order_header soh
		LEFT JOIN customer c ON c.customer_id = soh.customer_id
		LEFT JOIN person pp ON pp.person_id = c.person_id` + clause + `
		GROUP BY soh.customer_id, customer
		ORDER BY soh.customer_id`, args
}

func customerAnalyticsPlan() Plan {
	return Plan{
		Report: domain.ReportCustomerAnalytics,
		Queries: []querySpec{
			{ID: "customerCount", Build: customerCountQuery},
			{ID: "newCustomers", Build: newCustomerCountQuery},
			{ID: "segments", Build: func(f domain.FilterSet) (string, []any) {
				return customerSegmentQuery(f, false)
			}},
			{ID: "prevSegments", Build: func(f domain.FilterSet) (string, []any) {
				return customerSegmentQuery(f, true)
			}},
			{ID: "topCustomers", Build: topCustomerQuery},
		},
		Merge: mergeCustomerAnalytics,
	}
}

func mergeCustomerAnalytics(_ domain.FilterSet, rs store.ResultSets) (domain.Report, error) {
	total := firstRow(rs["customerCount"]).Int("total_customers")
	newCustomers := firstRow(rs["newCustomers"]).Int("new_customers")
	returning := total - newCustomers
	if returning < 0 {
		returning = 0
	}

	segments := make([]domain.DimensionMetric, 0, len(rs["segments"]))
	for _, row := range rs["segments"] {
		segments = append(segments, domain.DimensionMetric{
			Key:   row.String("segment"),
			Name:  row.String("segment"),
			Value: row.Float("revenue"),
			Count: row.Int("customers"),
		})
	}
	attachGrowth(segments, valueByKey(rs["prevSegments"], "segment", "revenue"))

	customers := dimensionRows(rs["topCustomers"], "customer_id", "customer", "revenue", "orders")
	attachShare(customers)

	return domain.CustomerAnalyticsReport{
		TotalCustomers:     total,
		NewCustomers:       newCustomers,
		ReturningCustomers: returning,
		Segments:           segments,
		TopCustomers:       topN(customers, 10),
	}, nil
}

func financialSummaryQuery(f domain.FilterSet) (string, []any) {
	date, _ := dateClause("order_date", f.DateRange)
	clause, args := where(date)
	return `
		SELECT
			COALESCE(SUM(total_due), 0) AS revenue,
			COALESCE(SUM(tax_amt), 0) AS tax,
			COALESCE(SUM(freight), 0) AS freight
		FROM sales_order_header` + clause, args
}

func prevFinancialSummaryQuery(f domain.FilterSet) (string, []any) {
	prev, ok := prevDateClause("order_date", f.DateRange)
	if !ok {
		return "", nil
	}
	clause, args := where(prev)
	return `
		SELECT COALESCE(SUM(total_due), 0) AS revenue
		FROM sales_order_header` + clause, args
}

func purchaseCostQuery(f domain.FilterSet) (string, []any) {
	date, _ := dateClause("order_date", f.DateRange)
	clause, args := where(date)
	return `
		SELECT COALESCE(SUM(total_due), 0) AS purchase_cost
		FROM purchase_order_header` + clause, args
}

func quarterlyRevenueQuery(f domain.FilterSet) (string, []any) {
	date, _ := dateClause("order_date", f.DateRange)
	clause, args := where(date)
	return `
		SELECT
			CONCAT(YEAR(order_date), '-Q', QUARTER(order_date)) AS quarter,
			COALESCE(SUM(total_due), 0) AS revenue
		FROM sales_order_header` + clause + `
		GROUP BY CONCAT(YEAR(order_date), '-Q', QUARTER(order_date))
		ORDER BY quarter`, args
}

func yearlySalesQuery(_ domain.FilterSet) (string, []any) {
	return `
		SELECT
			YEAR(order_date) AS year,
			COALESCE(SUM(total_due), 0) AS revenue
		FROM sales_order_header
		GROUP BY YEAR(order_date)
		ORDER BY year`, nil
}

func yearlyPurchasesQuery(_ domain.FilterSet) (string, []any) {
	return `
		SELECT
			YEAR(order_date) AS year,
			COALESCE(SUM(total_due), 0) AS purchases
		FROM purchase_order_header
		GROUP BY YEAR(order_date)
		ORDER BY year`, nil
}

func financialPlan() Plan {
	return Plan{
		Report: domain.ReportFinancial,
		Queries: []querySpec{
			{ID: "summary", Build: financialSummaryQuery},
			{ID: "prevSummary", Build: prevFinancialSummaryQuery},
			{ID: "purchases", Build: purchaseCostQuery},
			{ID: "quarterlyRevenue", Build: quarterlyRevenueQuery},
			{ID: "yearlySales", Build: yearlySalesQuery},
			{ID: "yearlyPurchases", Build: yearlyPurchasesQuery},
		},
		Merge: mergeFinancial,
	}
}

func mergeFinancial(_ domain.FilterSet, rs store.ResultSets) (domain.Report, error) {
	summary := firstRow(rs["summary"])
	revenue := summary.Float("revenue")
	tax := summary.Float("tax")
	freight := summary.Float("freight")
	prevRevenue := firstRow(rs["prevSummary"]).Float("revenue")
	purchaseCost := firstRow(rs["purchases"]).Float("purchase_cost")

	quarters := zeroFillTrend(trendRows(rs["quarterlyRevenue"], "quarter", "revenue", ""), nil)

	purchasesByYear := valueByKey(rs["yearlyPurchases"], "year", "purchases")
	years := make([]domain.TrendPoint, 0, len(rs["yearlySales"]))
	for _, row := range rs["yearlySales"] {
		years = append(years, domain.TrendPoint{
			Label:    row.String("year"),
			Value:    row.Float("revenue"),
			Previous: purchasesByYear[row.String("year")],
		})
	}

	return domain.FinancialReport{
		Revenue:          domain.Metric{Current: revenue, Previous: prevRevenue, GrowthRate: growthRate(revenue, prevRevenue)},
		Tax:              tax,
		Freight:          freight,
		NetRevenue:       revenue - tax - freight,
		PurchaseCost:     purchaseCost,
		GrossMargin:      percentOf(revenue-purchaseCost, revenue),
		QuarterlyRevenue: quarters,
		YearlyComparison: years,
	}, nil
}
