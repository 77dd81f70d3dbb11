package report

import (
	"sort"

	"github.com/de-tools/biz-atlas/pkg/models/domain"
	"github.com/de-tools/biz-atlas/pkg/models/store"
)

func employeeSummaryQuery(_ domain.FilterSet) (string, []any) {
	return `
		SELECT
			COUNT(*) AS total_employees,
			SUM(CASE WHEN current_flag = 1 THEN 1 ELSE 0 END) AS active_employees,
			COALESCE(AVG(vacation_hours), 0) AS avg_vacation_hours
		FROM employee`, nil
}

func departmentHeadcountQuery(f domain.FilterSet) (string, []any) {
	frags := []Fragment{{Clause: "edh.end_date IS NULL"}}
	if department := dimensionValue(f.Department); department != "" {
		frags = append(frags, eqClause("d.name", department))
	}
	clause, args := where(frags...)
	return `
		SELECT
			d.department_id,
			d.name AS department,
			d.group_name,
			COUNT(*) AS headcount
		FROM employee_department_history edh
		JOIN department d ON d.department_id = edh.department_id` + clause + `
		GROUP BY d.department_id, d.name, d.group_name
		ORDER BY d.group_name, d.name`, args
}

func hiresByYearQuery(_ domain.FilterSet) (string, []any) {
	return `
		SELECT
			YEAR(hire_date) AS year,
			COUNT(*) AS hires
		FROM employee
		GROUP BY YEAR(hire_date)
		ORDER BY year`, nil
}

func hrPlan() Plan {
	return Plan{
		Report: domain.ReportHR,
		Queries: []querySpec{
			{ID: "summary", Build: employeeSummaryQuery},
			{ID: "byDepartment", Build: departmentHeadcountQuery},
			{ID: "hiresByYear", Build: hiresByYearQuery},
		},
		Merge: mergeHR,
	}
}

func mergeHR(_ domain.FilterSet, rs store.ResultSets) (domain.Report, error) {
	summary := firstRow(rs["summary"])

	// Departments fold under their group; the group row is derived, not
	// queried, so its headcount is the sum of its members.
	children := make(map[string][]domain.DimensionMetric)
	var groupOrder []string
	groupCounts := make(map[string]int64)
	for _, row := range rs["byDepartment"] {
		group := row.String("group_name")
		if _, seen := groupCounts[group]; !seen {
			groupOrder = append(groupOrder, group)
		}
		groupCounts[group] += row.Int("headcount")
		children[group] = append(children[group], domain.DimensionMetric{
			Key:   row.String("department_id"),
			Name:  row.String("department"),
			Count: row.Int("headcount"),
		})
	}
	sort.Strings(groupOrder)

	groups := make([]domain.DimensionMetric, 0, len(groupOrder))
	for _, group := range groupOrder {
		groups = append(groups, domain.DimensionMetric{
			Key:   group,
			Name:  group,
			Count: groupCounts[group],
		})
	}
	foldChildren(groups, children)

	hires := make([]domain.TrendPoint, 0, len(rs["hiresByYear"]))
	for _, row := range rs["hiresByYear"] {
		hires = append(hires, domain.TrendPoint{
			Label: row.String("year"),
			Count: row.Int("hires"),
			Value: row.Float("hires"),
		})
	}

	return domain.HRReport{
		TotalEmployees:   summary.Int("total_employees"),
		ActiveEmployees:  summary.Int("active_employees"),
		AvgVacationHours: summary.Float("avg_vacation_hours"),
		ByDepartment:     groups,
		HiresByYear:      hires,
	}, nil
}

func purchasingFilters(f domain.FilterSet) []Fragment {
	date, _ := dateClause("order_date", f.DateRange)
	frags := []Fragment{date}
	if vendor := dimensionValue(f.Vendor); vendor != "" {
		frags = append(frags, eqClause("vendor_id", vendor))
	}
	return frags
}

func purchasingSummaryQuery(f domain.FilterSet) (string, []any) {
	clause, args := where(purchasingFilters(f)...)
	return `
		SELECT
			COUNT(*) AS total_orders,
			COALESCE(SUM(total_due), 0) AS total_spend
		FROM purchase_order_header` + clause, args
}

func monthlySpendQuery(f domain.FilterSet) (string, []any) {
	clause, args := where(purchasingFilters(f)...)
	return `
		SELECT
			DATE_FORMAT(order_date, '%Y-%m') AS month,
			COALESCE(SUM(total_due), 0) AS spend,
			COUNT(*) AS orders
		FROM purchase_order_header` + clause + `
		GROUP BY DATE_FORMAT(order_date, '%Y-%m')
		ORDER BY month`, args
}

func purchasingStatusQuery(f domain.FilterSet) (string, []any) {
	clause, args := where(purchasingFilters(f)...)
	return `
		SELECT
			status,
			COUNT(*) AS orders,
			COALESCE(SUM(total_due), 0) AS spend
		FROM purchase_order_header` + clause + `
		GROUP BY status
		ORDER BY status`, args
}

func purchasingPlan() Plan {
	return Plan{
		Report: domain.ReportPurchasing,
		Queries: []querySpec{
			{ID: "summary", Build: purchasingSummaryQuery},
			{ID: "monthlySpend", Build: monthlySpendQuery},
			{ID: "byStatus", Build: purchasingStatusQuery},
		},
		Merge: mergePurchasing,
	}
}

func mergePurchasing(f domain.FilterSet, rs store.ResultSets) (domain.Report, error) {
	summary := firstRow(rs["summary"])
	orders := summary.Int("total_orders")
	spend := summary.Float("total_spend")

	byStatus := make([]domain.DimensionMetric, 0, len(rs["byStatus"]))
	for _, row := range rs["byStatus"] {
		byStatus = append(byStatus, domain.DimensionMetric{
			Key:   row.String("status"),
			Name:  statusName(row.Int("status"), purchaseOrderStatusNames),
			Value: row.Float("spend"),
			Count: row.Int("orders"),
		})
	}

	return domain.PurchasingReport{
		TotalOrders:   orders,
		TotalSpend:    spend,
		AvgOrderValue: safeDiv(spend, float64(orders)),
		MonthlySpend:  zeroFillTrend(trendRows(rs["monthlySpend"], "month", "spend", "orders"), monthLabels(f.DateRange)),
		ByStatus:      byStatus,
	}, nil
}

func purchaseOrderFilters(f domain.FilterSet) []Fragment {
	date, _ := dateClause("poh.order_date", f.DateRange)
	frags := []Fragment{date}
	if status, ok := statusClause("poh.status", f.Status, purchaseOrderStatuses); ok {
		frags = append(frags, status)
	}
	if vendor := dimensionValue(f.Vendor); vendor != "" {
		frags = append(frags, eqClause("poh.vendor_id", vendor))
	}
	return frags
}

func purchaseOrderCountQuery(f domain.FilterSet) (string, []any) {
	clause, args := where(purchaseOrderFilters(f)...)
	return `
		SELECT COUNT(*) AS total_records
		FROM purchase_order_header poh` + clause, args
}

func purchaseOrderPageQuery(f domain.FilterSet) (string, []any) {
	clause, args := where(purchaseOrderFilters(f)...)
	args = append(args, f.Page.PageSize, f.Page.Offset())
	return `
		SELECT
			poh.purchase_order_id,
			poh.order_date,
			poh.status,
			poh.sub_total,
			poh.total_due,
			COALESCE(v.name, '') AS vendor
		FROM purchase_order_header poh
		LEFT JOIN vendor v ON v.vendor_id = poh.vendor_id` + clause + `
		ORDER BY poh.order_date DESC, poh.purchase_order_id ASC
		LIMIT ? OFFSET ?`, args
}

func purchaseOrdersPlan() Plan {
	return Plan{
		Report: domain.ReportPurchaseOrders,
		Queries: []querySpec{
			{ID: "pageCount", Build: purchaseOrderCountQuery},
			{ID: "ordersPage", Build: purchaseOrderPageQuery},
		},
		Merge: mergePurchaseOrders,
	}
}

func mergePurchaseOrders(f domain.FilterSet, rs store.ResultSets) (domain.Report, error) {
	orders := make([]domain.OrderRecord, 0, len(rs["ordersPage"]))
	for _, row := range rs["ordersPage"] {
		orders = append(orders, domain.OrderRecord{
			ID:           row.Int("purchase_order_id"),
			Date:         row.Time("order_date"),
			Counterparty: row.String("vendor"),
			Status:       statusName(row.Int("status"), purchaseOrderStatusNames),
			SubTotal:     row.Float("sub_total"),
			TotalDue:     row.Float("total_due"),
		})
	}
	return domain.PurchaseOrdersReport{
		Orders: orders,
		Page:   pageOf(f.Page, firstRow(rs["pageCount"]).Int("total_records")),
	}, nil
}

func vendorSummaryQuery(_ domain.FilterSet) (string, []any) {
	return `
		SELECT
			COUNT(*) AS total_vendors,
			SUM(CASE WHEN active_flag = 1 THEN 1 ELSE 0 END) AS active_vendors,
			SUM(CASE WHEN preferred_vendor_status = 1 THEN 1 ELSE 0 END) AS preferred_vendors
		FROM vendor`, nil
}

func vendorFilters(f domain.FilterSet) []Fragment {
	var frags []Fragment
	if search, ok := searchClause(f.Search, "name", "account_number"); ok {
		frags = append(frags, search)
	}
	return frags
}

func vendorCountQuery(f domain.FilterSet) (string, []any) {
	clause, args := where(vendorFilters(f)...)
	return `
		SELECT COUNT(*) AS total_records
		FROM vendor` + clause, args
}

func vendorPageQuery(f domain.FilterSet) (string, []any) {
	clause, args := where(vendorFilters(f)...)
	args = append(args, f.Page.PageSize, f.Page.Offset())
	return `
		SELECT
			vendor_id,
			name,
			account_number,
			credit_rating,
			preferred_vendor_status,
			active_flag
		FROM vendor` + clause + `
		ORDER BY name ASC, vendor_id ASC
		LIMIT ? OFFSET ?`, args
}

func vendorsPlan() Plan {
	return Plan{
		Report: domain.ReportVendors,
		Queries: []querySpec{
			{ID: "summary", Build: vendorSummaryQuery},
			{ID: "pageCount", Build: vendorCountQuery},
			{ID: "vendorsPage", Build: vendorPageQuery},
		},
		Merge: mergeVendors,
	}
}

func mergeVendors(f domain.FilterSet, rs store.ResultSets) (domain.Report, error) {
	summary := firstRow(rs["summary"])

	vendors := make([]domain.VendorRecord, 0, len(rs["vendorsPage"]))
	for _, row := range rs["vendorsPage"] {
		vendors = append(vendors, domain.VendorRecord{
			ID:            row.Int("vendor_id"),
			Name:          row.String("name"),
			AccountNumber: row.String("account_number"),
			CreditRating:  row.Int("credit_rating"),
			Preferred:     row.Bool("preferred_vendor_status"),
			Active:        row.Bool("active_flag"),
		})
	}

	return domain.VendorsReport{
		TotalVendors:     summary.Int("total_vendors"),
		ActiveVendors:    summary.Int("active_vendors"),
		PreferredVendors: summary.Int("preferred_vendors"),
		Vendors:          vendors,
		Page:             pageOf(f.Page, firstRow(rs["pageCount"]).Int("total_records")),
	}, nil
}

func vendorSpendQuery(f domain.FilterSet) (string, []any) {
	date, _ := dateClause("poh.order_date", f.DateRange)
	clause, args := where(date)
	return `
		SELECT
			v.vendor_id,
			v.name,
			COALESCE(SUM(poh.total_due), 0) AS spend,
			COUNT(*) AS orders
		FROM purchase_order_header poh
		JOIN vendor v ON v.vendor_id = poh.vendor_id` + clause + `
		GROUP BY v.vendor_id, v.name
		ORDER BY v.vendor_id`, args
}

// vendorDeliveryQuery aggregates line-level receipt outcomes so the
// merger can derive on-time and rejection rates per vendor.
func vendorDeliveryQuery(f domain.FilterSet) (string, []any) {
	date, _ := dateClause("poh.order_date", f.DateRange)
	clause, args := where(date)
	return `
		SELECT
			poh.vendor_id,
			COALESCE(SUM(pod.received_qty), 0) AS received,
			COALESCE(SUM(pod.rejected_qty), 0) AS rejected,
			SUM(CASE WHEN poh.ship_date IS NOT NULL AND poh.ship_date <= pod.due_date THEN 1 ELSE 0 END) AS on_time_lines,
			COUNT(*) AS lines
		FROM purchase_order_detail pod
		JOIN purchase_order_header poh ON poh.purchase_order_id = pod.purchase_order_id` + clause + `
		GROUP BY poh.vendor_id`, args
}

func vendorPerformancePlan() Plan {
	return Plan{
		Report: domain.ReportVendorPerformance,
		Queries: []querySpec{
			{ID: "spend", Build: vendorSpendQuery},
			{ID: "delivery", Build: vendorDeliveryQuery},
		},
		Merge: mergeVendorPerformance,
	}
}

const vendorPerformanceTopK = 20

type deliveryStats struct {
	received float64
	rejected float64
	onTime   float64
	lines    float64
}

func mergeVendorPerformance(_ domain.FilterSet, rs store.ResultSets) (domain.Report, error) {
	delivery := make(map[string]deliveryStats, len(rs["delivery"]))
	for _, row := range rs["delivery"] {
		delivery[row.String("vendor_id")] = deliveryStats{
			received: row.Float("received"),
			rejected: row.Float("rejected"),
			onTime:   row.Float("on_time_lines"),
			lines:    row.Float("lines"),
		}
	}

	vendors := make([]domain.VendorPerformance, 0, len(rs["spend"]))
	for _, row := range rs["spend"] {
		d := delivery[row.String("vendor_id")]
		vendors = append(vendors, domain.VendorPerformance{
			ID:            row.Int("vendor_id"),
			Name:          row.String("name"),
			Spend:         row.Float("spend"),
			Orders:        row.Int("orders"),
			OnTimeRate:    percentOf(d.onTime, d.lines),
			RejectionRate: percentOf(d.rejected, d.received+d.rejected),
		})
	}

	sort.SliceStable(vendors, func(i, j int) bool {
		if vendors[i].Spend != vendors[j].Spend {
			return vendors[i].Spend > vendors[j].Spend
		}
		return vendors[i].ID < vendors[j].ID
	})
	if len(vendors) > vendorPerformanceTopK {
		vendors = vendors[:vendorPerformanceTopK]
	}

	var totalSpend, onTimeSum, rejectionSum float64
	for _, v := range vendors {
		totalSpend += v.Spend
		onTimeSum += v.OnTimeRate
		rejectionSum += v.RejectionRate
	}

	return domain.VendorPerformanceReport{
		TotalSpend:       totalSpend,
		AvgOnTimeRate:    safeDiv(onTimeSum, float64(len(vendors))),
		AvgRejectionRate: safeDiv(rejectionSum, float64(len(vendors))),
		Vendors:          vendors,
	}, nil
}
