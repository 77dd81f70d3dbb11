package adapters

import (
	"fmt"
	"strconv"

	"github.com/de-tools/biz-atlas/pkg/models/api"
	"github.com/de-tools/biz-atlas/pkg/models/domain"
)

// dateLayout is the single textual date format every report emits,
// regardless of how the store represented the source column.
const dateLayout = "2006-01-02"

// MapReportDomainToAPI projects a merged domain report into its fixed
// wire contract. List fields are always non-nil.
func MapReportDomainToAPI(report domain.Report) (any, error) {
	switch r := report.(type) {
	case domain.OverviewReport:
		return mapOverview(r), nil
	case domain.SalesReport:
		return mapSales(r), nil
	case domain.SalesAnalyticsReport:
		return mapSalesAnalytics(r), nil
	case domain.TerritoryReport:
		return mapTerritory(r), nil
	case domain.CustomerAnalyticsReport:
		return mapCustomerAnalytics(r), nil
	case domain.ProductListReport:
		return mapProductList(r), nil
	case domain.ProductsReport:
		return mapProducts(r), nil
	case domain.CategoriesReport:
		return mapCategories(r), nil
	case domain.InventoryReport:
		return mapInventory(r), nil
	case domain.HRReport:
		return mapHR(r), nil
	case domain.PurchasingReport:
		return mapPurchasing(r), nil
	case domain.PurchaseOrdersReport:
		return mapPurchaseOrders(r), nil
	case domain.VendorsReport:
		return mapVendors(r), nil
	case domain.VendorPerformanceReport:
		return mapVendorPerformance(r), nil
	case domain.FinancialReport:
		return mapFinancial(r), nil
	default:
		return nil, fmt.Errorf("no API mapping for report type %q", report.Type())
	}
}

func mapTrendPoints(points []domain.TrendPoint) []api.TrendPoint {
	out := make([]api.TrendPoint, 0, len(points))
	for _, p := range points {
		out = append(out, api.TrendPoint{
			Label:    p.Label,
			Value:    p.Value,
			Count:    p.Count,
			Previous: p.Previous,
		})
	}
	return out
}

func mapCategoryRevenue(records []domain.DimensionMetric) []api.CategoryRevenue {
	out := make([]api.CategoryRevenue, 0, len(records))
	for _, rec := range records {
		out = append(out, api.CategoryRevenue{
			Category:   rec.Name,
			Revenue:    rec.Value,
			Percentage: rec.Share,
			GrowthRate: rec.GrowthRate,
		})
	}
	return out
}

func mapRankedEntities(records []domain.DimensionMetric) []api.RankedEntity {
	out := make([]api.RankedEntity, 0, len(records))
	for _, rec := range records {
		out = append(out, api.RankedEntity{
			ID:      rec.Key,
			Name:    rec.Name,
			Value:   rec.Value,
			Count:   rec.Count,
			Percent: rec.Share,
		})
	}
	return out
}

func mapGrowthMetric(m domain.Metric) api.GrowthMetric {
	return api.GrowthMetric{Current: m.Current, Previous: m.Previous, GrowthRate: m.GrowthRate}
}

func mapPagination(p domain.Page) api.Pagination {
	return api.Pagination{
		Page:         p.Page,
		PageSize:     p.PageSize,
		TotalRecords: p.TotalRecords,
		TotalPages:   p.TotalPages,
	}
}

func mapStatusBreakdown(records []domain.DimensionMetric) []api.StatusBreakdown {
	out := make([]api.StatusBreakdown, 0, len(records))
	for _, rec := range records {
		out = append(out, api.StatusBreakdown{
			Status:  rec.Name,
			Orders:  rec.Count,
			Revenue: rec.Value,
		})
	}
	return out
}

func mapOverview(r domain.OverviewReport) api.OverviewReport {
	var out api.OverviewReport
	out.Summary.TotalRevenue = r.TotalRevenue
	out.Summary.TotalOrders = r.TotalOrders
	out.Summary.TotalCustomers = r.TotalCustomers
	out.Summary.AvgOrderValue = r.AvgOrderValue
	out.MonthlyRevenue = mapTrendPoints(r.MonthlyRevenue)
	out.RevenueByCategory = mapCategoryRevenue(r.RevenueByCategory)
	out.TopProducts = mapRankedEntities(r.TopProducts)
	return out
}

func mapSales(r domain.SalesReport) api.SalesReport {
	var out api.SalesReport
	out.Summary.TotalRevenue = r.TotalRevenue
	out.Summary.TotalOrders = r.TotalOrders
	out.Summary.AvgOrderValue = r.AvgOrderValue
	out.StatusBreakdown = mapStatusBreakdown(r.StatusBreakdown)
	out.Orders = make([]api.OrderRecord, 0, len(r.Orders))
	for _, o := range r.Orders {
		out.Orders = append(out.Orders, api.OrderRecord{
			OrderID:   o.ID,
			OrderDate: o.Date.Format(dateLayout),
			Customer:  o.Counterparty,
			Territory: o.Territory,
			Status:    o.Status,
			SubTotal:  o.SubTotal,
			TotalDue:  o.TotalDue,
		})
	}
	out.Pagination = mapPagination(r.Page)
	return out
}

func mapSalesAnalytics(r domain.SalesAnalyticsReport) api.SalesAnalyticsReport {
	var out api.SalesAnalyticsReport
	out.Summary.Revenue = mapGrowthMetric(r.Revenue)
	out.Summary.Orders = mapGrowthMetric(r.Orders)
	out.Summary.AvgOrderValue = mapGrowthMetric(r.AvgOrderValue)
	out.MonthlyTrend = mapTrendPoints(r.MonthlyTrend)
	out.ByCategory = mapCategoryRevenue(r.ByCategory)
	return out
}

func mapTerritoryMetrics(records []domain.TerritoryMetric) []api.TerritoryMetric {
	out := make([]api.TerritoryMetric, 0, len(records))
	for _, rec := range records {
		out = append(out, api.TerritoryMetric{
			Territory:  rec.Name,
			Country:    rec.Country,
			Revenue:    rec.Revenue,
			Orders:     rec.Orders,
			GrowthRate: rec.GrowthRate,
		})
	}
	return out
}

func mapTerritory(r domain.TerritoryReport) api.TerritoryReport {
	regions := make([]api.TerritoryMetric, 0, len(r.Regions))
	for _, rec := range r.Regions {
		regions = append(regions, api.TerritoryMetric{
			Territory:  rec.Name,
			Revenue:    rec.Value,
			Orders:     rec.Count,
			GrowthRate: rec.GrowthRate,
		})
	}
	return api.TerritoryReport{
		Territories:    mapTerritoryMetrics(r.Territories),
		Regions:        regions,
		TopTerritories: mapTerritoryMetrics(r.TopTerritories),
	}
}

func mapCustomerAnalytics(r domain.CustomerAnalyticsReport) api.CustomerAnalyticsReport {
	var out api.CustomerAnalyticsReport
	out.Summary.TotalCustomers = r.TotalCustomers
	out.Summary.NewCustomers = r.NewCustomers
	out.Summary.ReturningCustomers = r.ReturningCustomers
	out.Segments = make([]api.SegmentMetric, 0, len(r.Segments))
	for _, s := range r.Segments {
		out.Segments = append(out.Segments, api.SegmentMetric{
			Segment:    s.Name,
			Customers:  s.Count,
			Revenue:    s.Value,
			GrowthRate: s.GrowthRate,
		})
	}
	out.TopCustomers = mapRankedEntities(r.TopCustomers)
	return out
}

func mapProductList(r domain.ProductListReport) api.ProductListReport {
	out := api.ProductListReport{
		Products:   make([]api.Product, 0, len(r.Products)),
		Pagination: mapPagination(r.Page),
	}
	for _, p := range r.Products {
		color := p.Color
		if color == "" {
			color = "N/A"
		}
		out.Products = append(out.Products, api.Product{
			ProductID:   p.ID,
			Name:        p.Name,
			Number:      p.Number,
			Color:       color,
			ListPrice:   p.ListPrice,
			Category:    p.Category,
			Subcategory: p.Subcategory,
		})
	}
	return out
}

func mapCategoryMetrics(records []domain.DimensionMetric) []api.CategoryMetric {
	out := make([]api.CategoryMetric, 0, len(records))
	for _, rec := range records {
		id, _ := strconv.ParseInt(rec.Key, 10, 64)
		cm := api.CategoryMetric{
			CategoryID:    id,
			Name:          rec.Name,
			Revenue:       rec.Value,
			GrowthRate:    rec.GrowthRate,
			Percentage:    rec.Share,
			Subcategories: make([]api.SubcategoryMetric, 0, len(rec.Children)),
		}
		for _, child := range rec.Children {
			childID, _ := strconv.ParseInt(child.Key, 10, 64)
			cm.Subcategories = append(cm.Subcategories, api.SubcategoryMetric{
				SubcategoryID: childID,
				Name:          child.Name,
				Revenue:       child.Value,
				Products:      child.Count,
			})
		}
		out = append(out, cm)
	}
	return out
}

func mapProducts(r domain.ProductsReport) api.ProductsReport {
	var out api.ProductsReport
	out.Summary.TotalProducts = r.TotalProducts
	out.Summary.ActiveProducts = r.ActiveProducts
	out.Summary.AvgListPrice = r.AvgListPrice
	out.ByCategory = mapCategoryMetrics(r.ByCategory)
	out.TopSellers = mapRankedEntities(r.TopSellers)
	return out
}

func mapCategories(r domain.CategoriesReport) api.CategoriesReport {
	return api.CategoriesReport{Categories: mapCategoryMetrics(r.Categories)}
}

func mapStockItems(items []domain.StockItem) []api.StockItem {
	out := make([]api.StockItem, 0, len(items))
	for _, item := range items {
		out = append(out, api.StockItem{
			ProductID:   item.ProductID,
			Name:        item.Name,
			Quantity:    item.Quantity,
			SafetyStock: item.SafetyStock,
		})
	}
	return out
}

func mapInventory(r domain.InventoryReport) api.InventoryReport {
	var out api.InventoryReport
	out.Summary.TotalItems = r.TotalItems
	out.Summary.TotalQuantity = r.TotalQuantity
	out.Summary.TotalValue = r.TotalValue
	out.LowStock = mapStockItems(r.LowStock)
	out.HighStock = mapStockItems(r.HighStock)
	out.ByLocation = make([]api.LocationQuantity, 0, len(r.ByLocation))
	for _, loc := range r.ByLocation {
		out.ByLocation = append(out.ByLocation, api.LocationQuantity{
			Location: loc.Name,
			Quantity: loc.Count,
		})
	}
	return out
}

func mapHR(r domain.HRReport) api.HRReport {
	var out api.HRReport
	out.Summary.TotalEmployees = r.TotalEmployees
	out.Summary.ActiveEmployees = r.ActiveEmployees
	out.Summary.AvgVacationHours = r.AvgVacationHours
	out.ByDepartment = make([]api.DepartmentGroup, 0, len(r.ByDepartment))
	for _, group := range r.ByDepartment {
		g := api.DepartmentGroup{
			Group:       group.Name,
			Headcount:   group.Count,
			Departments: make([]api.DepartmentHeadcount, 0, len(group.Children)),
		}
		for _, dept := range group.Children {
			g.Departments = append(g.Departments, api.DepartmentHeadcount{
				Department: dept.Name,
				Group:      group.Name,
				Headcount:  dept.Count,
			})
		}
		out.ByDepartment = append(out.ByDepartment, g)
	}
	out.HiresByYear = mapTrendPoints(r.HiresByYear)
	return out
}

func mapPurchasing(r domain.PurchasingReport) api.PurchasingReport {
	var out api.PurchasingReport
	out.Summary.TotalOrders = r.TotalOrders
	out.Summary.TotalSpend = r.TotalSpend
	out.Summary.AvgOrderValue = r.AvgOrderValue
	out.MonthlySpend = mapTrendPoints(r.MonthlySpend)
	out.ByStatus = mapStatusBreakdown(r.ByStatus)
	return out
}

func mapPurchaseOrders(r domain.PurchaseOrdersReport) api.PurchaseOrdersReport {
	out := api.PurchaseOrdersReport{
		Orders:     make([]api.OrderRecord, 0, len(r.Orders)),
		Pagination: mapPagination(r.Page),
	}
	for _, o := range r.Orders {
		out.Orders = append(out.Orders, api.OrderRecord{
			OrderID:   o.ID,
			OrderDate: o.Date.Format(dateLayout),
			Vendor:    o.Counterparty,
			Status:    o.Status,
			SubTotal:  o.SubTotal,
			TotalDue:  o.TotalDue,
		})
	}
	return out
}

func mapVendors(r domain.VendorsReport) api.VendorsReport {
	var out api.VendorsReport
	out.Summary.TotalVendors = r.TotalVendors
	out.Summary.ActiveVendors = r.ActiveVendors
	out.Summary.PreferredVendors = r.PreferredVendors
	out.Vendors = make([]api.Vendor, 0, len(r.Vendors))
	for _, v := range r.Vendors {
		out.Vendors = append(out.Vendors, api.Vendor{
			VendorID:      v.ID,
			Name:          v.Name,
			AccountNumber: v.AccountNumber,
			CreditRating:  v.CreditRating,
			Preferred:     v.Preferred,
			Active:        v.Active,
		})
	}
	out.Pagination = mapPagination(r.Page)
	return out
}

func mapVendorPerformance(r domain.VendorPerformanceReport) api.VendorPerformanceReport {
	var out api.VendorPerformanceReport
	out.Summary.TotalSpend = r.TotalSpend
	out.Summary.AvgOnTimeRate = r.AvgOnTimeRate
	out.Summary.AvgRejectionRate = r.AvgRejectionRate
	out.Vendors = make([]api.VendorPerformance, 0, len(r.Vendors))
	for _, v := range r.Vendors {
		out.Vendors = append(out.Vendors, api.VendorPerformance{
			VendorID:      v.ID,
			Name:          v.Name,
			TotalSpend:    v.Spend,
			Orders:        v.Orders,
			OnTimeRate:    v.OnTimeRate,
			RejectionRate: v.RejectionRate,
		})
	}
	return out
}

func mapFinancial(r domain.FinancialReport) api.FinancialReport {
	var out api.FinancialReport
	out.Summary.Revenue = mapGrowthMetric(r.Revenue)
	out.Summary.Tax = r.Tax
	out.Summary.Freight = r.Freight
	out.Summary.NetRevenue = r.NetRevenue
	out.Summary.PurchaseCost = r.PurchaseCost
	out.Summary.GrossMargin = r.GrossMargin
	out.QuarterlyRevenue = mapTrendPoints(r.QuarterlyRevenue)
	out.YearlyComparison = mapTrendPoints(r.YearlyComparison)
	return out
}
