package domain

import "time"

// Report is the merged, shaped result of one dashboard view. Each of
// the concrete report structs below implements it.
type Report interface {
	Type() ReportType
}

// Metric pairs a current-period value with its previous-period value
// and the derived growth rate (0 when no previous period exists).
type Metric struct {
	Current    float64
	Previous   float64
	GrowthRate float64
}

// TrendPoint is one bucket of a time series, labelled by period.
type TrendPoint struct {
	Label    string
	Value    float64
	Count    int64
	Previous float64
}

// DimensionMetric is the merged record for one entity of a breakdown
// dimension: identity, additive metrics, derived rates and nested
// child records (for example subcategories under a category).
type DimensionMetric struct {
	Key        string
	Name       string
	Value      float64
	Count      int64
	Rate       float64
	GrowthRate float64
	Share      float64
	Children   []DimensionMetric
}

// OrderRecord is one row of a paginated order listing (sales or
// purchase orders; Counterparty is the customer or vendor name).
type OrderRecord struct {
	ID           int64
	Date         time.Time
	Counterparty string
	Territory    string
	Status       string
	SubTotal     float64
	TotalDue     float64
}

// Page describes the pagination state of a listing response.
type Page struct {
	Page         int
	PageSize     int
	TotalRecords int64
	TotalPages   int
}

// ProductRecord is one row of the product listing.
type ProductRecord struct {
	ID          int64
	Name        string
	Number      string
	Color       string
	ListPrice   float64
	Category    string
	Subcategory string
}

// StockItem is a product with its summed on-hand quantity and the
// safety-stock level configured on the product itself.
type StockItem struct {
	ProductID   int64
	Name        string
	Quantity    int64
	SafetyStock int64
}

// VendorRecord is one row of the vendor listing.
type VendorRecord struct {
	ID            int64
	Name          string
	AccountNumber string
	CreditRating  int64
	Preferred     bool
	Active        bool
}

// VendorPerformance carries the purchasing metrics derived for one
// vendor from its purchase order history.
type VendorPerformance struct {
	ID            int64
	Name          string
	Spend         float64
	Orders        int64
	OnTimeRate    float64
	RejectionRate float64
}

type OverviewReport struct {
	TotalRevenue      float64
	TotalOrders       int64
	TotalCustomers    int64
	AvgOrderValue     float64
	MonthlyRevenue    []TrendPoint
	RevenueByCategory []DimensionMetric
	TopProducts       []DimensionMetric
}

func (OverviewReport) Type() ReportType { return ReportOverview }

type SalesReport struct {
	TotalRevenue    float64
	TotalOrders     int64
	AvgOrderValue   float64
	StatusBreakdown []DimensionMetric
	Orders          []OrderRecord
	Page            Page
}

func (SalesReport) Type() ReportType { return ReportSales }

type SalesAnalyticsReport struct {
	Revenue       Metric
	Orders        Metric
	AvgOrderValue Metric
	MonthlyTrend  []TrendPoint
	ByCategory    []DimensionMetric
}

func (SalesAnalyticsReport) Type() ReportType { return ReportSalesAnalytics }

// TerritoryMetric is the merged record for one sales territory:
// identity, country of origin (the re-bucketing key), current metrics
// and growth versus the previous period.
type TerritoryMetric struct {
	ID         int64
	Name       string
	Country    string
	Revenue    float64
	Orders     int64
	GrowthRate float64
}

type TerritoryReport struct {
	Territories    []TerritoryMetric
	Regions        []DimensionMetric
	TopTerritories []TerritoryMetric
}

func (TerritoryReport) Type() ReportType { return ReportSalesTerritory }

type CustomerAnalyticsReport struct {
	TotalCustomers     int64
	NewCustomers       int64
	ReturningCustomers int64
	Segments           []DimensionMetric
	TopCustomers       []DimensionMetric
}

func (CustomerAnalyticsReport) Type() ReportType { return ReportCustomerAnalytics }

type ProductListReport struct {
	Products []ProductRecord
	Page     Page
}

func (ProductListReport) Type() ReportType { return ReportProductList }

type ProductsReport struct {
	TotalProducts  int64
	ActiveProducts int64
	AvgListPrice   float64
	ByCategory     []DimensionMetric
	TopSellers     []DimensionMetric
}

func (ProductsReport) Type() ReportType { return ReportProducts }

type CategoriesReport struct {
	Categories []DimensionMetric
}

func (CategoriesReport) Type() ReportType { return ReportCategories }

type InventoryReport struct {
	TotalItems    int64
	TotalQuantity int64
	TotalValue    float64
	LowStock      []StockItem
	HighStock     []StockItem
	ByLocation    []DimensionMetric
}

func (InventoryReport) Type() ReportType { return ReportInventory }

type HRReport struct {
	TotalEmployees   int64
	ActiveEmployees  int64
	AvgVacationHours float64
	ByDepartment     []DimensionMetric
	HiresByYear      []TrendPoint
}

func (HRReport) Type() ReportType { return ReportHR }

type PurchasingReport struct {
	TotalOrders   int64
	TotalSpend    float64
	AvgOrderValue float64
	MonthlySpend  []TrendPoint
	ByStatus      []DimensionMetric
}

func (PurchasingReport) Type() ReportType { return ReportPurchasing }

type PurchaseOrdersReport struct {
	Orders []OrderRecord
	Page   Page
}

func (PurchaseOrdersReport) Type() ReportType { return ReportPurchaseOrders }

type VendorsReport struct {
	TotalVendors     int64
	ActiveVendors    int64
	PreferredVendors int64
	Vendors          []VendorRecord
	Page             Page
}

func (VendorsReport) Type() ReportType { return ReportVendors }

type VendorPerformanceReport struct {
	TotalSpend       float64
	AvgOnTimeRate    float64
	AvgRejectionRate float64
	Vendors          []VendorPerformance
}

func (VendorPerformanceReport) Type() ReportType { return ReportVendorPerformance }

type FinancialReport struct {
	Revenue          Metric
	Tax              float64
	Freight          float64
	NetRevenue       float64
	PurchaseCost     float64
	GrossMargin      float64
	QuarterlyRevenue []TrendPoint
	YearlyComparison []TrendPoint
}

func (FinancialReport) Type() ReportType { return ReportFinancial }
