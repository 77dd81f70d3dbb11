package domain

// ReportType identifies one of the fixed dashboard views.
type ReportType string

const (
	ReportOverview          ReportType = "overview"
	ReportSales             ReportType = "sales"
	ReportSalesAnalytics    ReportType = "sales-analytics"
	ReportSalesTerritory    ReportType = "sales-territory"
	ReportCustomerAnalytics ReportType = "customer-analytics"
	ReportProductList       ReportType = "product-list"
	ReportProducts          ReportType = "products"
	ReportCategories        ReportType = "categories"
	ReportInventory         ReportType = "inventory"
	ReportHR                ReportType = "hr"
	ReportPurchasing        ReportType = "purchasing"
	ReportPurchaseOrders    ReportType = "purchase-orders"
	ReportVendors           ReportType = "vendors"
	ReportVendorPerformance ReportType = "vendor-performance"
	ReportFinancial         ReportType = "financial-reports"
)

// DateRange is the enumerated date window a report is filtered by.
// The dataset spans 2011-2014; quarters refer to the most recent
// complete year (2014).
type DateRange string

const (
	DateRangeAll  DateRange = "all"
	DateRange2011 DateRange = "2011"
	DateRange2012 DateRange = "2012"
	DateRange2013 DateRange = "2013"
	DateRange2014 DateRange = "2014"
	DateRangeSpan DateRange = "2011-2014"
	DateRangeQ1   DateRange = "Q1"
	DateRangeQ2   DateRange = "Q2"
	DateRangeQ3   DateRange = "Q3"
	DateRangeQ4   DateRange = "Q4"
)

// DefaultDateRange is the most recent complete year in the dataset.
const DefaultDateRange = DateRange2014

// PageSpec is a clamped pagination request.
type PageSpec struct {
	Page     int
	PageSize int
}

// Offset is the row offset implied by the page number.
func (p PageSpec) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// FilterSet is the normalized, immutable filter state for one request.
// Dimension and search values are opaque strings; they only ever reach
// a query as bound parameters.
type FilterSet struct {
	DateRange  DateRange
	Category   string
	Vendor     string
	Status     string
	Territory  string
	Department string
	Search     string
	SortBy     string
	Page       PageSpec
}
