package api

// Response is the common envelope for every report endpoint.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ReportTypeList is the payload of the report enumeration endpoint.
type ReportTypeList struct {
	Reports []string `json:"reports"`
}

// Health is the payload of the store connectivity probe.
type Health struct {
	Status string `json:"status"`
	Server string `json:"server"`
}

type Pagination struct {
	Page         int   `json:"page"`
	PageSize     int   `json:"pageSize"`
	TotalRecords int64 `json:"totalRecords"`
	TotalPages   int   `json:"totalPages"`
}

type TrendPoint struct {
	Label    string  `json:"label"`
	Value    float64 `json:"value"`
	Count    int64   `json:"count"`
	Previous float64 `json:"previous"`
}

type CategoryRevenue struct {
	Category   string  `json:"category"`
	Revenue    float64 `json:"revenue"`
	Percentage float64 `json:"percentage"`
	GrowthRate float64 `json:"growthRate"`
}

type RankedEntity struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Count   int64   `json:"count"`
	Percent float64 `json:"percentage"`
}

type OverviewReport struct {
	Summary struct {
		TotalRevenue   float64 `json:"totalRevenue"`
		TotalOrders    int64   `json:"totalOrders"`
		TotalCustomers int64   `json:"totalCustomers"`
		AvgOrderValue  float64 `json:"avgOrderValue"`
	} `json:"summary"`
	MonthlyRevenue    []TrendPoint      `json:"monthlyRevenue"`
	RevenueByCategory []CategoryRevenue `json:"revenueByCategory"`
	TopProducts       []RankedEntity    `json:"topProducts"`
}

type OrderRecord struct {
	OrderID   int64   `json:"orderId"`
	OrderDate string  `json:"orderDate"`
	Customer  string  `json:"customer,omitempty"`
	Vendor    string  `json:"vendor,omitempty"`
	Territory string  `json:"territory,omitempty"`
	Status    string  `json:"status"`
	SubTotal  float64 `json:"subTotal"`
	TotalDue  float64 `json:"totalDue"`
}

type StatusBreakdown struct {
	Status  string  `json:"status"`
	Orders  int64   `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type SalesReport struct {
	Summary struct {
		TotalRevenue  float64 `json:"totalRevenue"`
		TotalOrders   int64   `json:"totalOrders"`
		AvgOrderValue float64 `json:"avgOrderValue"`
	} `json:"summary"`
	StatusBreakdown []StatusBreakdown `json:"statusBreakdown"`
	Orders          []OrderRecord     `json:"orders"`
	Pagination      Pagination        `json:"pagination"`
}

type GrowthMetric struct {
	Current    float64 `json:"current"`
	Previous   float64 `json:"previous"`
	GrowthRate float64 `json:"growthRate"`
}

type SalesAnalyticsReport struct {
	Summary struct {
		Revenue       GrowthMetric `json:"revenue"`
		Orders        GrowthMetric `json:"orders"`
		AvgOrderValue GrowthMetric `json:"avgOrderValue"`
	} `json:"summary"`
	MonthlyTrend []TrendPoint      `json:"monthlyTrend"`
	ByCategory   []CategoryRevenue `json:"byCategory"`
}

type TerritoryMetric struct {
	Territory  string  `json:"territory"`
	Country    string  `json:"country,omitempty"`
	Revenue    float64 `json:"revenue"`
	Orders     int64   `json:"orders"`
	GrowthRate float64 `json:"growthRate"`
}

type TerritoryReport struct {
	Territories    []TerritoryMetric `json:"territories"`
	Regions        []TerritoryMetric `json:"regions"`
	TopTerritories []TerritoryMetric `json:"topTerritories"`
}

type SegmentMetric struct {
	Segment    string  `json:"segment"`
	Customers  int64   `json:"customers"`
	Revenue    float64 `json:"revenue"`
	GrowthRate float64 `json:"growthRate"`
}

type CustomerAnalyticsReport struct {
	Summary struct {
		TotalCustomers     int64 `json:"totalCustomers"`
		NewCustomers       int64 `json:"newCustomers"`
		ReturningCustomers int64 `json:"returningCustomers"`
	} `json:"summary"`
	Segments     []SegmentMetric `json:"segments"`
	TopCustomers []RankedEntity  `json:"topCustomers"`
}

type Product struct {
	ProductID   int64   `json:"productId"`
	Name        string  `json:"name"`
	Number      string  `json:"number"`
	Color       string  `json:"color"`
	ListPrice   float64 `json:"listPrice"`
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory"`
}

type ProductListReport struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}

type SubcategoryMetric struct {
	SubcategoryID int64   `json:"subcategoryId"`
	Name          string  `json:"name"`
	Revenue       float64 `json:"revenue"`
	Products      int64   `json:"products"`
}

type CategoryMetric struct {
	CategoryID    int64               `json:"categoryId"`
	Name          string              `json:"name"`
	Revenue       float64             `json:"revenue"`
	GrowthRate    float64             `json:"growthRate"`
	Percentage    float64             `json:"percentage"`
	Subcategories []SubcategoryMetric `json:"subcategories"`
}

type ProductsReport struct {
	Summary struct {
		TotalProducts  int64   `json:"totalProducts"`
		ActiveProducts int64   `json:"activeProducts"`
		AvgListPrice   float64 `json:"avgListPrice"`
	} `json:"summary"`
	ByCategory []CategoryMetric `json:"byCategory"`
	TopSellers []RankedEntity   `json:"topSellers"`
}

type CategoriesReport struct {
	Categories []CategoryMetric `json:"categories"`
}

type StockItem struct {
	ProductID   int64  `json:"productId"`
	Name        string `json:"name"`
	Quantity    int64  `json:"quantity"`
	SafetyStock int64  `json:"safetyStockLevel"`
}

type LocationQuantity struct {
	Location string `json:"location"`
	Quantity int64  `json:"quantity"`
}

type InventoryReport struct {
	Summary struct {
		TotalItems    int64   `json:"totalItems"`
		TotalQuantity int64   `json:"totalQuantity"`
		TotalValue    float64 `json:"totalValue"`
	} `json:"summary"`
	LowStock   []StockItem        `json:"lowStock"`
	HighStock  []StockItem        `json:"highStock"`
	ByLocation []LocationQuantity `json:"byLocation"`
}

type DepartmentHeadcount struct {
	Department string `json:"department"`
	Group      string `json:"group"`
	Headcount  int64  `json:"headcount"`
}

type DepartmentGroup struct {
	Group       string                `json:"group"`
	Headcount   int64                 `json:"headcount"`
	Departments []DepartmentHeadcount `json:"departments"`
}

type HRReport struct {
	Summary struct {
		TotalEmployees   int64   `json:"totalEmployees"`
		ActiveEmployees  int64   `json:"activeEmployees"`
		AvgVacationHours float64 `json:"avgVacationHours"`
	} `json:"summary"`
	ByDepartment []DepartmentGroup `json:"byDepartment"`
	HiresByYear  []TrendPoint      `json:"hiresByYear"`
}

type PurchasingReport struct {
	Summary struct {
		TotalOrders   int64   `json:"totalOrders"`
		TotalSpend    float64 `json:"totalSpend"`
		AvgOrderValue float64 `json:"avgOrderValue"`
	} `json:"summary"`
	MonthlySpend []TrendPoint      `json:"monthlySpend"`
	ByStatus     []StatusBreakdown `json:"byStatus"`
}

type PurchaseOrdersReport struct {
	Orders     []OrderRecord `json:"orders"`
	Pagination Pagination    `json:"pagination"`
}

type Vendor struct {
	VendorID      int64  `json:"vendorId"`
	Name          string `json:"name"`
	AccountNumber string `json:"accountNumber"`
	CreditRating  int64  `json:"creditRating"`
	Preferred     bool   `json:"preferred"`
	Active        bool   `json:"active"`
}

type VendorsReport struct {
	Summary struct {
		TotalVendors     int64 `json:"totalVendors"`
		ActiveVendors    int64 `json:"activeVendors"`
		PreferredVendors int64 `json:"preferredVendors"`
	} `json:"summary"`
	Vendors    []Vendor   `json:"vendors"`
	Pagination Pagination `json:"pagination"`
}

type VendorPerformance struct {
	VendorID      int64   `json:"vendorId"`
	Name          string  `json:"name"`
	TotalSpend    float64 `json:"totalSpend"`
	Orders        int64   `json:"orders"`
	OnTimeRate    float64 `json:"onTimeRate"`
	RejectionRate float64 `json:"rejectionRate"`
}

type VendorPerformanceReport struct {
	Summary struct {
		TotalSpend       float64 `json:"totalSpend"`
		AvgOnTimeRate    float64 `json:"avgOnTimeRate"`
		AvgRejectionRate float64 `json:"avgRejectionRate"`
	} `json:"summary"`
	Vendors []VendorPerformance `json:"vendors"`
}

type FinancialReport struct {
	Summary struct {
		Revenue      GrowthMetric `json:"revenue"`
		Tax          float64      `json:"tax"`
		Freight      float64      `json:"freight"`
		NetRevenue   float64      `json:"netRevenue"`
		PurchaseCost float64      `json:"purchaseCost"`
		GrossMargin  float64      `json:"grossMargin"`
	} `json:"summary"`
	QuarterlyRevenue []TrendPoint `json:"quarterlyRevenue"`
	YearlyComparison []TrendPoint `json:"yearlyComparison"`
}
