package report

import (
	"github.com/de-tools/biz-atlas/pkg/models/domain"
	"github.com/de-tools/biz-atlas/pkg/models/store"
)

var productSorts = map[string]string{
	"name":   "p.name ASC",
	"price":  "p.list_price DESC",
	"number": "p.product_number ASC",
}

func productFilters(f domain.FilterSet) []Fragment {
	var frags []Fragment
	if category := dimensionValue(f.Category); category != "" {
		frags = append(frags, eqClause("pc.name", category))
	}
	if search, ok := searchClause(f.Search, "p.name", "p.product_number"); ok {
		frags = append(frags, search)
	}
	return frags
}

func productCountQuery(f domain.FilterSet) (string, []any) {
	clause, args := where(productFilters(f)...)
	return `
		SELECT COUNT(*) AS total_records
		FROM product p
		LEFT JOIN product_subcategory psc ON psc.product_subcategory_id = p.product_subcategory_id
		LEFT JOIN product_category pc ON pc.product_category_id = psc.product_category_id` + clause, args
}

func productPageQuery(f domain.FilterSet) (string, []any) {
	clause, args := where(productFilters(f)...)
	sortExpr, ok := productSorts[f.SortBy]
	if !ok {
		sortExpr = productSorts["name"]
	}
	args = append(args, f.Page.PageSize, f.Page.Offset())
	return `
		SELECT
			p.product_id,
			p.name,
			p.product_number,
			COALESCE(p.color, '') AS color,
			p.list_price,
			COALESCE(pc.name, '') AS category,
			COALESCE(psc.name, '') AS subcategory
		FROM product p
		LEFT JOIN product_subcategory psc ON psc.product_subcategory_id = p.product_subcategory_id
		LEFT JOIN product_category pc ON pc.product_category_id = psc.product_category_id` + clause + `
		ORDER BY ` + sortExpr + `, p.product_id ASC
		LIMIT ? OFFSET ?`, args
}

func productListPlan() Plan {
	return Plan{
		Report: domain.ReportProductList,
		Queries: []querySpec{
			{ID: "pageCount", Build: productCountQuery},
			{ID: "productsPage", Build: productPageQuery},
		},
		Merge: mergeProductList,
	}
}

func mergeProductList(f domain.FilterSet, rs store.ResultSets) (domain.Report, error) {
	products := make([]domain.ProductRecord, 0, len(rs["productsPage"]))
	for _, row := range rs["productsPage"] {
		products = append(products, domain.ProductRecord{
			ID:          row.Int("product_id"),
			Name:        row.String("name"),
			Number:      row.String("product_number"),
			Color:       row.String("color"),
			ListPrice:   row.Float("list_price"),
			Category:    row.String("category"),
			Subcategory: row.String("subcategory"),
		})
	}
	return domain.ProductListReport{
		Products: products,
		Page:     pageOf(f.Page, firstRow(rs["pageCount"]).Int("total_records")),
	}, nil
}

func productSummaryQuery(_ domain.FilterSet) (string, []any) {
	return `
		SELECT
			COUNT(*) AS total_products,
			SUM(CASE WHEN sell_end_date IS NULL THEN 1 ELSE 0 END) AS active_products,
			COALESCE(AVG(NULLIF(list_price, 0)), 0) AS avg_list_price
		FROM product`, nil
}

// subcategoryRevenueQuery keys child rows by their parent category so
// the merger can fold them.
func subcategoryRevenueQuery(f domain.FilterSet) (string, []any) {
	date, _ := dateClause("soh.order_date", f.DateRange)
	clause, args := where(date)
	return `
		SELECT
			psc.product_subcategory_id AS subcategory_id,
			psc.product_category_id AS category_id,
			psc.name AS subcategory,
			COALESCE(SUM(sod.line_total), 0) AS revenue,
			COUNT(DISTINCT p.product_id) AS products
		FROM sales_order_detail sod
		JOIN sales_order_header soh ON soh.sales_order_id = sod.sales_order_id
		JOIN product p ON p.product_id = sod.product_id
		JOIN product_subcategory psc ON psc.product_subcategory_id = p.product_subcategory_id` + clause + `
		GROUP BY psc.product_subcategory_id, psc.product_category_id, psc.name
		ORDER BY psc.product_subcategory_id`, args
}

func productsPlan() Plan {
	return Plan{
		Report: domain.ReportProducts,
		Queries: []querySpec{
			{ID: "summary", Build: productSummaryQuery},
			{ID: "byCategory", Build: func(f domain.FilterSet) (string, []any) {
				return categoryRevenueQuery(f, false)
			}},
			{ID: "bySubcategory", Build: subcategoryRevenueQuery},
			{ID: "topSellers", Build: productRevenueQuery},
		},
		Merge: mergeProducts,
	}
}

func mergeProducts(_ domain.FilterSet, rs store.ResultSets) (domain.Report, error) {
	summary := firstRow(rs["summary"])

	categories := dimensionRows(rs["byCategory"], "category_id", "category", "revenue", "")
	attachShare(categories)
	foldChildren(categories, subcategoryChildren(rs["bySubcategory"]))
	sortByValueDesc(categories)

	// Top sellers rank by units sold, not revenue.
	sellers := make([]domain.DimensionMetric, 0, len(rs["topSellers"]))
	for _, row := range rs["topSellers"] {
		sellers = append(sellers, domain.DimensionMetric{
			Key:   row.String("product_id"),
			Name:  row.String("name"),
			Value: row.Float("quantity"),
			Count: row.Int("quantity"),
		})
	}
	attachShare(sellers)

	return domain.ProductsReport{
		TotalProducts:  summary.Int("total_products"),
		ActiveProducts: summary.Int("active_products"),
		AvgListPrice:   summary.Float("avg_list_price"),
		ByCategory:     categories,
		TopSellers:     topN(sellers, 10),
	}, nil
}

func subcategoryChildren(rs store.ResultSet) map[string][]domain.DimensionMetric {
	children := make(map[string][]domain.DimensionMetric)
	for _, row := range rs {
		parent := row.String("category_id")
		children[parent] = append(children[parent], domain.DimensionMetric{
			Key:   row.String("subcategory_id"),
			Name:  row.String("subcategory"),
			Value: row.Float("revenue"),
			Count: row.Int("products"),
		})
	}
	return children
}

func categoriesPlan() Plan {
	return Plan{
		Report: domain.ReportCategories,
		Queries: []querySpec{
			{ID: "byCategory", Build: func(f domain.FilterSet) (string, []any) {
				return categoryRevenueQuery(f, false)
			}},
			{ID: "prevByCategory", Build: func(f domain.FilterSet) (string, []any) {
				return categoryRevenueQuery(f, true)
			}},
			{ID: "bySubcategory", Build: subcategoryRevenueQuery},
		},
		Merge: mergeCategories,
	}
}

func mergeCategories(_ domain.FilterSet, rs store.ResultSets) (domain.Report, error) {
	categories := dimensionRows(rs["byCategory"], "category_id", "category", "revenue", "")
	attachGrowth(categories, valueByKey(rs["prevByCategory"], "category_id", "revenue"))
	attachShare(categories)
	foldChildren(categories, subcategoryChildren(rs["bySubcategory"]))
	sortByValueDesc(categories)

	return domain.CategoriesReport{Categories: categories}, nil
}

func inventorySummaryQuery(_ domain.FilterSet) (string, []any) {
	return `
		SELECT
			COUNT(DISTINCT pin.product_id) AS total_items,
			COALESCE(SUM(pin.quantity), 0) AS total_quantity,
			COALESCE(SUM(pin.quantity * p.standard_cost), 0) AS total_value
		FROM product_inventory pin
		JOIN product p ON p.product_id = pin.product_id`, nil
}

func stockLevelQuery(f domain.FilterSet) (string, []any) {
	var frags []Fragment
	if search, ok := searchClause(f.Search, "p.name", "p.product_number"); ok {
		frags = append(frags, search)
	}
	clause, args := where(frags...)
	return `
		SELECT
			p.product_id,
			p.name,
			p.safety_stock_level,
			COALESCE(SUM(pin.quantity), 0) AS quantity
		FROM product p
		LEFT JOIN product_inventory pin ON pin.product_id = p.product_id` + clause + `
		GROUP BY p.product_id, p.name, p.safety_stock_level
		ORDER BY p.product_id`, args
}

func locationQuantityQuery(_ domain.FilterSet) (string, []any) {
	return `
		SELECT
			l.name AS location,
			COALESCE(SUM(pin.quantity), 0) AS quantity
		FROM product_inventory pin
		JOIN location l ON l.location_id = pin.location_id
		GROUP BY l.name
		ORDER BY quantity DESC, l.name ASC`, nil
}

func inventoryPlan() Plan {
	return Plan{
		Report: domain.ReportInventory,
		Queries: []querySpec{
			{ID: "summary", Build: inventorySummaryQuery},
			{ID: "stockLevels", Build: stockLevelQuery},
			{ID: "byLocation", Build: locationQuantityQuery},
		},
		Merge: mergeInventory,
	}
}

func mergeInventory(_ domain.FilterSet, rs store.ResultSets) (domain.Report, error) {
	summary := firstRow(rs["summary"])

	items := make([]domain.StockItem, 0, len(rs["stockLevels"]))
	for _, row := range rs["stockLevels"] {
		items = append(items, domain.StockItem{
			ProductID:   row.Int("product_id"),
			Name:        row.String("name"),
			Quantity:    row.Int("quantity"),
			SafetyStock: row.Int("safety_stock_level"),
		})
	}
	low, high := classifyStock(items)

	byLocation := make([]domain.DimensionMetric, 0, len(rs["byLocation"]))
	for _, row := range rs["byLocation"] {
		byLocation = append(byLocation, domain.DimensionMetric{
			Key:   row.String("location"),
			Name:  row.String("location"),
			Count: row.Int("quantity"),
		})
	}

	return domain.InventoryReport{
		TotalItems:    summary.Int("total_items"),
		TotalQuantity: summary.Int("total_quantity"),
		TotalValue:    summary.Float("total_value"),
		LowStock:      low,
		HighStock:     high,
		ByLocation:    byLocation,
	}, nil
}
