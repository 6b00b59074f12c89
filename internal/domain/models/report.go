package models

import "time"

// ChartPoint is a single labelled value of a bar or pie chart.
type ChartPoint struct {
	Name  string `bson:"name" json:"name"`
	Value int    `bson:"value" json:"value"`
}

// InventoryRow is an inventory record with its display names attached. Names
// are nil when the reference does not resolve.
type InventoryRow struct {
	InventoryRecord `bson:",inline"`
	ProductName     *string `bson:"product_name,omitempty" json:"product_name,omitempty"`
	LocationName    *string `bson:"location_name,omitempty" json:"location_name,omitempty"`
}

// ProductRow is a product with its brand and category names attached.
type ProductRow struct {
	Product
	BrandName    *string `json:"brand_name,omitempty"`
	CategoryName *string `json:"category_name,omitempty"`
}

// MovementRow is a stock movement with product and location names attached.
type MovementRow struct {
	StockMovement    `bson:",inline"`
	ProductName      *string `bson:"product_name,omitempty" json:"product_name,omitempty"`
	FromLocationName *string `bson:"from_location_name,omitempty" json:"from_location_name,omitempty"`
	ToLocationName   *string `bson:"to_location_name,omitempty" json:"to_location_name,omitempty"`
}

// Summary holds the headline counters of the dashboard.
type Summary struct {
	TotalProducts  int `bson:"total_products" json:"total_products"`
	TotalStock     int `bson:"total_stock" json:"total_stock"`
	TotalLocations int `bson:"total_locations" json:"total_locations"`
}

// DashboardData is the complete view model rendered by the dashboard.
type DashboardData struct {
	Summary         Summary        `bson:"summary" json:"summary"`
	RecentMovements []MovementRow  `bson:"recent_movements" json:"recent_movements"`
	LowStock        []InventoryRow `bson:"low_stock" json:"low_stock"`
	StockByLocation []ChartPoint   `bson:"stock_by_location" json:"stock_by_location"`
	StockByCategory []ChartPoint   `bson:"stock_by_category" json:"stock_by_category"`
	GeneratedAt     time.Time      `bson:"generated_at" json:"generated_at"`
}

// DashboardSnapshot is a persisted copy of a dashboard computation.
type DashboardSnapshot struct {
	Dashboard DashboardData `bson:"dashboard" json:"dashboard"`
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`
}
