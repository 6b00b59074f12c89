// Package aggregator joins independently fetched inventory collections into
// the denormalized view models rendered by the dashboard. Every function is
// pure: missing references degrade to absent names, never to errors.
package aggregator

import (
	"sort"
	"strconv"
	"time"

	"github.com/mamadbah2/tilestock/internal/domain/models"
)

const (
	// DefaultLowStockThreshold marks records with fewer units as low stock.
	DefaultLowStockThreshold = 10
	// DefaultListLimit caps the low-stock and recent-movement lists.
	DefaultListLimit = 5
)

// Collections bundles the raw lists fetched for one dashboard load.
type Collections struct {
	Products   []models.Product
	Locations  []models.Location
	Categories []models.Category
	Inventory  []models.InventoryRecord
	Movements  []models.StockMovement
}

// Options tunes the list selections. Zero values fall back to the defaults.
type Options struct {
	LowStockThreshold int
	ListLimit         int
}

func (o Options) withDefaults() Options {
	if o.LowStockThreshold == 0 {
		o.LowStockThreshold = DefaultLowStockThreshold
	}
	if o.ListLimit == 0 {
		o.ListLimit = DefaultListLimit
	}
	return o
}

// Build computes the whole dashboard view model.
func Build(c Collections, opts Options, now time.Time) models.DashboardData {
	opts = opts.withDefaults()

	return models.DashboardData{
		Summary:         Summarize(c.Products, c.Inventory, c.Locations),
		RecentMovements: RecentMovements(c.Movements, c.Products, c.Locations, opts.ListLimit),
		LowStock:        LowStock(c.Inventory, c.Products, c.Locations, opts.LowStockThreshold, opts.ListLimit),
		StockByLocation: ByLocation(c.Locations, c.Inventory),
		StockByCategory: ByCategory(c.Products, c.Inventory, c.Categories),
		GeneratedAt:     now,
	}
}

// ByLocation sums inventory quantities per location, in location order.
// Locations without records report zero.
func ByLocation(locations []models.Location, inventory []models.InventoryRecord) []models.ChartPoint {
	totals := make(map[int64]int, len(locations))
	for _, item := range inventory {
		totals[item.Location] += item.Quantity
	}

	points := make([]models.ChartPoint, 0, len(locations))
	for _, loc := range locations {
		points = append(points, models.ChartPoint{Name: loc.Name, Value: totals[loc.ID]})
	}
	return points
}

// ByCategory sums inventory quantities per product category. Categories come
// out in the order they are first seen in products; labels are taken from the
// category's size, then its name.
func ByCategory(products []models.Product, inventory []models.InventoryRecord, categories []models.Category) []models.ChartPoint {
	var order []int64
	members := make(map[int64]map[int64]struct{})
	for _, p := range products {
		set, ok := members[p.Category]
		if !ok {
			set = make(map[int64]struct{})
			members[p.Category] = set
			order = append(order, p.Category)
		}
		set[p.ID] = struct{}{}
	}

	labels := make(map[int64]string, len(categories))
	for _, c := range categories {
		if _, seen := labels[c.ID]; seen {
			continue
		}
		labels[c.ID] = categoryLabel(c)
	}

	points := make([]models.ChartPoint, 0, len(order))
	for _, categoryID := range order {
		set := members[categoryID]
		total := 0
		for _, item := range inventory {
			if _, ok := set[item.Product]; ok {
				total += item.Quantity
			}
		}

		label, ok := labels[categoryID]
		if !ok || label == "" {
			label = "category " + strconv.FormatInt(categoryID, 10)
		}
		points = append(points, models.ChartPoint{Name: label, Value: total})
	}
	return points
}

func categoryLabel(c models.Category) string {
	if c.Size != "" {
		return c.Size
	}
	return c.Name
}

// LowStock selects records with quantity below threshold, least stocked first,
// capped at limit. Ties keep their input order.
func LowStock(inventory []models.InventoryRecord, products []models.Product, locations []models.Location, threshold, limit int) []models.InventoryRow {
	if limit <= 0 {
		return []models.InventoryRow{}
	}

	var low []models.InventoryRecord
	for _, item := range inventory {
		if item.Quantity < threshold {
			low = append(low, item)
		}
	}
	sort.SliceStable(low, func(i, j int) bool { return low[i].Quantity < low[j].Quantity })
	if len(low) > limit {
		low = low[:limit]
	}

	return InventoryRows(low, products, locations)
}

// InventoryRows attaches product and location names to every record, keeping order.
func InventoryRows(inventory []models.InventoryRecord, products []models.Product, locations []models.Location) []models.InventoryRow {
	productNames := ProductNames(products)
	locationNames := LocationNames(locations)

	rows := make([]models.InventoryRow, 0, len(inventory))
	for _, item := range inventory {
		rows = append(rows, models.InventoryRow{
			InventoryRecord: item,
			ProductName:     productNames.Lookup(item.Product),
			LocationName:    locationNames.Lookup(item.Location),
		})
	}
	return rows
}

// ProductRows attaches brand and category names to every product, keeping order.
func ProductRows(products []models.Product, brands []models.Brand, categories []models.Category) []models.ProductRow {
	brandNames := BrandNames(brands)
	categoryNames := CategoryNames(categories)

	rows := make([]models.ProductRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, models.ProductRow{
			Product:      p,
			BrandName:    brandNames.Lookup(p.Brand),
			CategoryName: categoryNames.Lookup(p.Category),
		})
	}
	return rows
}

// RecentMovements returns the newest movements first, capped at limit, with
// product and location names attached. Movements sharing a timestamp keep
// their input order.
func RecentMovements(movements []models.StockMovement, products []models.Product, locations []models.Location, limit int) []models.MovementRow {
	if limit <= 0 {
		return []models.MovementRow{}
	}

	sorted := make([]models.StockMovement, len(movements))
	copy(sorted, movements)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MovementDate.After(sorted[j].MovementDate)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	return MovementRows(sorted, products, locations)
}

// MovementRows attaches display names to every movement, keeping order.
func MovementRows(movements []models.StockMovement, products []models.Product, locations []models.Location) []models.MovementRow {
	productNames := ProductNames(products)
	locationNames := LocationNames(locations)

	rows := make([]models.MovementRow, 0, len(movements))
	for _, m := range movements {
		rows = append(rows, models.MovementRow{
			StockMovement:    m,
			ProductName:      productNames.Lookup(m.Product),
			FromLocationName: locationNames.Lookup(m.FromLocation),
			ToLocationName:   locationNames.Lookup(m.ToLocation),
		})
	}
	return rows
}

// Summarize computes the dashboard headline counters.
func Summarize(products []models.Product, inventory []models.InventoryRecord, locations []models.Location) models.Summary {
	total := 0
	for _, item := range inventory {
		total += item.Quantity
	}
	return models.Summary{
		TotalProducts:  len(products),
		TotalStock:     total,
		TotalLocations: len(locations),
	}
}
