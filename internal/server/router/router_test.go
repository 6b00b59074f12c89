package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mamadbah2/tilestock/internal/domain/models"
	"github.com/mamadbah2/tilestock/internal/server/handlers"
	"github.com/mamadbah2/tilestock/internal/service/pages"
)

type emptyDashboard struct{}

func (emptyDashboard) Load(context.Context) (*models.DashboardData, error) {
	return &models.DashboardData{}, nil
}

func (emptyDashboard) Latest() (*models.DashboardData, bool) { return nil, false }

type emptyAPI struct{}

func (emptyAPI) ListBrands(context.Context) ([]models.Brand, error) { return nil, nil }
func (emptyAPI) ListCategories(context.Context) ([]models.Category, error) { return nil, nil }
func (emptyAPI) ListProducts(context.Context) ([]models.Product, error) { return nil, nil }
func (emptyAPI) ListLocations(context.Context) ([]models.Location, error) { return nil, nil }
func (emptyAPI) ListInventory(context.Context) ([]models.InventoryRecord, error) {
	return nil, nil
}
func (emptyAPI) ListStockMovements(context.Context) ([]models.StockMovement, error) {
	return nil, nil
}
func (emptyAPI) CreateProduct(context.Context, models.ProductInput) (*models.Product, error) {
	return &models.Product{}, nil
}
func (emptyAPI) DeleteProduct(context.Context, int64) error { return nil }
func (emptyAPI) CreateInventory(context.Context, models.InventoryInput) (*models.InventoryRecord, error) {
	return &models.InventoryRecord{}, nil
}
func (emptyAPI) DeleteInventory(context.Context, int64) error { return nil }
func (emptyAPI) CreateStockMovement(context.Context, models.StockMovementInput) (*models.StockMovement, error) {
	return &models.StockMovement{}, nil
}
func (emptyAPI) UpdateStockMovement(context.Context, int64, models.StockMovementInput) (*models.StockMovement, error) {
	return &models.StockMovement{}, nil
}
func (emptyAPI) DeleteStockMovement(context.Context, int64) error { return nil }

func TestRoutes(t *testing.T) {
	api := emptyAPI{}
	engine := New(
		handlers.NewDashboardHandler(emptyDashboard{}, nil, nil),
		handlers.NewPagesHandler(pages.NewProductsPage(api, nil), pages.NewInventoryPage(api, nil), pages.NewMovementsPage(api, nil), nil),
		nil,
	)

	cases := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/api/dashboard", http.StatusOK},
		{http.MethodGet, "/api/dashboard/latest", http.StatusNotFound},
		{http.MethodGet, "/api/dashboard/snapshots/latest", http.StatusNotFound},
		{http.MethodGet, "/api/pages/products", http.StatusOK},
		{http.MethodGet, "/api/pages/inventory", http.StatusOK},
		{http.MethodGet, "/api/pages/stock-movements", http.StatusOK},
		{http.MethodDelete, "/api/pages/products/1?confirm=true", http.StatusOK},
		{http.MethodDelete, "/api/pages/inventory/1", http.StatusBadRequest},
		{http.MethodDelete, "/api/pages/stock-movements/1?confirm=true", http.StatusOK},
		{http.MethodGet, "/webhook", http.StatusNotFound},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, tc.want, rec.Code, "%s %s", tc.method, tc.path)
	}
}
