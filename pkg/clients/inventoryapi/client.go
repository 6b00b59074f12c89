package inventoryapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/tilestock/internal/config"
	"github.com/mamadbah2/tilestock/internal/domain/models"
)

// Client exposes the inventory REST API operations used by the dashboard and pages.
type Client interface {
	ListBrands(ctx context.Context) ([]models.Brand, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListLocations(ctx context.Context) ([]models.Location, error)

	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	ListInventory(ctx context.Context) ([]models.InventoryRecord, error)
	CreateInventory(ctx context.Context, in models.InventoryInput) (*models.InventoryRecord, error)
	DeleteInventory(ctx context.Context, id int64) error

	ListStockMovements(ctx context.Context) ([]models.StockMovement, error)
	CreateStockMovement(ctx context.Context, in models.StockMovementInput) (*models.StockMovement, error)
	UpdateStockMovement(ctx context.Context, id int64, in models.StockMovementInput) (*models.StockMovement, error)
	DeleteStockMovement(ctx context.Context, id int64) error
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds an inventory API client from configuration.
func NewClient(cfg config.InventoryAPIConfig) *APIClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)

	return &APIClient{httpClient: restyClient}
}

// APIError is returned when the API answers with a 4xx or 5xx status.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("inventory api error: %s %s: status=%d, body=%s", e.Method, e.Path, e.StatusCode, e.Body)
}

func (c *APIClient) ListBrands(ctx context.Context) ([]models.Brand, error) {
	return list[models.Brand](ctx, c, "/brands/")
}

func (c *APIClient) ListCategories(ctx context.Context) ([]models.Category, error) {
	return list[models.Category](ctx, c, "/categories/")
}

func (c *APIClient) ListLocations(ctx context.Context) ([]models.Location, error) {
	return list[models.Location](ctx, c, "/locations/")
}

func (c *APIClient) ListProducts(ctx context.Context) ([]models.Product, error) {
	return list[models.Product](ctx, c, "/products/")
}

func (c *APIClient) CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	out := new(models.Product)
	if err := c.do(ctx, http.MethodPost, "/products/", in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *APIClient) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d/", id), nil, nil)
}

func (c *APIClient) ListInventory(ctx context.Context) ([]models.InventoryRecord, error) {
	return list[models.InventoryRecord](ctx, c, "/inventory/")
}

func (c *APIClient) CreateInventory(ctx context.Context, in models.InventoryInput) (*models.InventoryRecord, error) {
	out := new(models.InventoryRecord)
	if err := c.do(ctx, http.MethodPost, "/inventory/", in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *APIClient) DeleteInventory(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/inventory/%d/", id), nil, nil)
}

func (c *APIClient) ListStockMovements(ctx context.Context) ([]models.StockMovement, error) {
	return list[models.StockMovement](ctx, c, "/stock-movements/")
}

func (c *APIClient) CreateStockMovement(ctx context.Context, in models.StockMovementInput) (*models.StockMovement, error) {
	out := new(models.StockMovement)
	if err := c.do(ctx, http.MethodPost, "/stock-movements/", in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *APIClient) UpdateStockMovement(ctx context.Context, id int64, in models.StockMovementInput) (*models.StockMovement, error) {
	out := new(models.StockMovement)
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/stock-movements/%d/", id), in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *APIClient) DeleteStockMovement(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/stock-movements/%d/", id), nil, nil)
}

func list[T any](ctx context.Context, c *APIClient, path string) ([]T, error) {
	out := make([]T, 0)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *APIClient) do(ctx context.Context, method, path string, body, result any) error {
	req := c.httpClient.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode(),
			Body:       strings.TrimSpace(resp.String()),
		}
	}

	return nil
}
