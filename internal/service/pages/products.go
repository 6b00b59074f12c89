package pages

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/tilestock/internal/domain/models"
	"github.com/mamadbah2/tilestock/internal/service/aggregator"
)

// ProductsAPI is the part of the inventory API the products page uses.
type ProductsAPI interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListBrands(ctx context.Context) ([]models.Brand, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// ProductsView is the rendered state of the products page.
type ProductsView struct {
	Products   []models.ProductRow `json:"products"`
	Brands     []models.Brand      `json:"brands"`
	Categories []models.Category   `json:"categories"`
	Error      string              `json:"error,omitempty"`
}

// ProductsPage lists, creates and deletes products.
type ProductsPage struct {
	page
	api ProductsAPI

	products   []models.Product
	brands     []models.Brand
	categories []models.Category
}

// NewProductsPage builds an empty products page.
func NewProductsPage(api ProductsAPI, logger *zap.Logger) *ProductsPage {
	p := &ProductsPage{api: api}
	p.setLogger(logger)
	return p
}

// Load fetches products, brands and categories concurrently. On failure the
// previous collections are kept and the banner is set.
func (p *ProductsPage) Load(ctx context.Context) error {
	gen := p.beginLoad()

	var (
		products   []models.Product
		brands     []models.Brand
		categories []models.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if products, err = p.api.ListProducts(gctx); err != nil {
			return fmt.Errorf("list products: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if brands, err = p.api.ListBrands(gctx); err != nil {
			return fmt.Errorf("list brands: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if categories, err = p.api.ListCategories(gctx); err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		return nil
	})
	err := g.Wait()

	return p.finishLoad(gen, err, BannerLoadFailed, func() {
		p.products, p.brands, p.categories = products, brands, categories
	})
}

// Create validates and submits a new product, then reloads the page.
func (p *ProductsPage) Create(ctx context.Context, in models.ProductInput) error {
	if strings.TrimSpace(in.ProductCode) == "" || strings.TrimSpace(in.Name) == "" ||
		in.Brand == 0 || in.Category == 0 || in.Price == nil {
		return ErrMissingFields
	}

	created, err := p.api.CreateProduct(ctx, in)
	if err != nil {
		return p.mutationFailed(BannerCreateProduct, err)
	}
	p.logger.Info("product created", zap.Int64("id", created.ID), zap.String("code", created.ProductCode))

	p.reload(ctx)
	return nil
}

// Delete removes a product once confirmed, then reloads the page.
func (p *ProductsPage) Delete(ctx context.Context, id int64, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}

	if err := p.api.DeleteProduct(ctx, id); err != nil {
		return p.mutationFailed(BannerDeleteProduct, err)
	}
	p.logger.Info("product deleted", zap.Int64("id", id))

	p.reload(ctx)
	return nil
}

// View returns a snapshot of the page.
func (p *ProductsPage) View() ProductsView {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return ProductsView{
		Products:   aggregator.ProductRows(p.products, p.brands, p.categories),
		Brands:     nonNil(p.brands),
		Categories: nonNil(p.categories),
		Error:      p.banner,
	}
}

// reload refreshes the page after a mutation. A failure only shows on the banner.
func (p *ProductsPage) reload(ctx context.Context) {
	if err := p.Load(ctx); err != nil {
		p.logger.Warn("reload after mutation failed", zap.Error(err))
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
