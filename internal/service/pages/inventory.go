package pages

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/tilestock/internal/domain/models"
	"github.com/mamadbah2/tilestock/internal/service/aggregator"
)

// InventoryAPI is the part of the inventory API the inventory page uses.
type InventoryAPI interface {
	ListInventory(ctx context.Context) ([]models.InventoryRecord, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListLocations(ctx context.Context) ([]models.Location, error)
	CreateInventory(ctx context.Context, in models.InventoryInput) (*models.InventoryRecord, error)
	DeleteInventory(ctx context.Context, id int64) error
}

// InventoryView is the rendered state of the inventory page.
type InventoryView struct {
	Inventory []models.InventoryRow `json:"inventory"`
	Products  []models.Product      `json:"products"`
	Locations []models.Location     `json:"locations"`
	Error     string                `json:"error,omitempty"`
}

// InventoryPage lists, adds and deletes inventory records.
type InventoryPage struct {
	page
	api InventoryAPI

	inventory []models.InventoryRecord
	products  []models.Product
	locations []models.Location
}

// NewInventoryPage builds an empty inventory page.
func NewInventoryPage(api InventoryAPI, logger *zap.Logger) *InventoryPage {
	p := &InventoryPage{api: api}
	p.setLogger(logger)
	return p
}

// Load fetches inventory, products and locations concurrently.
func (p *InventoryPage) Load(ctx context.Context) error {
	gen := p.beginLoad()

	var (
		inventory []models.InventoryRecord
		products  []models.Product
		locations []models.Location
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if inventory, err = p.api.ListInventory(gctx); err != nil {
			return fmt.Errorf("list inventory: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if products, err = p.api.ListProducts(gctx); err != nil {
			return fmt.Errorf("list products: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if locations, err = p.api.ListLocations(gctx); err != nil {
			return fmt.Errorf("list locations: %w", err)
		}
		return nil
	})
	err := g.Wait()

	return p.finishLoad(gen, err, BannerLoadFailed, func() {
		p.inventory, p.products, p.locations = inventory, products, locations
	})
}

// Create validates and submits a new inventory record, then reloads the page.
func (p *InventoryPage) Create(ctx context.Context, in models.InventoryInput) error {
	if in.Product == 0 || in.Location == 0 || in.Quantity == nil {
		return ErrMissingFields
	}

	created, err := p.api.CreateInventory(ctx, in)
	if err != nil {
		return p.mutationFailed(BannerCreateInventory, err)
	}
	p.logger.Info("inventory record created", zap.Int64("id", created.ID), zap.Int("quantity", created.Quantity))

	p.reload(ctx)
	return nil
}

// Delete removes an inventory record once confirmed, then reloads the page.
func (p *InventoryPage) Delete(ctx context.Context, id int64, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}

	if err := p.api.DeleteInventory(ctx, id); err != nil {
		return p.mutationFailed(BannerDeleteInventory, err)
	}
	p.logger.Info("inventory record deleted", zap.Int64("id", id))

	p.reload(ctx)
	return nil
}

// View returns a snapshot of the page.
func (p *InventoryPage) View() InventoryView {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return InventoryView{
		Inventory: aggregator.InventoryRows(p.inventory, p.products, p.locations),
		Products:  nonNil(p.products),
		Locations: nonNil(p.locations),
		Error:     p.banner,
	}
}

func (p *InventoryPage) reload(ctx context.Context) {
	if err := p.Load(ctx); err != nil {
		p.logger.Warn("reload after mutation failed", zap.Error(err))
	}
}
