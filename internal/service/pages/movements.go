package pages

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/tilestock/internal/domain/models"
	"github.com/mamadbah2/tilestock/internal/service/aggregator"
)

// MovementsAPI is the part of the inventory API the stock-movement page uses.
type MovementsAPI interface {
	ListStockMovements(ctx context.Context) ([]models.StockMovement, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListLocations(ctx context.Context) ([]models.Location, error)
	CreateStockMovement(ctx context.Context, in models.StockMovementInput) (*models.StockMovement, error)
	UpdateStockMovement(ctx context.Context, id int64, in models.StockMovementInput) (*models.StockMovement, error)
	DeleteStockMovement(ctx context.Context, id int64) error
}

// MovementsView is the rendered state of the stock-movement page.
type MovementsView struct {
	Movements []models.MovementRow `json:"movements"`
	Products  []models.Product     `json:"products"`
	Locations []models.Location    `json:"locations"`
	Error     string               `json:"error,omitempty"`
}

// MovementsPage lists, creates, edits and deletes stock movements.
type MovementsPage struct {
	page
	api MovementsAPI

	movements []models.StockMovement
	products  []models.Product
	locations []models.Location
}

// NewMovementsPage builds an empty stock-movement page.
func NewMovementsPage(api MovementsAPI, logger *zap.Logger) *MovementsPage {
	p := &MovementsPage{api: api}
	p.setLogger(logger)
	return p
}

// Load fetches movements, products and locations concurrently.
func (p *MovementsPage) Load(ctx context.Context) error {
	gen := p.beginLoad()

	var (
		movements []models.StockMovement
		products  []models.Product
		locations []models.Location
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if movements, err = p.api.ListStockMovements(gctx); err != nil {
			return fmt.Errorf("list stock movements: %w", err)
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

	return p.finishLoad(gen, err, BannerLoadMovements, func() {
		p.movements, p.products, p.locations = movements, products, locations
	})
}

// Create validates and submits a new movement, then reloads the page.
func (p *MovementsPage) Create(ctx context.Context, in models.StockMovementInput) error {
	if !movementComplete(in) {
		return ErrMissingFields
	}

	created, err := p.api.CreateStockMovement(ctx, in)
	if err != nil {
		return p.mutationFailed(BannerCreateMovement, err)
	}
	p.logger.Info("stock movement created", zap.Int64("id", created.ID),
		zap.Int64("from", created.FromLocation), zap.Int64("to", created.ToLocation))

	p.reload(ctx)
	return nil
}

// Update replaces the movement with id, then reloads the page.
func (p *MovementsPage) Update(ctx context.Context, id int64, in models.StockMovementInput) error {
	if !movementComplete(in) {
		return ErrMissingFields
	}

	if _, err := p.api.UpdateStockMovement(ctx, id, in); err != nil {
		return p.mutationFailed(BannerUpdateMovement, err)
	}
	p.logger.Info("stock movement updated", zap.Int64("id", id))

	p.reload(ctx)
	return nil
}

// Delete removes a movement once confirmed, then reloads the page.
func (p *MovementsPage) Delete(ctx context.Context, id int64, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}

	if err := p.api.DeleteStockMovement(ctx, id); err != nil {
		return p.mutationFailed(BannerDeleteMovement, err)
	}
	p.logger.Info("stock movement deleted", zap.Int64("id", id))

	p.reload(ctx)
	return nil
}

// View returns a snapshot of the page. Movements keep the API's order.
func (p *MovementsPage) View() MovementsView {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return MovementsView{
		Movements: aggregator.MovementRows(p.movements, p.products, p.locations),
		Products:  nonNil(p.products),
		Locations: nonNil(p.locations),
		Error:     p.banner,
	}
}

func (p *MovementsPage) reload(ctx context.Context) {
	if err := p.Load(ctx); err != nil {
		p.logger.Warn("reload after mutation failed", zap.Error(err))
	}
}

func movementComplete(in models.StockMovementInput) bool {
	return in.Product != 0 && in.FromLocation != 0 && in.ToLocation != 0 && in.Quantity != nil
}
