package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/tilestock/internal/domain/models"
	"github.com/mamadbah2/tilestock/internal/service/aggregator"
)

// ErrLoadFailed wraps any fetch failure of a dashboard load. One failing
// fetch discards the results of all the others.
var ErrLoadFailed = errors.New("failed to load dashboard data")

// ErrStaleLoad is returned when a newer refresh started before this one finished.
var ErrStaleLoad = errors.New("dashboard load superseded by a newer refresh")

// Source lists the collections the dashboard is built from.
type Source interface {
	ListInventory(ctx context.Context) ([]models.InventoryRecord, error)
	ListStockMovements(ctx context.Context) ([]models.StockMovement, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListLocations(ctx context.Context) ([]models.Location, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// Service fetches dashboard collections concurrently and aggregates them.
type Service struct {
	source Source
	opts   aggregator.Options
	logger *zap.Logger
	now    func() time.Time

	mu         sync.RWMutex
	generation uint64
	latest     *models.DashboardData
}

// NewService wires a dashboard service.
func NewService(source Source, opts aggregator.Options, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		source: source,
		opts:   opts,
		logger: logger,
		now:    time.Now,
	}
}

// Load fetches every collection in parallel and builds the dashboard. It keeps
// no state between calls.
func (s *Service) Load(ctx context.Context) (*models.DashboardData, error) {
	start := s.now()

	collections, err := s.fetch(ctx)
	if err != nil {
		s.logger.Error("dashboard load failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	data := aggregator.Build(collections, s.opts, s.now().UTC())

	s.logger.Debug("dashboard loaded",
		zap.Int("products", len(collections.Products)),
		zap.Int("inventory", len(collections.Inventory)),
		zap.Int("movements", len(collections.Movements)),
		zap.Duration("duration", s.now().Sub(start)))

	return &data, nil
}

// Refresh loads the dashboard and records it as the latest result. When a
// newer Refresh starts before this one completes, this result is discarded
// and ErrStaleLoad is returned.
func (s *Service) Refresh(ctx context.Context) (*models.DashboardData, error) {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	data, err := s.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.logger.Debug("discarding stale dashboard load", zap.Uint64("generation", gen), zap.Uint64("current", s.generation))
		return nil, ErrStaleLoad
	}
	if err != nil {
		return nil, err
	}

	s.latest = data
	return data, nil
}

// Latest returns the most recent successful Refresh result, if any.
func (s *Service) Latest() (*models.DashboardData, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.latest != nil
}

func (s *Service) fetch(ctx context.Context) (aggregator.Collections, error) {
	var c aggregator.Collections
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		if c.Inventory, err = s.source.ListInventory(gctx); err != nil {
			return fmt.Errorf("list inventory: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if c.Movements, err = s.source.ListStockMovements(gctx); err != nil {
			return fmt.Errorf("list stock movements: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if c.Products, err = s.source.ListProducts(gctx); err != nil {
			return fmt.Errorf("list products: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if c.Locations, err = s.source.ListLocations(gctx); err != nil {
			return fmt.Errorf("list locations: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if c.Categories, err = s.source.ListCategories(gctx); err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return aggregator.Collections{}, err
	}
	return c, nil
}
