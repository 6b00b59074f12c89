// Package pages holds the products, inventory and stock-movement page flows.
// A page owns its fetched collections and reloads all of them after every
// successful mutation. Failures never escape as anything richer than a
// banner message: the caller keeps a usable page with stale or empty data.
package pages

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var (
	// ErrLoadFailed is returned when any fetch of a page load fails.
	ErrLoadFailed = errors.New("page load failed")
	// ErrMutationFailed is returned when a create, update or delete call fails.
	ErrMutationFailed = errors.New("page mutation failed")
	// ErrMissingFields is returned when a form lacks a required field. No
	// request is sent.
	ErrMissingFields = errors.New("all required fields must be filled")
	// ErrNotConfirmed is returned when a delete was not confirmed.
	ErrNotConfirmed = errors.New("delete requires confirmation")
	// ErrStaleLoad is returned when a newer load replaced this one.
	ErrStaleLoad = errors.New("page load superseded by a newer load")
)

// Banner messages shown for failed operations.
const (
	BannerLoadFailed      = "Failed to load data"
	BannerCreateProduct   = "Failed to create product"
	BannerDeleteProduct   = "Failed to delete product"
	BannerCreateInventory = "Failed to add inventory item"
	BannerDeleteInventory = "Failed to delete inventory item"
	BannerLoadMovements   = "Failed to load stock movement data"
	BannerCreateMovement  = "Failed to create stock movement"
	BannerUpdateMovement  = "Failed to update stock movement"
	BannerDeleteMovement  = "Failed to delete stock movement"
)

// page carries the bookkeeping shared by every page: the banner, the load
// generation and the lock guarding the page's collections.
type page struct {
	mu         sync.RWMutex
	generation uint64
	banner     string
	logger     *zap.Logger
}

func (p *page) setLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	p.logger = logger
}

// beginLoad starts a new load cycle and returns its generation.
func (p *page) beginLoad() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.generation++
	return p.generation
}

// finishLoad applies the outcome of the load cycle gen under the page lock.
// Results from a superseded cycle are dropped without touching the page.
func (p *page) finishLoad(gen uint64, err error, banner string, apply func()) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.generation {
		p.logger.Debug("discarding stale page load", zap.Uint64("generation", gen), zap.Uint64("current", p.generation))
		return ErrStaleLoad
	}

	if err != nil {
		p.banner = banner
		p.logger.Error("page load failed", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	apply()
	p.banner = ""
	return nil
}

// mutationFailed records a failed mutation on the banner.
func (p *page) mutationFailed(banner string, err error) error {
	p.mu.Lock()
	p.banner = banner
	p.mu.Unlock()

	p.logger.Error("page mutation failed", zap.String("banner", banner), zap.Error(err))
	return fmt.Errorf("%w: %w", ErrMutationFailed, err)
}

// Banner returns the current error banner, empty when the last operation succeeded.
func (p *page) Banner() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.banner
}
