package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/tilestock/internal/domain/models"
	"github.com/mamadbah2/tilestock/internal/service/pages"
)

// ProductsPage is the products page flow.
type ProductsPage interface {
	Load(ctx context.Context) error
	Create(ctx context.Context, in models.ProductInput) error
	Delete(ctx context.Context, id int64, confirmed bool) error
	View() pages.ProductsView
}

// InventoryPage is the inventory page flow.
type InventoryPage interface {
	Load(ctx context.Context) error
	Create(ctx context.Context, in models.InventoryInput) error
	Delete(ctx context.Context, id int64, confirmed bool) error
	View() pages.InventoryView
}

// MovementsPage is the stock-movement page flow.
type MovementsPage interface {
	Load(ctx context.Context) error
	Create(ctx context.Context, in models.StockMovementInput) error
	Update(ctx context.Context, id int64, in models.StockMovementInput) error
	Delete(ctx context.Context, id int64, confirmed bool) error
	View() pages.MovementsView
}

// PagesHandler exposes the CRUD pages. Every response carries the page state
// after the operation, including its error banner.
type PagesHandler struct {
	products  ProductsPage
	inventory InventoryPage
	movements MovementsPage
	logger    *zap.Logger
}

// NewPagesHandler constructs the HTTP handler adapter.
func NewPagesHandler(products ProductsPage, inventory InventoryPage, movements MovementsPage, logger *zap.Logger) *PagesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PagesHandler{products: products, inventory: inventory, movements: movements, logger: logger}
}

// ListProducts reloads and returns the products page.
func (h *PagesHandler) ListProducts(c *gin.Context) {
	err := h.products.Load(c.Request.Context())
	h.respond(c, err, http.StatusOK, func() any { return h.products.View() })
}

// CreateProduct submits the product form.
func (h *PagesHandler) CreateProduct(c *gin.Context) {
	var in models.ProductInput
	if !h.bind(c, &in) {
		return
	}
	err := h.products.Create(c.Request.Context(), in)
	h.respond(c, err, http.StatusCreated, func() any { return h.products.View() })
}

// DeleteProduct deletes a product when ?confirm=true is set.
func (h *PagesHandler) DeleteProduct(c *gin.Context) {
	id, confirmed, ok := h.deleteParams(c)
	if !ok {
		return
	}
	err := h.products.Delete(c.Request.Context(), id, confirmed)
	h.respond(c, err, http.StatusOK, func() any { return h.products.View() })
}

// ListInventory reloads and returns the inventory page.
func (h *PagesHandler) ListInventory(c *gin.Context) {
	err := h.inventory.Load(c.Request.Context())
	h.respond(c, err, http.StatusOK, func() any { return h.inventory.View() })
}

// CreateInventory submits the inventory form.
func (h *PagesHandler) CreateInventory(c *gin.Context) {
	var in models.InventoryInput
	if !h.bind(c, &in) {
		return
	}
	err := h.inventory.Create(c.Request.Context(), in)
	h.respond(c, err, http.StatusCreated, func() any { return h.inventory.View() })
}

// DeleteInventory deletes an inventory record when ?confirm=true is set.
func (h *PagesHandler) DeleteInventory(c *gin.Context) {
	id, confirmed, ok := h.deleteParams(c)
	if !ok {
		return
	}
	err := h.inventory.Delete(c.Request.Context(), id, confirmed)
	h.respond(c, err, http.StatusOK, func() any { return h.inventory.View() })
}

// ListMovements reloads and returns the stock-movement page.
func (h *PagesHandler) ListMovements(c *gin.Context) {
	err := h.movements.Load(c.Request.Context())
	h.respond(c, err, http.StatusOK, func() any { return h.movements.View() })
}

// CreateMovement submits the new stock-movement form.
func (h *PagesHandler) CreateMovement(c *gin.Context) {
	var in models.StockMovementInput
	if !h.bind(c, &in) {
		return
	}
	err := h.movements.Create(c.Request.Context(), in)
	h.respond(c, err, http.StatusCreated, func() any { return h.movements.View() })
}

// UpdateMovement submits the edit form of an existing stock movement.
func (h *PagesHandler) UpdateMovement(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	var in models.StockMovementInput
	if !h.bind(c, &in) {
		return
	}
	err := h.movements.Update(c.Request.Context(), id, in)
	h.respond(c, err, http.StatusOK, func() any { return h.movements.View() })
}

// DeleteMovement deletes a stock movement when ?confirm=true is set.
func (h *PagesHandler) DeleteMovement(c *gin.Context) {
	id, confirmed, ok := h.deleteParams(c)
	if !ok {
		return
	}
	err := h.movements.Delete(c.Request.Context(), id, confirmed)
	h.respond(c, err, http.StatusOK, func() any { return h.movements.View() })
}

// respond maps a page error onto a status code. Validation errors get a plain
// error body; everything else returns the page view, whose banner describes
// any failure.
func (h *PagesHandler) respond(c *gin.Context, err error, okStatus int, view func() any) {
	switch {
	case err == nil:
		c.JSON(okStatus, view())
	case errors.Is(err, pages.ErrMissingFields), errors.Is(err, pages.ErrNotConfirmed):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, pages.ErrStaleLoad):
		// A newer load owns the page; serve whatever it has settled on.
		c.JSON(http.StatusOK, view())
	default:
		h.logger.Warn("page operation failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusBadGateway, view())
	}
}

func (h *PagesHandler) bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.logger.Warn("invalid page payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}

func (h *PagesHandler) idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func (h *PagesHandler) deleteParams(c *gin.Context) (int64, bool, bool) {
	id, ok := h.idParam(c)
	if !ok {
		return 0, false, false
	}
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))
	return id, confirmed, true
}
