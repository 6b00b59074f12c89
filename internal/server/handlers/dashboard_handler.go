package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/tilestock/internal/domain/models"
	"github.com/mamadbah2/tilestock/internal/repository/mongodb"
)

// DashboardService builds dashboard view models.
type DashboardService interface {
	Load(ctx context.Context) (*models.DashboardData, error)
	Latest() (*models.DashboardData, bool)
}

// SnapshotReader reads stored dashboard snapshots.
type SnapshotReader interface {
	LatestSnapshot(ctx context.Context) (*models.DashboardSnapshot, error)
}

// DashboardHandler serves the dashboard view model over HTTP.
type DashboardHandler struct {
	svc       DashboardService
	snapshots SnapshotReader
	logger    *zap.Logger
}

// NewDashboardHandler constructs the HTTP handler adapter. snapshots may be
// nil when snapshot storage is disabled.
func NewDashboardHandler(svc DashboardService, snapshots SnapshotReader, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{svc: svc, snapshots: snapshots, logger: logger}
}

// Get loads a fresh dashboard from the inventory API.
func (h *DashboardHandler) Get(c *gin.Context) {
	data, err := h.svc.Load(c.Request.Context())
	if err != nil {
		h.logger.Error("failed loading dashboard", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load dashboard data"})
		return
	}

	c.JSON(http.StatusOK, data)
}

// Latest returns the dashboard built by the last scheduled refresh.
func (h *DashboardHandler) Latest(c *gin.Context) {
	data, ok := h.svc.Latest()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no dashboard has been built yet"})
		return
	}

	c.JSON(http.StatusOK, data)
}

// LatestSnapshot returns the most recent stored snapshot.
func (h *DashboardHandler) LatestSnapshot(c *gin.Context) {
	if h.snapshots == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "snapshot storage is disabled"})
		return
	}

	snapshot, err := h.snapshots.LatestSnapshot(c.Request.Context())
	if errors.Is(err, mongodb.ErrNoSnapshot) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no snapshot stored yet"})
		return
	}
	if err != nil {
		h.logger.Error("failed reading latest snapshot", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to read snapshot"})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}
