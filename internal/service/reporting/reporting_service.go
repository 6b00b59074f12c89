package reporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/tilestock/internal/domain/models"
	repo "github.com/mamadbah2/tilestock/internal/repository/sheets"
)

const timestampLayout = "2006-01-02 15:04"

// unknownName is printed when a product or location id did not resolve.
const unknownName = "(unknown)"

// Service turns dashboard view models into low-stock reports.
type Service struct {
	repo     repo.Repository
	location *time.Location
	logger   *zap.Logger
}

// NewService wires a new reporting service. repository may be nil when
// spreadsheet export is disabled.
func NewService(repository repo.Repository, location *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if location == nil {
		location = time.UTC
	}
	return &Service{repo: repository, location: location, logger: logger}
}

// LowStockMessage formats the low-stock list as a short text alert. The
// second return value is false when nothing is low on stock.
func (s *Service) LowStockMessage(data models.DashboardData) (string, bool) {
	if len(data.LowStock) == 0 {
		return "", false
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Low stock alert (%s)\n", data.GeneratedAt.In(s.location).Format(timestampLayout))
	for _, item := range data.LowStock {
		fmt.Fprintf(&b, "- %s @ %s: %d left\n", nameOr(item.ProductName), nameOr(item.LocationName), item.Quantity)
	}
	fmt.Fprintf(&b, "Total stock: %d units across %d locations.", data.Summary.TotalStock, data.Summary.TotalLocations)

	return b.String(), true
}

// LowStockRows converts the low-stock list into spreadsheet rows:
// timestamp, inventory id, product, location, quantity, last updated.
func (s *Service) LowStockRows(data models.DashboardData) [][]interface{} {
	stamp := data.GeneratedAt.In(s.location).Format(timestampLayout)

	rows := make([][]interface{}, 0, len(data.LowStock))
	for _, item := range data.LowStock {
		lastUpdated := ""
		if !item.LastUpdated.IsZero() {
			lastUpdated = item.LastUpdated.In(s.location).Format(timestampLayout)
		}
		rows = append(rows, []interface{}{
			stamp,
			item.ID,
			nameOr(item.ProductName),
			nameOr(item.LocationName),
			item.Quantity,
			lastUpdated,
		})
	}
	return rows
}

// ExportLowStock appends the low-stock rows to the spreadsheet. It is a no-op
// when export is disabled or nothing is low on stock.
func (s *Service) ExportLowStock(ctx context.Context, data models.DashboardData) error {
	if s.repo == nil {
		return nil
	}

	rows := s.LowStockRows(data)
	if len(rows) == 0 {
		s.logger.Debug("no low stock rows to export")
		return nil
	}

	if err := s.repo.AppendRows(ctx, rows); err != nil {
		return fmt.Errorf("export low stock rows: %w", err)
	}

	s.logger.Info("low stock rows exported", zap.Int("rows", len(rows)))
	return nil
}

func nameOr(name *string) string {
	if name == nil || *name == "" {
		return unknownName
	}
	return *name
}
