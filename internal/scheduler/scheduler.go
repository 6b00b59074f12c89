package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/tilestock/internal/config"
	"github.com/mamadbah2/tilestock/internal/domain/models"
)

const jobTimeout = 2 * time.Minute

// DashboardRefresher rebuilds the dashboard and records it as the latest result.
type DashboardRefresher interface {
	Refresh(ctx context.Context) (*models.DashboardData, error)
}

// SnapshotStore persists dashboard snapshots.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, snapshot models.DashboardSnapshot) error
}

// LowStockExporter writes the low-stock list to an external report.
type LowStockExporter interface {
	ExportLowStock(ctx context.Context, data models.DashboardData) error
}

// LowStockNotifier pushes a low-stock alert.
type LowStockNotifier interface {
	NotifyLowStock(ctx context.Context, data models.DashboardData) (bool, error)
}

// Sinks receive every scheduled dashboard. Nil sinks are skipped.
type Sinks struct {
	Store    SnapshotStore
	Exporter LowStockExporter
	Notifier LowStockNotifier
}

// Scheduler runs the periodic dashboard snapshot job.
type Scheduler struct {
	cron      *cron.Cron
	schedule  string
	dashboard DashboardRefresher
	sinks     Sinks
	now       func() time.Time
	logger    *zap.Logger
}

// NewScheduler creates a new scheduler instance running in the configured timezone.
func NewScheduler(cfg config.SnapshotConfig, dashboard DashboardRefresher, sinks Sinks, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load scheduler timezone %q: %w", cfg.Timezone, err)
	}

	// Standard 5-field cron expressions: min, hour, dom, month, dow.
	c := cron.New(cron.WithLocation(loc))

	return &Scheduler{
		cron:      c,
		schedule:  cfg.CronSchedule,
		dashboard: dashboard,
		sinks:     sinks,
		now:       time.Now,
		logger:    logger,
	}, nil
}

// Start registers the snapshot job and starts the scheduler.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.snapshotJob); err != nil {
		return fmt.Errorf("schedule dashboard snapshot %q: %w", s.schedule, err)
	}

	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) snapshotJob() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.runOnce(ctx); err != nil {
		s.logger.Error("dashboard snapshot failed", zap.Error(err))
	}
}

// runOnce refreshes the dashboard and hands it to every configured sink. Sink
// failures are logged; only a failed refresh is returned.
func (s *Scheduler) runOnce(ctx context.Context) error {
	s.logger.Info("building dashboard snapshot")

	data, err := s.dashboard.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("refresh dashboard: %w", err)
	}

	if s.sinks.Store != nil {
		snapshot := models.DashboardSnapshot{Dashboard: *data, CreatedAt: s.now().UTC()}
		if err := s.sinks.Store.SaveSnapshot(ctx, snapshot); err != nil {
			s.logger.Error("failed to store dashboard snapshot", zap.Error(err))
		}
	}

	if s.sinks.Exporter != nil {
		if err := s.sinks.Exporter.ExportLowStock(ctx, *data); err != nil {
			s.logger.Error("failed to export low stock rows", zap.Error(err))
		}
	}

	if s.sinks.Notifier != nil {
		sent, err := s.sinks.Notifier.NotifyLowStock(ctx, *data)
		switch {
		case err != nil:
			s.logger.Error("failed to send low stock alert", zap.Error(err))
		case !sent:
			s.logger.Debug("no low stock alert needed")
		}
	}

	s.logger.Info("dashboard snapshot completed",
		zap.Int("low_stock", len(data.LowStock)),
		zap.Int("total_stock", data.Summary.TotalStock))
	return nil
}
