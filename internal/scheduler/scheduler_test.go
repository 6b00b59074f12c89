package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/tilestock/internal/config"
	"github.com/mamadbah2/tilestock/internal/domain/models"
)

type fakeRefresher struct {
	data *models.DashboardData
	err  error
}

func (f *fakeRefresher) Refresh(context.Context) (*models.DashboardData, error) {
	return f.data, f.err
}

type fakeStore struct {
	saved []models.DashboardSnapshot
	err   error
}

func (f *fakeStore) SaveSnapshot(_ context.Context, snapshot models.DashboardSnapshot) error {
	f.saved = append(f.saved, snapshot)
	return f.err
}

type fakeExporter struct {
	calls int
	err   error
}

func (f *fakeExporter) ExportLowStock(context.Context, models.DashboardData) error {
	f.calls++
	return f.err
}

type fakeNotifier struct {
	calls int
	err   error
}

func (f *fakeNotifier) NotifyLowStock(context.Context, models.DashboardData) (bool, error) {
	f.calls++
	return f.err == nil, f.err
}

func newTestScheduler(t *testing.T, refresher DashboardRefresher, sinks Sinks) *Scheduler {
	t.Helper()
	s, err := NewScheduler(config.SnapshotConfig{CronSchedule: "*/30 * * * *", Timezone: "UTC"}, refresher, sinks, nil)
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestRunOnceFeedsEverySink(t *testing.T) {
	data := &models.DashboardData{Summary: models.Summary{TotalStock: 40}}
	store, exporter, notifier := &fakeStore{}, &fakeExporter{}, &fakeNotifier{}
	s := newTestScheduler(t, &fakeRefresher{data: data}, Sinks{Store: store, Exporter: exporter, Notifier: notifier})

	require.NoError(t, s.runOnce(context.Background()))

	require.Len(t, store.saved, 1)
	assert.Equal(t, 40, store.saved[0].Dashboard.Summary.TotalStock)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), store.saved[0].CreatedAt)
	assert.Equal(t, 1, exporter.calls)
	assert.Equal(t, 1, notifier.calls)
}

func TestRunOnceSinkFailureDoesNotStopOthers(t *testing.T) {
	store := &fakeStore{err: errors.New("mongo down")}
	exporter := &fakeExporter{err: errors.New("sheets down")}
	notifier := &fakeNotifier{}
	s := newTestScheduler(t, &fakeRefresher{data: &models.DashboardData{}}, Sinks{Store: store, Exporter: exporter, Notifier: notifier})

	require.NoError(t, s.runOnce(context.Background()))

	assert.Len(t, store.saved, 1)
	assert.Equal(t, 1, exporter.calls)
	assert.Equal(t, 1, notifier.calls)
}

func TestRunOnceWithoutSinks(t *testing.T) {
	s := newTestScheduler(t, &fakeRefresher{data: &models.DashboardData{}}, Sinks{})
	assert.NoError(t, s.runOnce(context.Background()))
}

func TestRunOnceRefreshFailureSkipsSinks(t *testing.T) {
	boom := errors.New("api down")
	store, exporter, notifier := &fakeStore{}, &fakeExporter{}, &fakeNotifier{}
	s := newTestScheduler(t, &fakeRefresher{err: boom}, Sinks{Store: store, Exporter: exporter, Notifier: notifier})

	err := s.runOnce(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, store.saved)
	assert.Zero(t, exporter.calls)
	assert.Zero(t, notifier.calls)
}

func TestNewSchedulerRejectsBadTimezone(t *testing.T) {
	_, err := NewScheduler(config.SnapshotConfig{CronSchedule: "* * * * *", Timezone: "Mars/Olympus"}, &fakeRefresher{}, Sinks{}, nil)
	assert.Error(t, err)
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s, err := NewScheduler(config.SnapshotConfig{CronSchedule: "not a cron", Timezone: "UTC"}, &fakeRefresher{}, Sinks{}, nil)
	require.NoError(t, err)

	assert.Error(t, s.Start())
}

func TestStartAndStop(t *testing.T) {
	s := newTestScheduler(t, &fakeRefresher{data: &models.DashboardData{}}, Sinks{})

	require.NoError(t, s.Start())
	s.Stop()
}
