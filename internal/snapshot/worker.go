// internal/snapshot/worker.go
package snapshot

import (
	"context"
	"time"

	"github.com/gandikediye-afk/gandi-command-center/internal/activity"
	"github.com/gandikediye-afk/gandi-command-center/internal/common/logger"
	"github.com/gandikediye-afk/gandi-command-center/internal/common/metrics"
	"github.com/gandikediye-afk/gandi-command-center/internal/livedata"
	"github.com/gandikediye-afk/gandi-command-center/internal/models"
	"github.com/gandikediye-afk/gandi-command-center/pkg/registry"
)

// liveLoader is the slice of the live data store the worker needs.
type liveLoader interface {
	Load(ctx context.Context) (*livedata.Snapshot, error)
}

type snapshotInserter interface {
	Insert(ctx context.Context, snap *models.EntitySnapshot) error
}

type activityIndexer interface {
	Index(ctx context.Context, event models.ActivityEvent) error
}

type alertNotifier interface {
	NotifyAlerts(ctx context.Context, alerts []models.Alert)
}

// cycleRecorder receives per-cycle telemetry. The OTel observability helper
// satisfies it.
type cycleRecorder interface {
	RecordRefresh(ctx context.Context, status string)
	RecordRefreshDuration(ctx context.Context, duration time.Duration, status string)
}

// Worker periodically captures the live data document into Postgres and the
// activity index, and fans high-severity alerts out to the notifier. The
// cadence matches the dashboard refresh interval.
type Worker struct {
	live     liveLoader
	store    snapshotInserter
	indexer  activityIndexer
	notifier alertNotifier
	recorder cycleRecorder
	log      logger.Logger
	interval time.Duration
	now      func() time.Time
}

func NewWorker(live *livedata.Store, store *Store, indexer *activity.Indexer, notifier alertNotifier, interval time.Duration, log logger.Logger) *Worker {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Worker{
		live:     live,
		store:    store,
		indexer:  indexer,
		notifier: notifier,
		log:      log,
		interval: interval,
		now:      time.Now,
	}
}

// WithRecorder attaches per-cycle telemetry recording.
func (w *Worker) WithRecorder(recorder cycleRecorder) *Worker {
	w.recorder = recorder
	return w
}

// Run processes one cycle immediately, then on every tick until the context
// is cancelled.
func (w *Worker) Run(ctx context.Context) {
	w.log.Info("snapshot worker started", map[string]interface{}{
		"interval": w.interval.String(),
	})

	w.ProcessCycle(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("snapshot worker stopped", nil)
			return
		case <-ticker.C:
			w.ProcessCycle(ctx)
		}
	}
}

// ProcessCycle captures one snapshot per entity. Stale live data (the file
// does not exist yet) is skipped rather than persisted as fake history.
func (w *Worker) ProcessCycle(ctx context.Context) {
	started := w.now()

	snapshot, err := w.live.Load(ctx)
	if err != nil {
		metrics.SnapshotCycles.WithLabelValues("error").Inc()
		w.recordCycle(ctx, started, "error")
		w.log.Error("snapshot cycle failed to load live data", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	if snapshot.Stale {
		metrics.SnapshotCycles.WithLabelValues("skipped").Inc()
		w.recordCycle(ctx, started, "skipped")
		w.log.Debug("skipping snapshot cycle for stale live data", nil)
		return
	}

	capturedAt := w.now().UTC()
	failed := false

	for _, code := range registry.Codes {
		status := snapshot.Data.EntityStatusOrDefault(code)

		snap := models.EntitySnapshot{
			EntityCode:     code,
			HealthScore:    status.HealthScore,
			PendingItems:   status.PendingItems,
			Status:         status.Status,
			RecentActivity: status.RecentActivity,
			CapturedAt:     capturedAt,
		}
		if err := w.store.Insert(ctx, &snap); err != nil {
			failed = true
			w.log.Error("snapshot insert failed", map[string]interface{}{
				"entity": code,
				"error":  err.Error(),
			})
		}

		if w.indexer != nil && status.RecentActivity != "" && status.RecentActivity != models.DefaultActivityNote {
			event := models.ActivityEvent{
				EntityCode: code,
				Message:    status.RecentActivity,
				Status:     status.Status,
				ObservedAt: capturedAt,
			}
			if err := w.indexer.Index(ctx, event); err != nil {
				w.log.Warn("activity index failed", map[string]interface{}{
					"entity": code,
					"error":  err.Error(),
				})
			}
		}
	}

	if w.notifier != nil {
		w.notifier.NotifyAlerts(ctx, snapshot.Data.Alerts.Items)
	}

	if failed {
		metrics.SnapshotCycles.WithLabelValues("error").Inc()
		w.recordCycle(ctx, started, "error")
	} else {
		metrics.SnapshotCycles.WithLabelValues("ok").Inc()
		w.recordCycle(ctx, started, "ok")
	}
}

func (w *Worker) recordCycle(ctx context.Context, started time.Time, status string) {
	if w.recorder == nil {
		return
	}
	w.recorder.RecordRefresh(ctx, status)
	w.recorder.RecordRefreshDuration(ctx, w.now().Sub(started), status)
}
