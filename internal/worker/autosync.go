// Package worker runs the recurring sync-and-notify cycle.
package worker

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mysmilelab/labsync/internal/config"
	domainErrors "github.com/mysmilelab/labsync/internal/domain/errors"
	"github.com/mysmilelab/labsync/internal/domain/model"
	"github.com/mysmilelab/labsync/internal/metrics"
	"github.com/mysmilelab/labsync/internal/notify"
)

// Facade exposes the subset of application functionality the scheduler needs.
type Facade interface {
	RefreshOrders(ctx context.Context) ([]model.Order, error)
	SyncConnectedPlatforms(ctx context.Context) []model.SyncStatus
	DispatchNewOrderAlert(ctx context.Context, o model.Order) error
}

// AutoSync drives the unattended sync cycle: snapshot the order list, fan
// the platform syncs out, re-fetch after a settle delay, diff, and send one
// alert per new order, strictly in sequence.
//
// A single in-flight guard serializes scheduled ticks and manual "sync now"
// requests; a cycle that finds another one running is skipped, which keeps
// overlapping cycles from emailing the same order twice off stale snapshots.
type AutoSync struct {
	facade      Facade
	logger      *slog.Logger
	settleDelay time.Duration
	notifyDelay time.Duration

	inFlight atomic.Bool

	mu              sync.Mutex
	intervalMinutes int
	running         bool
	baseCtx         context.Context
	cancelLoop      context.CancelFunc
	loopDone        chan struct{}
	// minuteScale exists so tests can shrink the timer period.
	minuteScale time.Duration

	reportMu   sync.RWMutex
	lastReport *model.TickReport
}

// NewAutoSync constructs a stopped scheduler.
func NewAutoSync(facade Facade, intervalMinutes int, settleDelay, notifyDelay time.Duration, logger *slog.Logger) *AutoSync {
	if !config.ValidIntervalMinutes(intervalMinutes) {
		intervalMinutes = config.MinIntervalMinutes
	}
	return &AutoSync{
		facade:          facade,
		logger:          logger,
		settleDelay:     settleDelay,
		notifyDelay:     notifyDelay,
		intervalMinutes: intervalMinutes,
		minuteScale:     time.Minute,
	}
}

// Start launches the recurring timer. Starting while already running first
// clears the existing timer, so there is never more than one.
func (a *AutoSync) Start(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.baseCtx = ctx
	a.stopLocked()
	a.startLocked()
	a.logger.Info("auto-sync started", slog.Int("intervalMinutes", a.intervalMinutes))
}

// Stop clears the timer. An in-flight cycle is allowed to finish; Stop
// returns once the loop has exited.
func (a *AutoSync) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.running {
		a.logger.Info("auto-sync stopped")
	}
	a.stopLocked()
}

// Running reports whether the timer is active.
func (a *AutoSync) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running
}

// IntervalMinutes returns the configured cadence.
func (a *AutoSync) IntervalMinutes() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.intervalMinutes
}

// SetInterval changes the cadence. Values outside [1,60] minutes are
// rejected without touching a running timer. While running the timer is
// restarted with the new period and waits a full period before the next
// tick; while stopped only the stored preference changes.
func (a *AutoSync) SetInterval(minutes int) error {
	if !config.ValidIntervalMinutes(minutes) {
		return domainErrors.ErrInvalidInterval
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.intervalMinutes = minutes
	if a.running {
		a.stopLocked()
		a.startLocked()
	}
	a.logger.Info("auto-sync interval updated", slog.Int("intervalMinutes", minutes))
	return nil
}

// RunNow executes one cycle immediately, sharing the in-flight guard with
// the scheduled timer.
func (a *AutoSync) RunNow(ctx context.Context) model.TickReport {
	return a.runCycle(ctx)
}

// LastReport returns the most recent completed cycle report.
func (a *AutoSync) LastReport() *model.TickReport {
	a.reportMu.RLock()
	defer a.reportMu.RUnlock()
	if a.lastReport == nil {
		return nil
	}
	report := *a.lastReport
	return &report
}

func (a *AutoSync) startLocked() {
	loopCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	tickCtx := a.baseCtx
	if tickCtx == nil {
		tickCtx = context.Background()
	}

	period := time.Duration(a.intervalMinutes) * a.minuteScale
	go a.loop(loopCtx, tickCtx, period, done)

	a.cancelLoop = cancel
	a.loopDone = done
	a.running = true
}

func (a *AutoSync) stopLocked() {
	if !a.running {
		return
	}
	a.cancelLoop()
	<-a.loopDone
	a.cancelLoop = nil
	a.loopDone = nil
	a.running = false
}

func (a *AutoSync) loop(loopCtx, tickCtx context.Context, period time.Duration, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-loopCtx.Done():
			return
		case <-tickCtx.Done():
			return
		case <-ticker.C:
			a.runCycle(tickCtx)
		}
	}
}

func (a *AutoSync) runCycle(ctx context.Context) model.TickReport {
	if !a.inFlight.CompareAndSwap(false, true) {
		a.logger.Warn("sync cycle already in flight, skipping")
		metrics.AutoSyncTicksTotal.WithLabelValues("skipped").Inc()
		now := time.Now()
		return model.TickReport{Skipped: true, StartedAt: now, FinishedAt: now}
	}
	defer a.inFlight.Store(false)

	report := a.tick(ctx)
	metrics.AutoSyncTicksTotal.WithLabelValues("completed").Inc()

	a.reportMu.Lock()
	a.lastReport = &report
	a.reportMu.Unlock()
	return report
}

// tick runs one cycle. Steps are strictly ordered: before snapshot, platform
// fan-out, settle delay, after snapshot, diff, sequential notifications.
func (a *AutoSync) tick(ctx context.Context) model.TickReport {
	report := model.TickReport{StartedAt: time.Now()}

	before, err := a.facade.RefreshOrders(ctx)
	if err != nil {
		// Without a before snapshot the diff would flag every order.
		a.logger.Error("before snapshot failed", slog.String("error", err.Error()))
		report.FinishedAt = time.Now()
		return report
	}

	for _, st := range a.facade.SyncConnectedPlatforms(ctx) {
		switch st.State {
		case model.SyncStateSuccess:
			report.PlatformsSynced++
		case model.SyncStateError:
			report.PlatformsFailed++
		default:
			report.PlatformsSkipped++
		}
	}

	// Give backend-side writes time to land before re-fetching.
	if !sleepCtx(ctx, a.settleDelay) {
		report.FinishedAt = time.Now()
		return report
	}

	after, err := a.facade.RefreshOrders(ctx)
	if err != nil {
		a.logger.Error("after snapshot failed", slog.String("error", err.Error()))
		report.FinishedAt = time.Now()
		return report
	}

	fresh := notify.NewOrders(before, after)
	report.NewOrders = len(fresh)

	for i, o := range fresh {
		// Sequential sends with a pause so the mail relay is never flooded.
		if i > 0 && !sleepCtx(ctx, a.notifyDelay) {
			break
		}
		if err := a.facade.DispatchNewOrderAlert(ctx, o); err != nil {
			a.logger.Error("notification failed",
				slog.String("externalId", o.ExternalID),
				slog.String("error", err.Error()),
			)
			report.NotificationsFailed++
			continue
		}
		report.NotificationsSent++
	}

	report.FinishedAt = time.Now()
	a.logger.Info("sync cycle finished",
		slog.Int("platformsSynced", report.PlatformsSynced),
		slog.Int("platformsFailed", report.PlatformsFailed),
		slog.Int("newOrders", report.NewOrders),
		slog.Int("notificationsSent", report.NotificationsSent),
	)
	return report
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
