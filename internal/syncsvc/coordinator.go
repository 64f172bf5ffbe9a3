// Package syncsvc triggers backend synchronization per platform and keeps
// the short-lived per-platform status badges.
package syncsvc

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mysmilelab/labsync/internal/domain/model"
	"github.com/mysmilelab/labsync/internal/metrics"
)

// Backend is the subset of the backend client the coordinator needs.
type Backend interface {
	TriggerSync(ctx context.Context, p model.Platform) (int, error)
}

// ConnectionChecker reports whether a platform is currently authenticated.
// It is supplied by the caller so the coordinator stays decoupled from the
// auth pollers.
type ConnectionChecker func(model.Platform) bool

// Coordinator fans sync requests out to the backend, one HTTP call per
// platform, with isolated failures. Outcome statuses are ephemeral and
// cleared automatically after the configured TTL.
type Coordinator struct {
	backend   Backend
	statusTTL time.Duration
	logger    *slog.Logger

	mu       sync.Mutex
	statuses map[model.Platform]model.SyncStatus
	timers   map[model.Platform]*time.Timer
}

// NewCoordinator builds a coordinator with the given status lifetime.
func NewCoordinator(backend Backend, statusTTL time.Duration, logger *slog.Logger) *Coordinator {
	if statusTTL <= 0 {
		statusTTL = 5 * time.Second
	}
	return &Coordinator{
		backend:   backend,
		statusTTL: statusTTL,
		logger:    logger,
		statuses:  make(map[model.Platform]model.SyncStatus),
		timers:    make(map[model.Platform]*time.Timer),
	}
}

// SyncPlatform triggers one platform's sync. Platforms without a sync
// endpoint or without an authenticated connection are skipped without any
// network call.
func (c *Coordinator) SyncPlatform(ctx context.Context, p model.Platform, connected ConnectionChecker) model.SyncStatus {
	route, ok := model.RouteFor(p)
	if !ok || !route.Syncable {
		return c.finish(model.SyncStatus{
			Platform: p,
			State:    model.SyncStateSkipped,
			Message:  "aucune synchronisation disponible pour cette plateforme",
		})
	}

	if connected != nil && !connected(p) {
		c.logger.Warn("sync skipped, platform not connected", slog.String("platform", string(p)))
		return c.finish(model.SyncStatus{
			Platform: p,
			State:    model.SyncStateSkipped,
			Message:  "plateforme non connectée",
		})
	}

	c.set(model.SyncStatus{Platform: p, State: model.SyncStateLoading, At: time.Now()})

	count, err := c.backend.TriggerSync(ctx, p)
	if err != nil {
		c.logger.Error("platform sync failed",
			slog.String("platform", string(p)),
			slog.String("error", err.Error()),
		)
		return c.finish(model.SyncStatus{
			Platform: p,
			State:    model.SyncStateError,
			Message:  fmt.Sprintf("échec de la synchronisation: %v", err),
		})
	}

	metrics.OrdersSavedTotal.WithLabelValues(string(p)).Add(float64(count))
	return c.finish(model.SyncStatus{
		Platform:   p,
		State:      model.SyncStateSuccess,
		Message:    fmt.Sprintf("%d nouvelle(s) commande(s)", count),
		SavedCount: count,
	})
}

// SyncAll triggers every platform that is bulk-eligible and authenticated,
// in parallel. One platform failing never aborts the others. With zero
// eligible platforms it returns nil without making any request.
func (c *Coordinator) SyncAll(ctx context.Context, connected ConnectionChecker) []model.SyncStatus {
	var eligible []model.Platform
	for _, p := range model.BulkSyncPlatforms() {
		if connected == nil || connected(p) {
			eligible = append(eligible, p)
		}
	}
	if len(eligible) == 0 {
		c.logger.Info("sync all: no connected platform")
		return nil
	}

	results := make([]model.SyncStatus, len(eligible))
	var wg sync.WaitGroup
	for i, p := range eligible {
		wg.Add(1)
		go func(i int, p model.Platform) {
			defer wg.Done()
			results[i] = c.SyncPlatform(ctx, p, nil)
		}(i, p)
	}
	wg.Wait()
	return results
}

// Statuses returns the badges currently alive, in stable platform order.
func (c *Coordinator) Statuses() []model.SyncStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.SyncStatus, 0, len(c.statuses))
	for _, p := range model.ExternalPlatforms() {
		if st, ok := c.statuses[p]; ok {
			out = append(out, st)
		}
	}
	return out
}

// finish stamps and records a terminal status, arming its expiry timer.
func (c *Coordinator) finish(st model.SyncStatus) model.SyncStatus {
	st.At = time.Now()
	metrics.PlatformSyncsTotal.WithLabelValues(string(st.Platform), string(st.State)).Inc()
	c.set(st)
	return st
}

// set stores a status. Terminal states are cleared after the TTL so stale
// badges never linger; a newer status cancels the previous timer.
func (c *Coordinator) set(st model.SyncStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.timers[st.Platform]; ok {
		t.Stop()
		delete(c.timers, st.Platform)
	}
	c.statuses[st.Platform] = st

	if st.State == model.SyncStateLoading {
		return
	}

	stamped := st.At
	c.timers[st.Platform] = time.AfterFunc(c.statusTTL, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if current, ok := c.statuses[st.Platform]; ok && current.At.Equal(stamped) {
			delete(c.statuses, st.Platform)
			delete(c.timers, st.Platform)
		}
	})
}
