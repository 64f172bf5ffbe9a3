// Package authwatch polls each platform's connection status independently
// and triggers proactive token refresh where supported.
package authwatch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mysmilelab/labsync/internal/adapter/backend"
	"github.com/mysmilelab/labsync/internal/domain/model"
)

// Backend is the subset of the backend client the watcher needs.
type Backend interface {
	AuthStatus(ctx context.Context, p model.Platform) (*backend.AuthInfo, error)
	RefreshAuth(ctx context.Context, p model.Platform) error
}

// Watcher keeps a live auth state per platform. States start in loading and
// are refreshed on every poll; one platform erroring never hides the others.
type Watcher struct {
	backend          Backend
	platforms        []model.Platform
	interval         time.Duration
	refreshThreshold time.Duration
	logger           *slog.Logger

	mu     sync.RWMutex
	states map[model.Platform]model.AuthState

	runMu  sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewWatcher builds a watcher over every externally routed platform.
func NewWatcher(b Backend, interval, refreshThreshold time.Duration, logger *slog.Logger) *Watcher {
	platforms := model.ExternalPlatforms()
	states := make(map[model.Platform]model.AuthState, len(platforms))
	for _, p := range platforms {
		states[p] = model.AuthState{Platform: p, Loading: true}
	}
	return &Watcher{
		backend:          b,
		platforms:        platforms,
		interval:         interval,
		refreshThreshold: refreshThreshold,
		logger:           logger,
		states:           states,
	}
}

// Start begins polling. It performs one immediate poll so consumers have
// fresh states before the first interval elapses.
func (w *Watcher) Start(ctx context.Context) {
	w.runMu.Lock()
	defer w.runMu.Unlock()
	if w.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})

	go func() {
		defer close(w.done)
		w.poll(runCtx)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
				w.poll(runCtx)
			}
		}
	}()
}

// Stop halts polling and waits for the loop to exit.
func (w *Watcher) Stop() {
	w.runMu.Lock()
	defer w.runMu.Unlock()
	if w.cancel == nil {
		return
	}
	w.cancel()
	<-w.done
	w.cancel = nil
	w.done = nil
}

// poll fans one status request out per platform.
func (w *Watcher) poll(ctx context.Context) {
	var wg sync.WaitGroup
	for _, p := range w.platforms {
		wg.Add(1)
		go func(p model.Platform) {
			defer wg.Done()
			w.check(ctx, p)
		}(p)
	}
	wg.Wait()
}

func (w *Watcher) check(ctx context.Context, p model.Platform) {
	w.setLoading(p)

	info, err := w.backend.AuthStatus(ctx, p)
	now := time.Now()
	if err != nil {
		w.set(model.AuthState{
			Platform:  p,
			Error:     err.Error(),
			CheckedAt: now,
		})
		return
	}

	state := model.AuthState{
		Platform:      p,
		Authenticated: info.Authenticated,
		CheckedAt:     now,
	}
	if info.Name != "" || info.Email != "" {
		state.UserInfo = &model.UserInfo{Name: info.Name, Email: info.Email}
	}
	if info.ExpiresInSeconds != nil {
		remaining := time.Duration(*info.ExpiresInSeconds) * time.Second
		state.ExpiresIn = &remaining
		w.maybeRefresh(ctx, p, remaining)
	}
	w.set(state)
}

// maybeRefresh renews the platform token before it lapses, for platforms
// that support refresh.
func (w *Watcher) maybeRefresh(ctx context.Context, p model.Platform, remaining time.Duration) {
	route, ok := model.RouteFor(p)
	if !ok || !route.Refreshable || remaining >= w.refreshThreshold {
		return
	}
	if err := w.backend.RefreshAuth(ctx, p); err != nil {
		w.logger.Warn("token refresh failed",
			slog.String("platform", string(p)),
			slog.String("error", err.Error()),
		)
		return
	}
	w.logger.Info("token refreshed", slog.String("platform", string(p)))
}

func (w *Watcher) setLoading(p model.Platform) {
	w.mu.Lock()
	defer w.mu.Unlock()
	st := w.states[p]
	st.Platform = p
	st.Loading = true
	w.states[p] = st
}

func (w *Watcher) set(st model.AuthState) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.states[st.Platform] = st
}

// States returns every platform state in stable order.
func (w *Watcher) States() []model.AuthState {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]model.AuthState, 0, len(w.platforms))
	for _, p := range w.platforms {
		out = append(out, w.states[p])
	}
	return out
}

// State returns one platform's current state.
func (w *Watcher) State(p model.Platform) (model.AuthState, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	st, ok := w.states[p]
	return st, ok
}

// Connected reports whether a platform is currently authenticated. It is
// the connection-status lookup handed to the sync coordinator.
func (w *Watcher) Connected(p model.Platform) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.states[p].Authenticated
}
