package test

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/mysmilelab/labsync/internal/domain/model"
)

// SchedulerFacadeStub mimics the application facade the auto-sync worker
// drives. Snapshots returns one order list per RefreshOrders call, the last
// entry repeating once the sequence is exhausted.
type SchedulerFacadeStub struct {
	mu sync.Mutex

	Snapshots  [][]model.Order
	RefreshFn  func(context.Context) ([]model.Order, error)
	SyncFn     func(context.Context) []model.SyncStatus
	DispatchFn func(context.Context, model.Order) error

	Dispatched   []model.Order
	refreshCalls int32
	syncCalls    int32
}

// Lock exposes the internal mutex for external synchronization.
func (s *SchedulerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases a previously acquired lock.
func (s *SchedulerFacadeStub) Unlock() { s.mu.Unlock() }

// RefreshCalls reports how many snapshots were requested.
func (s *SchedulerFacadeStub) RefreshCalls() int {
	return int(atomic.LoadInt32(&s.refreshCalls))
}

// SyncCalls reports how many times the platform fan-out ran.
func (s *SchedulerFacadeStub) SyncCalls() int {
	return int(atomic.LoadInt32(&s.syncCalls))
}

func (s *SchedulerFacadeStub) RefreshOrders(ctx context.Context) ([]model.Order, error) {
	call := atomic.AddInt32(&s.refreshCalls, 1)
	if s.RefreshFn != nil {
		return s.RefreshFn(ctx)
	}
	if len(s.Snapshots) == 0 {
		return nil, nil
	}
	idx := int(call) - 1
	if idx >= len(s.Snapshots) {
		idx = len(s.Snapshots) - 1
	}
	return s.Snapshots[idx], nil
}

func (s *SchedulerFacadeStub) SyncConnectedPlatforms(ctx context.Context) []model.SyncStatus {
	atomic.AddInt32(&s.syncCalls, 1)
	if s.SyncFn != nil {
		return s.SyncFn(ctx)
	}
	return []model.SyncStatus{{Platform: model.PlatformMeditLink, State: model.SyncStateSuccess}}
}

func (s *SchedulerFacadeStub) DispatchNewOrderAlert(ctx context.Context, o model.Order) error {
	if s.DispatchFn != nil {
		if err := s.DispatchFn(ctx, o); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Dispatched = append(s.Dispatched, o)
	return nil
}

// SyncBackendStub implements the coordinator's backend with per-platform
// behaviour.
type SyncBackendStub struct {
	mu      sync.Mutex
	Results map[model.Platform]int
	Errors  map[model.Platform]error
	Calls   []model.Platform
}

// Lock exposes the internal mutex for external synchronization.
func (s *SyncBackendStub) Lock() { s.mu.Lock() }

// Unlock releases a previously acquired lock.
func (s *SyncBackendStub) Unlock() { s.mu.Unlock() }

func (s *SyncBackendStub) TriggerSync(ctx context.Context, p model.Platform) (int, error) {
	s.mu.Lock()
	s.Calls = append(s.Calls, p)
	s.mu.Unlock()
	if err, ok := s.Errors[p]; ok {
		return 0, err
	}
	return s.Results[p], nil
}
