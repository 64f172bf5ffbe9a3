package test

import (
	"context"
	"sync"

	"github.com/mysmilelab/labsync/internal/adapter/backend"
	"github.com/mysmilelab/labsync/internal/domain/model"
)

// BackendStub provides controllable behaviour for every backend operation.
// Zero-value methods succeed with empty data; set the Fn fields to override.
type BackendStub struct {
	mu sync.Mutex

	ListOrdersFn  func(context.Context) ([]model.Order, error)
	TriggerSyncFn func(context.Context, model.Platform) (int, error)
	AuthStatusFn  func(context.Context, model.Platform) (*backend.AuthInfo, error)
	RefreshAuthFn func(context.Context, model.Platform) error

	MarkNotifiedFn         func(context.Context, int64) error
	MarkNewOrderNotifiedFn func(context.Context, int64) error

	// Call records, guarded by the stub's lock.
	SyncCalls         []model.Platform
	MarkedNotified    []int64
	MarkedNewNotified []int64
	RefreshCalls      []model.Platform
}

// Lock exposes the internal mutex for external synchronization.
func (s *BackendStub) Lock() { s.mu.Lock() }

// Unlock releases a previously acquired lock.
func (s *BackendStub) Unlock() { s.mu.Unlock() }

func (s *BackendStub) ListOrders(ctx context.Context) ([]model.Order, error) {
	if s.ListOrdersFn != nil {
		return s.ListOrdersFn(ctx)
	}
	return nil, nil
}

func (s *BackendStub) TriggerSync(ctx context.Context, p model.Platform) (int, error) {
	s.mu.Lock()
	s.SyncCalls = append(s.SyncCalls, p)
	s.mu.Unlock()
	if s.TriggerSyncFn != nil {
		return s.TriggerSyncFn(ctx, p)
	}
	return 0, nil
}

func (s *BackendStub) AuthStatus(ctx context.Context, p model.Platform) (*backend.AuthInfo, error) {
	if s.AuthStatusFn != nil {
		return s.AuthStatusFn(ctx, p)
	}
	return &backend.AuthInfo{Authenticated: true}, nil
}

func (s *BackendStub) RefreshAuth(ctx context.Context, p model.Platform) error {
	s.mu.Lock()
	s.RefreshCalls = append(s.RefreshCalls, p)
	s.mu.Unlock()
	if s.RefreshAuthFn != nil {
		return s.RefreshAuthFn(ctx, p)
	}
	return nil
}

func (s *BackendStub) PlatformConnections(ctx context.Context) ([]model.PlatformConnection, error) {
	return nil, nil
}

func (s *BackendStub) MarkNotified(ctx context.Context, orderID int64) error {
	s.mu.Lock()
	s.MarkedNotified = append(s.MarkedNotified, orderID)
	s.mu.Unlock()
	if s.MarkNotifiedFn != nil {
		return s.MarkNotifiedFn(ctx, orderID)
	}
	return nil
}

func (s *BackendStub) MarkNewOrderNotified(ctx context.Context, orderID int64) error {
	s.mu.Lock()
	s.MarkedNewNotified = append(s.MarkedNewNotified, orderID)
	s.mu.Unlock()
	if s.MarkNewOrderNotifiedFn != nil {
		return s.MarkNewOrderNotifiedFn(ctx, orderID)
	}
	return nil
}

func (s *BackendStub) UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	return nil
}

func (s *BackendStub) SetOrderSeen(ctx context.Context, orderID int64, seen bool) error {
	return nil
}

func (s *BackendStub) UpdateOrderComment(ctx context.Context, orderID int64, comment string) error {
	return nil
}

func (s *BackendStub) ListCabinets(ctx context.Context) ([]model.Cabinet, error) {
	return nil, nil
}

func (s *BackendStub) GetCabinet(ctx context.Context, id int64) (*model.Cabinet, error) {
	return &model.Cabinet{ID: id}, nil
}

func (s *BackendStub) CreateCabinet(ctx context.Context, cab model.Cabinet) (*model.Cabinet, error) {
	return &cab, nil
}

func (s *BackendStub) UpdateCabinet(ctx context.Context, cab model.Cabinet) (*model.Cabinet, error) {
	return &cab, nil
}

func (s *BackendStub) DeleteCabinet(ctx context.Context, id int64) error {
	return nil
}

func (s *BackendStub) ListCertificates(ctx context.Context) ([]model.Certificate, error) {
	return nil, nil
}

func (s *BackendStub) CertificateForOrder(ctx context.Context, orderID int64) (*model.Certificate, error) {
	return &model.Certificate{OrderID: orderID}, nil
}

func (s *BackendStub) CreateCertificate(ctx context.Context, cert model.Certificate) (*model.Certificate, error) {
	return &cert, nil
}

func (s *BackendStub) UpdateCertificate(ctx context.Context, cert model.Certificate) (*model.Certificate, error) {
	return &cert, nil
}

func (s *BackendStub) DeleteCertificate(ctx context.Context, id int64) error {
	return nil
}
