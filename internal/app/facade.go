package app

import (
	"context"
	"fmt"

	"github.com/mysmilelab/labsync/internal/adapter/backend"
	"github.com/mysmilelab/labsync/internal/authwatch"
	"github.com/mysmilelab/labsync/internal/domain/model"
	"github.com/mysmilelab/labsync/internal/notify"
	"github.com/mysmilelab/labsync/internal/storage/memory"
	"github.com/mysmilelab/labsync/internal/syncsvc"
)

// DashboardFacade aggregates the operations the HTTP surface and the
// scheduler consume.
type DashboardFacade struct {
	backend     backend.Client
	store       *memory.OrderStore
	coordinator *syncsvc.Coordinator
	notifier    *notify.Dispatcher
	watcher     *authwatch.Watcher
}

// NewDashboardFacade wires the facade.
func NewDashboardFacade(
	b backend.Client,
	store *memory.OrderStore,
	coordinator *syncsvc.Coordinator,
	notifier *notify.Dispatcher,
	watcher *authwatch.Watcher,
) *DashboardFacade {
	return &DashboardFacade{
		backend:     b,
		store:       store,
		coordinator: coordinator,
		notifier:    notifier,
		watcher:     watcher,
	}
}

// RefreshOrders re-fetches the order list from the backend and replaces the
// in-memory snapshot.
func (f *DashboardFacade) RefreshOrders(ctx context.Context) ([]model.Order, error) {
	orders, err := f.backend.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	f.store.Replace(orders)
	return orders, nil
}

// Orders revalidates and returns the order list.
func (f *DashboardFacade) Orders(ctx context.Context) ([]model.Order, error) {
	return f.RefreshOrders(ctx)
}

// SyncPlatform triggers one platform sync, gated on its live auth state.
func (f *DashboardFacade) SyncPlatform(ctx context.Context, p model.Platform) model.SyncStatus {
	return f.coordinator.SyncPlatform(ctx, p, f.watcher.Connected)
}

// SyncConnectedPlatforms triggers every bulk-eligible, authenticated platform.
func (f *DashboardFacade) SyncConnectedPlatforms(ctx context.Context) []model.SyncStatus {
	return f.coordinator.SyncAll(ctx, f.watcher.Connected)
}

// SyncStatuses returns the live per-platform badges.
func (f *DashboardFacade) SyncStatuses() []model.SyncStatus {
	return f.coordinator.Statuses()
}

// DispatchNewOrderAlert sends the internal alert for one new order.
func (f *DashboardFacade) DispatchNewOrderAlert(ctx context.Context, o model.Order) error {
	return f.notifier.DispatchNewOrderAlert(ctx, o)
}

// NotifyCabinet sends the cabinet-facing notification for an order.
func (f *DashboardFacade) NotifyCabinet(ctx context.Context, orderID int64) error {
	order, ok := f.store.Find(orderID)
	if !ok {
		orders, err := f.RefreshOrders(ctx)
		if err != nil {
			return err
		}
		for _, o := range orders {
			if o.ID == orderID {
				order, ok = o, true
				break
			}
		}
		if !ok {
			return fmt.Errorf("order %d: not found", orderID)
		}
	}
	return f.notifier.NotifyCabinet(ctx, order)
}

// SetOrderSeen toggles the read flag on the backend.
func (f *DashboardFacade) SetOrderSeen(ctx context.Context, orderID int64, seen bool) error {
	return f.backend.SetOrderSeen(ctx, orderID, seen)
}

// UpdateOrderComment replaces the order comment on the backend.
func (f *DashboardFacade) UpdateOrderComment(ctx context.Context, orderID int64, comment string) error {
	return f.backend.UpdateOrderComment(ctx, orderID, comment)
}

// UpdateOrderStatus moves the order through its lifecycle on the backend.
func (f *DashboardFacade) UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	return f.backend.UpdateOrderStatus(ctx, orderID, status)
}

// PlatformStates returns the independently polled auth states.
func (f *DashboardFacade) PlatformStates() []model.AuthState {
	return f.watcher.States()
}

// Connections lists the configured platform connections.
func (f *DashboardFacade) Connections(ctx context.Context) ([]model.PlatformConnection, error) {
	return f.backend.PlatformConnections(ctx)
}

// Cabinets lists every cabinet.
func (f *DashboardFacade) Cabinets(ctx context.Context) ([]model.Cabinet, error) {
	return f.backend.ListCabinets(ctx)
}

// Cabinet fetches one cabinet.
func (f *DashboardFacade) Cabinet(ctx context.Context, id int64) (*model.Cabinet, error) {
	return f.backend.GetCabinet(ctx, id)
}

// CreateCabinet registers a cabinet.
func (f *DashboardFacade) CreateCabinet(ctx context.Context, cab model.Cabinet) (*model.Cabinet, error) {
	return f.backend.CreateCabinet(ctx, cab)
}

// UpdateCabinet replaces a cabinet.
func (f *DashboardFacade) UpdateCabinet(ctx context.Context, cab model.Cabinet) (*model.Cabinet, error) {
	return f.backend.UpdateCabinet(ctx, cab)
}

// DeleteCabinet removes a cabinet.
func (f *DashboardFacade) DeleteCabinet(ctx context.Context, id int64) error {
	return f.backend.DeleteCabinet(ctx, id)
}

// Certificates lists every conformity certificate.
func (f *DashboardFacade) Certificates(ctx context.Context) ([]model.Certificate, error) {
	return f.backend.ListCertificates(ctx)
}

// CertificateForOrder fetches the certificate attached to an order.
func (f *DashboardFacade) CertificateForOrder(ctx context.Context, orderID int64) (*model.Certificate, error) {
	return f.backend.CertificateForOrder(ctx, orderID)
}

// CreateCertificate stores a certificate.
func (f *DashboardFacade) CreateCertificate(ctx context.Context, cert model.Certificate) (*model.Certificate, error) {
	return f.backend.CreateCertificate(ctx, cert)
}

// UpdateCertificate replaces a certificate.
func (f *DashboardFacade) UpdateCertificate(ctx context.Context, cert model.Certificate) (*model.Certificate, error) {
	return f.backend.UpdateCertificate(ctx, cert)
}

// DeleteCertificate removes a certificate.
func (f *DashboardFacade) DeleteCertificate(ctx context.Context, id int64) error {
	return f.backend.DeleteCertificate(ctx, id)
}
