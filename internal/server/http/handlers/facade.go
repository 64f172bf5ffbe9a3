package handlers

import (
	"context"

	"github.com/mysmilelab/labsync/internal/domain/model"
)

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	Orders(ctx context.Context) ([]model.Order, error)
	SetOrderSeen(ctx context.Context, orderID int64, seen bool) error
	UpdateOrderComment(ctx context.Context, orderID int64, comment string) error
	UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	NotifyCabinet(ctx context.Context, orderID int64) error
}

// SyncFacade triggers platform syncs and exposes their ephemeral statuses.
type SyncFacade interface {
	SyncPlatform(ctx context.Context, p model.Platform) model.SyncStatus
	SyncConnectedPlatforms(ctx context.Context) []model.SyncStatus
	SyncStatuses() []model.SyncStatus
}

// PlatformFacade exposes connection and auth state information.
type PlatformFacade interface {
	PlatformStates() []model.AuthState
	Connections(ctx context.Context) ([]model.PlatformConnection, error)
}

// CabinetFacade provides cabinet CRUD.
type CabinetFacade interface {
	Cabinets(ctx context.Context) ([]model.Cabinet, error)
	Cabinet(ctx context.Context, id int64) (*model.Cabinet, error)
	CreateCabinet(ctx context.Context, cab model.Cabinet) (*model.Cabinet, error)
	UpdateCabinet(ctx context.Context, cab model.Cabinet) (*model.Cabinet, error)
	DeleteCabinet(ctx context.Context, id int64) error
}

// CertificateFacade provides conformity certificate CRUD.
type CertificateFacade interface {
	Certificates(ctx context.Context) ([]model.Certificate, error)
	CertificateForOrder(ctx context.Context, orderID int64) (*model.Certificate, error)
	CreateCertificate(ctx context.Context, cert model.Certificate) (*model.Certificate, error)
	UpdateCertificate(ctx context.Context, cert model.Certificate) (*model.Certificate, error)
	DeleteCertificate(ctx context.Context, id int64) error
}

// Scheduler controls the auto-sync timer.
type Scheduler interface {
	Start(ctx context.Context)
	Stop()
	Running() bool
	IntervalMinutes() int
	SetInterval(minutes int) error
	RunNow(ctx context.Context) model.TickReport
	LastReport() *model.TickReport
}

// DashboardFacade aggregates the full set of operations used across handlers.
type DashboardFacade interface {
	OrderFacade
	SyncFacade
	PlatformFacade
	CabinetFacade
	CertificateFacade
}
