package syncsvc

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/mysmilelab/labsync/internal/adapter/backend"
	"github.com/mysmilelab/labsync/internal/config"
)

// Module provides the sync coordinator.
var Module = fx.Provide(newCoordinator)

type coordinatorParams struct {
	fx.In

	Backend backend.Client
	Config  *config.Config
	Logger  *slog.Logger
}

func newCoordinator(p coordinatorParams) *Coordinator {
	return NewCoordinator(p.Backend, p.Config.SyncStatusTTL, p.Logger)
}
