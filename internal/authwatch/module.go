package authwatch

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/mysmilelab/labsync/internal/adapter/backend"
	"github.com/mysmilelab/labsync/internal/config"
)

// Module provides the auth status watcher.
var Module = fx.Provide(newWatcher)

type watcherParams struct {
	fx.In

	Backend backend.Client
	Config  *config.Config
	Logger  *slog.Logger
}

func newWatcher(p watcherParams) *Watcher {
	return NewWatcher(p.Backend, p.Config.AuthPollInterval, p.Config.TokenRefreshThreshold, p.Logger)
}
