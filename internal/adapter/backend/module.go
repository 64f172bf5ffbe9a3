package backend

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/mysmilelab/labsync/internal/config"
	"github.com/mysmilelab/labsync/internal/session"
)

// Module exposes the backend client implementation to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config   *config.Config
	Sessions *session.Source
	Logger   *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.BackendBaseURL, p.Sessions, p.Logger)
}
