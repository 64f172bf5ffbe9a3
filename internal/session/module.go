package session

import (
	"go.uber.org/fx"

	"github.com/mysmilelab/labsync/internal/config"
)

// Module provides the session source seeded from configuration.
var Module = fx.Provide(func(cfg *config.Config) *Source {
	return NewSource(New(cfg.BackendToken))
})
