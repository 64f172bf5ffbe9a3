package di

import (
	"go.uber.org/fx"

	"github.com/mysmilelab/labsync/internal/adapter/backend"
	"github.com/mysmilelab/labsync/internal/adapter/mailer"
	"github.com/mysmilelab/labsync/internal/app"
	"github.com/mysmilelab/labsync/internal/authwatch"
	"github.com/mysmilelab/labsync/internal/config"
	"github.com/mysmilelab/labsync/internal/logger"
	"github.com/mysmilelab/labsync/internal/notify"
	"github.com/mysmilelab/labsync/internal/server/http/handlers"
	"github.com/mysmilelab/labsync/internal/server/http/router"
	"github.com/mysmilelab/labsync/internal/session"
	"github.com/mysmilelab/labsync/internal/storage/memory"
	"github.com/mysmilelab/labsync/internal/syncsvc"
	"github.com/mysmilelab/labsync/internal/worker"
)

// Module assembles the full application graph.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		session.Module,
		backend.Module,
		mailer.Module,
		memory.Module,
		syncsvc.Module,
		notify.Module,
		authwatch.Module,
		fx.Provide(func(f *app.DashboardFacade) handlers.DashboardFacade { return f }),
		fx.Provide(func(s *worker.AutoSync) handlers.Scheduler { return s }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
