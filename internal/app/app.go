package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/mysmilelab/labsync/internal/config"
	"github.com/mysmilelab/labsync/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewDashboardFacade,
		newHTTPServer,
		newAutoSync,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type workerParams struct {
	fx.In

	Facade *DashboardFacade
	Config *config.Config
	Logger *slog.Logger
}

func newAutoSync(p workerParams) *worker.AutoSync {
	return worker.NewAutoSync(
		p.Facade,
		p.Config.AutoSyncIntervalMinutes,
		p.Config.SettleDelay,
		p.Config.NotifyDelay,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Scheduler  *worker.AutoSync
	Facade     *DashboardFacade
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting labsync", slog.String("addr", p.Server.Addr))
			p.Facade.watcher.Start(context.Background())
			if p.Config.AutoSyncEnabled {
				p.Scheduler.Start(context.Background())
			}
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Scheduler.Stop()
			p.Facade.watcher.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("labsync stopped")
			return nil
		},
	})
}
