package router

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mysmilelab/labsync/internal/config"
	"github.com/mysmilelab/labsync/internal/server/http/handlers"
	"github.com/mysmilelab/labsync/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.DashboardFacade, scheduler handlers.Scheduler, runCtx context.Context, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	engine.GET("/healthz", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	orderHandler := handlers.NewOrderHandler(facade)
	syncHandler := handlers.NewSyncHandler(facade)
	autoSyncHandler := handlers.NewAutoSyncHandler(scheduler, runCtx)
	platformHandler := handlers.NewPlatformHandler(facade)
	cabinetHandler := handlers.NewCabinetHandler(facade)
	certificateHandler := handlers.NewCertificateHandler(facade)

	api := engine.Group("/api")
	api.Use(middleware.APIKeyRequired(cfg.APIKey))

	commandes := api.Group("/commandes")
	commandes.GET("", orderHandler.List)
	commandes.PUT("/:id/vu", orderHandler.Seen)
	commandes.PUT("/:id/commentaire", orderHandler.Comment)
	commandes.PUT("/:id/statut", orderHandler.Status)
	commandes.POST("/:id/notifier", orderHandler.Notify)

	sync := api.Group("/sync")
	sync.POST("", syncHandler.SyncAll)
	sync.GET("/status", syncHandler.Statuses)
	sync.POST("/:platform", syncHandler.SyncOne)

	autosync := api.Group("/autosync")
	autosync.GET("", autoSyncHandler.State)
	autosync.POST("/start", autoSyncHandler.Start)
	autosync.POST("/stop", autoSyncHandler.Stop)
	autosync.PUT("/interval", autoSyncHandler.SetInterval)
	autosync.POST("/run", autoSyncHandler.RunNow)

	platforms := api.Group("/platforms")
	platforms.GET("", platformHandler.Connections)
	platforms.GET("/status", platformHandler.States)

	cabinets := api.Group("/cabinets")
	cabinets.GET("", cabinetHandler.List)
	cabinets.GET("/:id", cabinetHandler.Get)
	cabinets.POST("", cabinetHandler.Create)
	cabinets.PUT("/:id", cabinetHandler.Update)
	cabinets.DELETE("/:id", cabinetHandler.Delete)

	certificats := api.Group("/certificats")
	certificats.GET("", certificateHandler.List)
	certificats.GET("/commande/:id", certificateHandler.ForOrder)
	certificats.POST("", certificateHandler.Create)
	certificats.PUT("/:id", certificateHandler.Update)
	certificats.DELETE("/:id", certificateHandler.Delete)

	return engine
}
