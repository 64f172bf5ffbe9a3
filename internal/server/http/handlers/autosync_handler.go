package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mysmilelab/labsync/internal/server/http/dto"
)

// AutoSyncHandler controls the background scheduler.
type AutoSyncHandler struct {
	scheduler Scheduler
	// runCtx outlives individual requests so a started timer is not tied
	// to the request that started it.
	runCtx context.Context
}

// NewAutoSyncHandler constructs AutoSyncHandler.
func NewAutoSyncHandler(scheduler Scheduler, runCtx context.Context) *AutoSyncHandler {
	if runCtx == nil {
		runCtx = context.Background()
	}
	return &AutoSyncHandler{scheduler: scheduler, runCtx: runCtx}
}

// State handles GET /api/autosync.
func (h *AutoSyncHandler) State(c *gin.Context) {
	c.JSON(http.StatusOK, dto.AutoSyncStateResponse{
		Running:         h.scheduler.Running(),
		IntervalMinutes: h.scheduler.IntervalMinutes(),
		LastReport:      h.scheduler.LastReport(),
	})
}

// Start handles POST /api/autosync/start.
func (h *AutoSyncHandler) Start(c *gin.Context) {
	h.scheduler.Start(h.runCtx)
	h.State(c)
}

// Stop handles POST /api/autosync/stop.
func (h *AutoSyncHandler) Stop(c *gin.Context) {
	h.scheduler.Stop()
	h.State(c)
}

// SetInterval handles PUT /api/autosync/interval.
func (h *AutoSyncHandler) SetInterval(c *gin.Context) {
	var req dto.IntervalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	if err := h.scheduler.SetInterval(req.Minutes); err != nil {
		writeError(c, err)
		return
	}
	h.State(c)
}

// RunNow handles POST /api/autosync/run — the manual "sync now" that shares
// the in-flight guard with the timer.
func (h *AutoSyncHandler) RunNow(c *gin.Context) {
	report := h.scheduler.RunNow(c.Request.Context())
	if report.Skipped {
		c.JSON(http.StatusConflict, report)
		return
	}
	c.JSON(http.StatusOK, report)
}
