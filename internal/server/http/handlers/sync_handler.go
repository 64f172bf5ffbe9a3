package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mysmilelab/labsync/internal/domain/model"
	"github.com/mysmilelab/labsync/internal/server/http/dto"
)

// SyncHandler exposes manual sync triggers and their statuses.
type SyncHandler struct {
	facade SyncFacade
}

// NewSyncHandler constructs SyncHandler.
func NewSyncHandler(facade SyncFacade) *SyncHandler {
	return &SyncHandler{facade: facade}
}

// SyncOne handles POST /api/sync/:platform.
func (h *SyncHandler) SyncOne(c *gin.Context) {
	platform, err := model.ParsePlatform(c.Param("platform"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	status := h.facade.SyncPlatform(c.Request.Context(), platform)
	c.JSON(http.StatusOK, status)
}

// SyncAll handles POST /api/sync. With no connected platform it reports a
// no-op without any backend call.
func (h *SyncHandler) SyncAll(c *gin.Context) {
	statuses := h.facade.SyncConnectedPlatforms(c.Request.Context())
	if len(statuses) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"statuses": []model.SyncStatus{},
			"message":  "aucune plateforme connectée",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"statuses": statuses})
}

// Statuses handles GET /api/sync/status — the live badges.
func (h *SyncHandler) Statuses(c *gin.Context) {
	c.JSON(http.StatusOK, h.facade.SyncStatuses())
}
