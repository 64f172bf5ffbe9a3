package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PlatformHandler exposes connection and auth state endpoints.
type PlatformHandler struct {
	facade PlatformFacade
}

// NewPlatformHandler constructs PlatformHandler.
func NewPlatformHandler(facade PlatformFacade) *PlatformHandler {
	return &PlatformHandler{facade: facade}
}

// Connections handles GET /api/platforms.
func (h *PlatformHandler) Connections(c *gin.Context) {
	conns, err := h.facade.Connections(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, conns)
}

// States handles GET /api/platforms/status — the independently polled
// per-platform auth states.
func (h *PlatformHandler) States(c *gin.Context) {
	c.JSON(http.StatusOK, h.facade.PlatformStates())
}
