package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mysmilelab/labsync/internal/domain/model"
	"github.com/mysmilelab/labsync/internal/server/http/dto"
)

// CabinetHandler manages cabinet endpoints.
type CabinetHandler struct {
	facade CabinetFacade
}

// NewCabinetHandler constructs CabinetHandler.
func NewCabinetHandler(facade CabinetFacade) *CabinetHandler {
	return &CabinetHandler{facade: facade}
}

// List handles GET /api/cabinets.
func (h *CabinetHandler) List(c *gin.Context) {
	cabinets, err := h.facade.Cabinets(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cabinets)
}

// Get handles GET /api/cabinets/:id.
func (h *CabinetHandler) Get(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	cab, err := h.facade.Cabinet(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cab)
}

// Create handles POST /api/cabinets.
func (h *CabinetHandler) Create(c *gin.Context) {
	var cab model.Cabinet
	if err := c.ShouldBindJSON(&cab); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	created, err := h.facade.CreateCabinet(c.Request.Context(), cab)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update handles PUT /api/cabinets/:id.
func (h *CabinetHandler) Update(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	var cab model.Cabinet
	if err := c.ShouldBindJSON(&cab); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	cab.ID = id
	updated, err := h.facade.UpdateCabinet(c.Request.Context(), cab)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/cabinets/:id.
func (h *CabinetHandler) Delete(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	if err := h.facade.DeleteCabinet(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
