package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mysmilelab/labsync/internal/domain/model"
	"github.com/mysmilelab/labsync/internal/server/http/dto"
)

// OrderHandler manages commande endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// List handles GET /api/commandes. The list is revalidated on every call.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// Seen handles PUT /api/commandes/:id/vu.
func (h *OrderHandler) Seen(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	var req dto.SeenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	if err := h.facade.SetOrderSeen(c.Request.Context(), id, req.Seen); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Comment handles PUT /api/commandes/:id/commentaire.
func (h *OrderHandler) Comment(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	if err := h.facade.UpdateOrderComment(c.Request.Context(), id, req.Comment); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Status handles PUT /api/commandes/:id/statut.
func (h *OrderHandler) Status(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	status := model.OrderStatus(req.Status)
	if !status.Valid() {
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Message: "unknown status"})
		return
	}
	if err := h.facade.UpdateOrderStatus(c.Request.Context(), id, status); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Notify handles POST /api/commandes/:id/notifier — the cabinet-facing email.
func (h *OrderHandler) Notify(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	if err := h.facade.NotifyCabinet(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}
