package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mysmilelab/labsync/internal/domain/model"
	"github.com/mysmilelab/labsync/internal/server/http/dto"
)

// CertificateHandler manages conformity certificate endpoints.
type CertificateHandler struct {
	facade CertificateFacade
}

// NewCertificateHandler constructs CertificateHandler.
func NewCertificateHandler(facade CertificateFacade) *CertificateHandler {
	return &CertificateHandler{facade: facade}
}

// List handles GET /api/certificats.
func (h *CertificateHandler) List(c *gin.Context) {
	certs, err := h.facade.Certificates(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, certs)
}

// ForOrder handles GET /api/certificats/commande/:id.
func (h *CertificateHandler) ForOrder(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	cert, err := h.facade.CertificateForOrder(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cert)
}

// Create handles POST /api/certificats.
func (h *CertificateHandler) Create(c *gin.Context) {
	var cert model.Certificate
	if err := c.ShouldBindJSON(&cert); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	created, err := h.facade.CreateCertificate(c.Request.Context(), cert)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update handles PUT /api/certificats/:id.
func (h *CertificateHandler) Update(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	var cert model.Certificate
	if err := c.ShouldBindJSON(&cert); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	cert.ID = id
	updated, err := h.facade.UpdateCertificate(c.Request.Context(), cert)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/certificats/:id.
func (h *CertificateHandler) Delete(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	if err := h.facade.DeleteCertificate(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
