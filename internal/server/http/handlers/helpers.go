package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mysmilelab/labsync/internal/adapter/backend"
	"github.com/mysmilelab/labsync/internal/adapter/mailer"
	domainErrors "github.com/mysmilelab/labsync/internal/domain/errors"
	"github.com/mysmilelab/labsync/internal/server/http/dto"
)

// pathID parses the :id path parameter. A zero return means the response
// has already been written.
func pathID(c *gin.Context) int64 {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid id"})
		return 0
	}
	return id
}

// writeError maps domain and adapter errors to HTTP statuses. Backend and
// mail-relay failures surface as 502 so the dashboard can tell its own
// errors from upstream ones.
func writeError(c *gin.Context, err error) {
	var apiErr *backend.APIError
	var mailErr *mailer.ProviderError

	switch {
	case errors.Is(err, domainErrors.ErrMissingToken):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, domainErrors.ErrInvalidInterval),
		errors.Is(err, domainErrors.ErrInvalidStatus),
		errors.Is(err, domainErrors.ErrPlatformNotSyncable):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Message: err.Error()})
	case errors.As(err, &apiErr), errors.As(err, &mailErr):
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: err.Error()})
	}
}
