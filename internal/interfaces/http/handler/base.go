// Package handler contains the HTTP handlers for the storefront API.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/driftwear/storefront/internal/domain/commerce"
	"github.com/driftwear/storefront/internal/domain/shared"
	"github.com/driftwear/storefront/internal/interfaces/http/dto"
	"github.com/driftwear/storefront/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Result sends a negative business outcome: HTTP 200, success=false, with a
// result code such as OUT_OF_STOCK.
func (h *BaseHandler) Result(c *gin.Context, code, message string, data any) {
	c.JSON(http.StatusOK, dto.NewResultResponse(code, message, data))
}

// Error sends an error response with the given status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// HandleError converts domain and integration errors to HTTP responses.
// Commerce platform failures map to 502 so clients can distinguish an
// upstream outage from a storefront bug.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		h.Error(c, dto.GetHTTPStatus(code), code, domainErr.Message)
		return
	}

	if errors.Is(err, commerce.ErrPlatformUnavailable) {
		h.Error(c, http.StatusBadGateway, dto.ErrCodeCommerceUnavailable,
			"Commerce platform is unavailable")
		return
	}

	h.InternalError(c, "An unexpected error occurred")
}
