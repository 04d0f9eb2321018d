package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/plantlease/backend/internal/domain/billing"
	"github.com/plantlease/backend/internal/domain/leasing"
	"github.com/plantlease/backend/internal/domain/shared"
	"github.com/plantlease/backend/internal/interfaces/http/dto"
	"github.com/plantlease/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common response helpers for all handlers
type BaseHandler struct{}

// Success sends a 200 response with data
func (h *BaseHandler) Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a 200 response with data and pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data interface{}, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 response with data
func (h *BaseHandler) Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 response for malformed input
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrCodeBadRequest, message, middleware.GetRequestID(c)))
}

// HandleError maps domain errors onto HTTP responses. Typed errors
// carrying figures (overpayment, stock shortage) surface them in the
// details payload.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	requestID := middleware.GetRequestID(c)

	var exceedsErr *billing.ExceedsOutstandingError
	if errors.As(err, &exceedsErr) {
		c.JSON(dto.GetHTTPStatus(exceedsErr.Code()), dto.NewErrorResponseWithDetails(
			exceedsErr.Code(), exceedsErr.Error(), requestID,
			gin.H{
				"invoice_id":  exceedsErr.InvoiceID,
				"requested":   exceedsErr.Requested,
				"outstanding": exceedsErr.Outstanding,
			},
		))
		return
	}

	var stockErr *leasing.InsufficientStockError
	if errors.As(err, &stockErr) {
		c.JSON(dto.GetHTTPStatus(stockErr.Code()), dto.NewErrorResponseWithDetails(
			stockErr.Code(), stockErr.Error(), requestID,
			gin.H{
				"plant_type_id": stockErr.PlantTypeID,
				"requested":     stockErr.Requested,
				"available":     stockErr.Available,
			},
		))
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		c.JSON(dto.GetHTTPStatus(domainErr.Code), dto.NewErrorResponse(domainErr.Code, domainErr.Message, requestID))
		return
	}

	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(dto.ErrCodeInternal, "An internal error occurred", requestID))
}
