package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appbilling "github.com/plantlease/backend/internal/application/billing"
	"github.com/plantlease/backend/internal/interfaces/http/dto"
)

// PaymentHandler exposes the invoice and payment ledger over HTTP
type PaymentHandler struct {
	BaseHandler
	service *appbilling.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(service *appbilling.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// CreateInvoice handles POST /api/v1/invoices
func (h *PaymentHandler) CreateInvoice(c *gin.Context) {
	var req appbilling.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.service.CreateInvoice(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, invoice)
}

// GetInvoice handles GET /api/v1/invoices/:id
func (h *PaymentHandler) GetInvoice(c *gin.Context) {
	invoiceID, ok := h.bindID(c)
	if !ok {
		return
	}

	invoice, err := h.service.GetInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// GetInvoiceBalance handles GET /api/v1/invoices/:id/balance
func (h *PaymentHandler) GetInvoiceBalance(c *gin.Context) {
	invoiceID, ok := h.bindID(c)
	if !ok {
		return
	}

	balance, err := h.service.GetInvoiceBalance(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, balance)
}

// SendInvoice handles POST /api/v1/invoices/:id/send
func (h *PaymentHandler) SendInvoice(c *gin.Context) {
	invoiceID, ok := h.bindID(c)
	if !ok {
		return
	}

	invoice, err := h.service.SendInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// CancelInvoice handles POST /api/v1/invoices/:id/cancel
func (h *PaymentHandler) CancelInvoice(c *gin.Context) {
	invoiceID, ok := h.bindID(c)
	if !ok {
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	// reason is optional; an empty body is fine
	_ = c.ShouldBindJSON(&body)

	invoice, err := h.service.CancelInvoice(c.Request.Context(), invoiceID, body.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// RecordPayment handles POST /api/v1/invoices/:id/payments
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	invoiceID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req appbilling.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.InvoiceID = invoiceID

	payment, err := h.service.RecordPayment(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, payment)
}

// ListPayments handles GET /api/v1/invoices/:id/payments
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	invoiceID, ok := h.bindID(c)
	if !ok {
		return
	}

	payments, err := h.service.ListPayments(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payments)
}

// UpdatePayment handles PATCH /api/v1/payments/:id
func (h *PaymentHandler) UpdatePayment(c *gin.Context) {
	paymentID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req appbilling.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	payment, err := h.service.UpdatePayment(c.Request.Context(), paymentID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payment)
}

// DeletePayment handles DELETE /api/v1/payments/:id
func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	paymentID, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.service.DeletePayment(c.Request.Context(), paymentID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// VerifyPayment handles POST /api/v1/payments/:id/verify
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	paymentID, ok := h.bindID(c)
	if !ok {
		return
	}

	var body struct {
		VerifiedBy uuid.UUID `json:"verified_by" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	payment, err := h.service.VerifyPayment(c.Request.Context(), paymentID, body.VerifiedBy)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payment)
}

// bindID binds and parses the :id path parameter
func (h *PaymentHandler) bindID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "invalid id")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}
