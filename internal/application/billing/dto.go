package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/plantlease/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest is the request to create an invoice
type CreateInvoiceRequest struct {
	InvoiceNumber string          `json:"invoice_number"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	ContractID    *uuid.UUID      `json:"contract_id,omitempty"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	DueDate       *time.Time      `json:"due_date,omitempty"`
}

// RecordPaymentRequest is the request to record a payment against an invoice
type RecordPaymentRequest struct {
	InvoiceID   uuid.UUID             `json:"invoice_id"`
	Amount      decimal.Decimal       `json:"amount"`
	Method      billing.PaymentMethod `json:"method"`
	PaymentDate time.Time             `json:"payment_date"`
	Reference   string                `json:"reference,omitempty"`
	RecordedBy  uuid.UUID             `json:"recorded_by"`
}

// UpdatePaymentRequest carries the editable payment fields. Nil fields
// are left unchanged.
type UpdatePaymentRequest struct {
	Amount      *decimal.Decimal       `json:"amount,omitempty"`
	Method      *billing.PaymentMethod `json:"method,omitempty"`
	PaymentDate *time.Time             `json:"payment_date,omitempty"`
	Reference   *string                `json:"reference,omitempty"`
}

// InvoiceResponse is the invoice representation returned to callers.
// Status carries the derived OVERDUE overlay when applicable;
// StoredStatus is the status as persisted by the ledger.
type InvoiceResponse struct {
	ID                uuid.UUID       `json:"id"`
	InvoiceNumber     string          `json:"invoice_number"`
	CustomerID        uuid.UUID       `json:"customer_id"`
	ContractID        *uuid.UUID      `json:"contract_id,omitempty"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	PaidAmount        decimal.Decimal `json:"paid_amount"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
	Status            string          `json:"status"`
	StoredStatus      string          `json:"stored_status"`
	DueDate           *time.Time      `json:"due_date,omitempty"`
	SentAt            *time.Time      `json:"sent_at,omitempty"`
	PaidAt            *time.Time      `json:"paid_at,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	Version           int             `json:"version"`
}

// PaymentResponse is the payment representation returned to callers
type PaymentResponse struct {
	ID          uuid.UUID       `json:"id"`
	InvoiceID   uuid.UUID       `json:"invoice_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"payment_date"`
	Method      string          `json:"method"`
	Reference   string          `json:"reference,omitempty"`
	Verified    bool            `json:"verified"`
	VerifiedAt  *time.Time      `json:"verified_at,omitempty"`
	VerifiedBy  *uuid.UUID      `json:"verified_by,omitempty"`
	RecordedBy  uuid.UUID       `json:"recorded_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

// InvoiceBalance is the cached balance snapshot of an invoice
type InvoiceBalance struct {
	InvoiceID         uuid.UUID       `json:"invoice_id"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	PaidAmount        decimal.Decimal `json:"paid_amount"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
	Status            string          `json:"status"`
}

// ToInvoiceResponse converts an invoice to its response representation
func ToInvoiceResponse(inv *billing.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:                inv.ID,
		InvoiceNumber:     inv.InvoiceNumber,
		CustomerID:        inv.CustomerID,
		ContractID:        inv.ContractID,
		TotalAmount:       inv.TotalAmount,
		PaidAmount:        inv.PaidAmount,
		OutstandingAmount: inv.OutstandingAmount,
		Status:            inv.EffectiveStatus(time.Now()).String(),
		StoredStatus:      inv.Status.String(),
		DueDate:           inv.DueDate,
		SentAt:            inv.SentAt,
		PaidAt:            inv.PaidAt,
		CreatedAt:         inv.CreatedAt,
		UpdatedAt:         inv.UpdatedAt,
		Version:           inv.Version,
	}
}

// ToPaymentResponse converts a payment to its response representation
func ToPaymentResponse(p *billing.Payment) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID,
		InvoiceID:   p.InvoiceID,
		Amount:      p.Amount,
		PaymentDate: p.PaymentDate,
		Method:      p.Method.String(),
		Reference:   p.Reference,
		Verified:    p.Verified,
		VerifiedAt:  p.VerifiedAt,
		VerifiedBy:  p.VerifiedBy,
		RecordedBy:  p.RecordedBy,
		CreatedAt:   p.CreatedAt,
	}
}

// ToInvoiceBalance converts an invoice to its cached balance snapshot
func ToInvoiceBalance(inv *billing.Invoice) InvoiceBalance {
	return InvoiceBalance{
		InvoiceID:         inv.ID,
		TotalAmount:       inv.TotalAmount,
		PaidAmount:        inv.PaidAmount,
		OutstandingAmount: inv.OutstandingAmount,
		Status:            inv.Status.String(),
	}
}
