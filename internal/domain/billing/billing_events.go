package billing

import (
	"github.com/plantlease/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types emitted by the billing domain
const (
	EventTypeInvoiceCreated             = "billing.invoice.created"
	EventTypePaymentApplied             = "billing.invoice.payment_applied"
	EventTypeInvoicePaid                = "billing.invoice.paid"
	EventTypeInvoiceBalanceRecalculated = "billing.invoice.balance_recalculated"
	EventTypeInvoiceCancelled           = "billing.invoice.cancelled"
)

// InvoiceCreatedEvent is emitted when a new invoice is created
type InvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string          `json:"invoice_number"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// NewInvoiceCreatedEvent creates a new InvoiceCreatedEvent
func NewInvoiceCreatedEvent(inv *Invoice) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCreated, "Invoice", inv.ID),
		InvoiceNumber:   inv.InvoiceNumber,
		TotalAmount:     inv.TotalAmount,
	}
}

// PaymentAppliedEvent is emitted when a payment is applied to an invoice
type PaymentAppliedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber     string          `json:"invoice_number"`
	Amount            decimal.Decimal `json:"amount"`
	PaidAmount        decimal.Decimal `json:"paid_amount"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
	Status            InvoiceStatus   `json:"status"`
}

// NewPaymentAppliedEvent creates a new PaymentAppliedEvent
func NewPaymentAppliedEvent(inv *Invoice, amount decimal.Decimal) *PaymentAppliedEvent {
	return &PaymentAppliedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypePaymentApplied, "Invoice", inv.ID),
		InvoiceNumber:     inv.InvoiceNumber,
		Amount:            amount,
		PaidAmount:        inv.PaidAmount,
		OutstandingAmount: inv.OutstandingAmount,
		Status:            inv.Status,
	}
}

// InvoicePaidEvent is emitted when an invoice becomes fully paid
type InvoicePaidEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string          `json:"invoice_number"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// NewInvoicePaidEvent creates a new InvoicePaidEvent
func NewInvoicePaidEvent(inv *Invoice) *InvoicePaidEvent {
	return &InvoicePaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoicePaid, "Invoice", inv.ID),
		InvoiceNumber:   inv.InvoiceNumber,
		TotalAmount:     inv.TotalAmount,
	}
}

// InvoiceBalanceRecalculatedEvent is emitted after a full re-sum of the
// invoice's payments (payment edit or deletion)
type InvoiceBalanceRecalculatedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber     string          `json:"invoice_number"`
	PaidAmount        decimal.Decimal `json:"paid_amount"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
	Status            InvoiceStatus   `json:"status"`
}

// NewInvoiceBalanceRecalculatedEvent creates a new InvoiceBalanceRecalculatedEvent
func NewInvoiceBalanceRecalculatedEvent(inv *Invoice) *InvoiceBalanceRecalculatedEvent {
	return &InvoiceBalanceRecalculatedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypeInvoiceBalanceRecalculated, "Invoice", inv.ID),
		InvoiceNumber:     inv.InvoiceNumber,
		PaidAmount:        inv.PaidAmount,
		OutstandingAmount: inv.OutstandingAmount,
		Status:            inv.Status,
	}
}

// InvoiceCancelledEvent is emitted when an invoice is cancelled
type InvoiceCancelledEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string `json:"invoice_number"`
	Reason        string `json:"reason"`
}

// NewInvoiceCancelledEvent creates a new InvoiceCancelledEvent
func NewInvoiceCancelledEvent(inv *Invoice) *InvoiceCancelledEvent {
	return &InvoiceCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCancelled, "Invoice", inv.ID),
		InvoiceNumber:   inv.InvoiceNumber,
		Reason:          inv.CancelReason,
	}
}
