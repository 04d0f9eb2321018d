package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/plantlease/backend/internal/domain/shared"
	"github.com/plantlease/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "DRAFT"     // Created but never sent
	InvoiceStatusSent      InvoiceStatus = "SENT"      // Sent to the customer, nothing paid
	InvoiceStatusPartial   InvoiceStatus = "PARTIAL"   // Partially paid, 0 < paid < total
	InvoiceStatusPaid      InvoiceStatus = "PAID"      // Fully paid, outstanding = 0
	InvoiceStatusOverdue   InvoiceStatus = "OVERDUE"   // Derived for presentation, never stored by the ledger
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED" // Cancelled by explicit external action
	InvoiceStatusRefunded  InvoiceStatus = "REFUNDED"  // Refunded by explicit external action
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPartial, InvoiceStatusPaid,
		InvoiceStatusOverdue, InvoiceStatusCancelled, InvoiceStatusRefunded:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the invoice is in a terminal state.
// Terminal states are only entered through explicit external actions
// and are never recomputed by the balance rule.
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusCancelled || s == InvoiceStatusRefunded
}

// CanApplyPayment returns true if payments can be applied in this status
func (s InvoiceStatus) CanApplyPayment() bool {
	return !s.IsTerminal()
}

// ResolveStatus computes the next invoice status from the balance figures.
// It is a pure function with no I/O: the ledger calls it after every
// balance mutation with the freshly recomputed amounts.
//
// OVERDUE is intentionally never returned here; it is a derived,
// presentation-level fact (see Invoice.IsOverdue). Terminal states are
// passed through untouched.
func ResolveStatus(totalAmount, paidAmount decimal.Decimal, prior InvoiceStatus) InvoiceStatus {
	if prior.IsTerminal() {
		return prior
	}
	switch {
	case paidAmount.Cmp(totalAmount) == 0:
		return InvoiceStatusPaid
	case paidAmount.IsPositive():
		return InvoiceStatusPartial
	case prior == InvoiceStatusDraft:
		return InvoiceStatusDraft
	default:
		return InvoiceStatusSent
	}
}

// Invoice represents an invoice aggregate root. It owns the running
// paid/outstanding balance; all balance mutations go through this type
// so the 0 <= paid <= total invariant holds after every commit.
//
// OutstandingAmount is a derived cache of TotalAmount - PaidAmount,
// refreshed on every write and never mutated independently.
type Invoice struct {
	shared.BaseAggregateRoot
	InvoiceNumber     string          `gorm:"size:50;not null;uniqueIndex"`
	CustomerID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ContractID        *uuid.UUID      `gorm:"type:uuid;index"`
	TotalAmount       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaidAmount        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	OutstandingAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Status            InvoiceStatus   `gorm:"size:20;not null;default:'DRAFT'"`
	DueDate           *time.Time
	SentAt            *time.Time
	PaidAt            *time.Time
	CancelledAt       *time.Time
	CancelReason      string `gorm:"size:255"`
	RefundedAt        *time.Time
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// NewInvoice creates a new draft invoice
func NewInvoice(invoiceNumber string, customerID uuid.UUID, totalAmount valueobject.Money, dueDate *time.Time) (*Invoice, error) {
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if len(invoiceNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot exceed 50 characters")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if totalAmount.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Total amount must be positive")
	}

	inv := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceNumber:     invoiceNumber,
		CustomerID:        customerID,
		TotalAmount:       totalAmount.Amount(),
		PaidAmount:        decimal.Zero,
		OutstandingAmount: totalAmount.Amount(),
		Status:            InvoiceStatusDraft,
		DueDate:           dueDate,
	}

	inv.AddDomainEvent(NewInvoiceCreatedEvent(inv))

	return inv, nil
}

// AttachContract links the invoice to the lease contract it bills
func (inv *Invoice) AttachContract(contractID uuid.UUID) {
	inv.ContractID = &contractID
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
}

// MarkSent marks a draft invoice as sent to the customer
func (inv *Invoice) MarkSent() error {
	if inv.Status != InvoiceStatusDraft {
		return shared.ErrInvalidState
	}
	now := time.Now()
	inv.Status = InvoiceStatusSent
	inv.SentAt = &now
	inv.UpdatedAt = now
	inv.IncrementVersion()
	return nil
}

// ApplyPayment applies a payment amount to the invoice balance.
// The caller must have re-read the invoice inside the transaction it
// writes in; the outstanding figure used for validation is always
// derived from the invoice's own current state, never supplied from
// outside.
func (inv *Invoice) ApplyPayment(amount valueobject.Money) error {
	if !inv.Status.CanApplyPayment() {
		return shared.ErrInvalidState
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	outstanding := inv.TotalAmount.Sub(inv.PaidAmount)
	if amount.Amount().Cmp(outstanding) > 0 {
		return &ExceedsOutstandingError{
			InvoiceID:   inv.ID,
			Requested:   amount.Amount(),
			Outstanding: outstanding,
		}
	}

	inv.PaidAmount = inv.PaidAmount.Add(amount.Amount())
	inv.refreshBalance()

	inv.AddDomainEvent(NewPaymentAppliedEvent(inv, amount.Amount()))
	if inv.Status == InvoiceStatusPaid {
		inv.AddDomainEvent(NewInvoicePaidEvent(inv))
	}

	return nil
}

// RecalculateFromPayments recomputes the paid amount as the exact sum
// of the given payments. Payment edits and deletions use this full
// re-sum rather than incrementing a delta, so prior rounding or
// out-of-band edits can never let the stored balance drift from the
// payment rows.
func (inv *Invoice) RecalculateFromPayments(payments []Payment) error {
	if inv.Status.IsTerminal() {
		return shared.ErrInvalidState
	}

	sum := decimal.Zero
	for _, p := range payments {
		sum = sum.Add(p.Amount)
	}

	if sum.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment sum cannot be negative")
	}
	if sum.Cmp(inv.TotalAmount) > 0 {
		return &ExceedsOutstandingError{
			InvoiceID:   inv.ID,
			Requested:   sum,
			Outstanding: inv.TotalAmount,
		}
	}

	inv.PaidAmount = sum
	inv.refreshBalance()

	inv.AddDomainEvent(NewInvoiceBalanceRecalculatedEvent(inv))

	return nil
}

// refreshBalance refreshes the derived outstanding amount, the status
// and the paid timestamp after any balance mutation.
func (inv *Invoice) refreshBalance() {
	inv.OutstandingAmount = inv.TotalAmount.Sub(inv.PaidAmount)
	inv.Status = ResolveStatus(inv.TotalAmount, inv.PaidAmount, inv.Status)

	if inv.Status == InvoiceStatusPaid {
		if inv.PaidAt == nil {
			now := time.Now()
			inv.PaidAt = &now
		}
	} else {
		inv.PaidAt = nil
	}

	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
}

// Cancel cancels the invoice. Only invoices without applied payments
// can be cancelled. The balance figures stay untouched: OutstandingAmount
// remains total - paid, and the CANCELLED status is what voids the claim.
func (inv *Invoice) Cancel(reason string) error {
	if inv.Status.IsTerminal() {
		return shared.ErrInvalidState
	}
	if inv.PaidAmount.IsPositive() {
		return shared.NewDomainError("HAS_PAYMENTS", "Cannot cancel invoice with applied payments")
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	now := time.Now()
	inv.Status = InvoiceStatusCancelled
	inv.CancelledAt = &now
	inv.CancelReason = reason
	inv.UpdatedAt = now
	inv.IncrementVersion()

	inv.AddDomainEvent(NewInvoiceCancelledEvent(inv))

	return nil
}

// MarkRefunded marks a fully paid invoice as refunded
func (inv *Invoice) MarkRefunded() error {
	if inv.Status != InvoiceStatusPaid {
		return shared.ErrInvalidState
	}

	now := time.Now()
	inv.Status = InvoiceStatusRefunded
	inv.RefundedAt = &now
	inv.UpdatedAt = now
	inv.IncrementVersion()

	return nil
}

// IsOverdue returns true if the due date has passed and there is still
// an outstanding balance. This is a derived fact layered on top of
// SENT/PARTIAL; the ledger never stores it.
func (inv *Invoice) IsOverdue(now time.Time) bool {
	if inv.DueDate == nil || inv.Status.IsTerminal() || inv.Status == InvoiceStatusPaid {
		return false
	}
	return now.After(*inv.DueDate) && inv.OutstandingAmount.IsPositive()
}

// EffectiveStatus returns the status with the derived OVERDUE overlay applied
func (inv *Invoice) EffectiveStatus(now time.Time) InvoiceStatus {
	if inv.IsOverdue(now) {
		return InvoiceStatusOverdue
	}
	return inv.Status
}

// GetTotalAmountMoney returns total amount as Money
func (inv *Invoice) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyEUR(inv.TotalAmount)
}

// GetPaidAmountMoney returns paid amount as Money
func (inv *Invoice) GetPaidAmountMoney() valueobject.Money {
	return valueobject.NewMoneyEUR(inv.PaidAmount)
}

// GetOutstandingAmountMoney returns the outstanding amount as Money
func (inv *Invoice) GetOutstandingAmountMoney() valueobject.Money {
	return valueobject.NewMoneyEUR(inv.OutstandingAmount)
}

// IsPaid returns true if the invoice is fully paid
func (inv *Invoice) IsPaid() bool {
	return inv.Status == InvoiceStatusPaid
}
