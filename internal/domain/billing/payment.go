package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/plantlease/backend/internal/domain/shared"
	"github.com/plantlease/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodDirectDebit  PaymentMethod = "DIRECT_DEBIT"
	PaymentMethodOther        PaymentMethod = "OTHER"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodCard,
		PaymentMethodDirectDebit, PaymentMethodOther:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// Payment represents a single payment recorded against an invoice.
// A payment is mutable only while unverified; once verified it is
// immutable and cannot be deleted. Verification is one-way.
type Payment struct {
	shared.BaseEntity
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaymentDate time.Time       `gorm:"not null"`
	Method      PaymentMethod   `gorm:"size:20;not null"`
	Reference   string          `gorm:"size:100"`
	Verified    bool            `gorm:"not null;default:false"`
	VerifiedAt  *time.Time
	VerifiedBy  *uuid.UUID `gorm:"type:uuid"`
	RecordedBy  uuid.UUID  `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment creates a new unverified payment against an invoice
func NewPayment(invoiceID uuid.UUID, amount valueobject.Money, method PaymentMethod, paymentDate time.Time, recordedBy uuid.UUID) (*Payment, error) {
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVOICE", "Invoice ID cannot be empty")
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", "Payment method is not valid")
	}
	if recordedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Recording user cannot be empty")
	}
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}

	return &Payment{
		BaseEntity:  shared.NewBaseEntity(),
		InvoiceID:   invoiceID,
		Amount:      amount.Amount(),
		PaymentDate: paymentDate,
		Method:      method,
		RecordedBy:  recordedBy,
	}, nil
}

// PaymentUpdate carries the mutable fields of a payment edit.
// Nil fields are left unchanged.
type PaymentUpdate struct {
	Amount      *valueobject.Money
	Method      *PaymentMethod
	PaymentDate *time.Time
	Reference   *string
}

// HasAmountChange returns true if the update changes the amount
func (u PaymentUpdate) HasAmountChange() bool {
	return u.Amount != nil
}

// Update applies an edit to the payment. Verified payments are
// immutable and reject any edit.
func (p *Payment) Update(update PaymentUpdate) error {
	if p.Verified {
		return ErrPaymentVerified
	}

	if update.Amount != nil {
		if update.Amount.Amount().LessThanOrEqual(decimal.Zero) {
			return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
		}
		p.Amount = update.Amount.Amount()
	}
	if update.Method != nil {
		if !update.Method.IsValid() {
			return shared.NewDomainError("INVALID_METHOD", "Payment method is not valid")
		}
		p.Method = *update.Method
	}
	if update.PaymentDate != nil {
		p.PaymentDate = *update.PaymentDate
	}
	if update.Reference != nil {
		p.Reference = *update.Reference
	}

	p.UpdatedAt = time.Now()

	return nil
}

// CanDelete returns true if the payment may be deleted
func (p *Payment) CanDelete() bool {
	return !p.Verified
}

// Verify marks the payment as verified. Verification is one-way: there
// is no unverify operation and verified payments become immutable.
func (p *Payment) Verify(verifiedBy uuid.UUID) error {
	if p.Verified {
		return ErrPaymentAlreadyVerified
	}
	if verifiedBy == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Verifying user cannot be empty")
	}

	now := time.Now()
	p.Verified = true
	p.VerifiedAt = &now
	p.VerifiedBy = &verifiedBy
	p.UpdatedAt = now

	return nil
}

// GetAmountMoney returns the payment amount as Money
func (p *Payment) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyEUR(p.Amount)
}
