package billing

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/plantlease/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Error codes surfaced by the billing domain
const (
	CodeExceedsOutstanding = "EXCEEDS_OUTSTANDING"
	CodePaymentVerified    = "PAYMENT_VERIFIED"
	CodeAlreadyVerified    = "ALREADY_VERIFIED"
)

var (
	// ErrPaymentVerified is returned when an edit or deletion targets a
	// verified (immutable) payment.
	ErrPaymentVerified = shared.NewDomainError(CodePaymentVerified, "Payment is verified and cannot be modified or deleted")

	// ErrPaymentAlreadyVerified is returned when verifying an already
	// verified payment.
	ErrPaymentAlreadyVerified = shared.NewDomainError(CodeAlreadyVerified, "Payment is already verified")
)

// ExceedsOutstandingError is returned when a payment (or a recomputed
// payment sum) would push the paid amount above the invoice total. It
// carries the figures the caller needs to report the rejection.
type ExceedsOutstandingError struct {
	InvoiceID   uuid.UUID
	Requested   decimal.Decimal
	Outstanding decimal.Decimal
}

// Error implements the error interface
func (e *ExceedsOutstandingError) Error() string {
	return fmt.Sprintf("payment of %s exceeds outstanding balance of %s on invoice %s",
		e.Requested.StringFixed(2), e.Outstanding.StringFixed(2), e.InvoiceID)
}

// Code returns the domain error code
func (e *ExceedsOutstandingError) Code() string {
	return CodeExceedsOutstanding
}
