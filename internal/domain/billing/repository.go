package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/plantlease/backend/internal/domain/shared"
)

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	// FindByID finds an invoice by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindByIDForUpdate finds an invoice by ID and locks the row for the
	// duration of the current transaction. The ledger uses this for every
	// balance mutation so the outstanding check and the write are
	// indivisible with respect to concurrent callers.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindByNumber finds an invoice by its invoice number
	FindByNumber(ctx context.Context, invoiceNumber string) (*Invoice, error)

	// FindByCustomer finds invoices for a customer
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Invoice, error)

	// Save creates or updates an invoice
	Save(ctx context.Context, inv *Invoice) error
}

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	// FindByID finds a payment by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindByInvoice finds all payments linked to an invoice, ordered by
	// payment date. Used by the full re-sum on payment edit/deletion.
	FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]Payment, error)

	// Create inserts a new payment
	Create(ctx context.Context, p *Payment) error

	// Save updates an existing payment
	Save(ctx context.Context, p *Payment) error

	// Delete deletes a payment
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByInvoice counts payments linked to an invoice
	CountByInvoice(ctx context.Context, invoiceID uuid.UUID) (int64, error)
}
