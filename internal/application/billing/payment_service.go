package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/plantlease/backend/internal/domain/billing"
	"github.com/plantlease/backend/internal/domain/shared"
	"github.com/plantlease/backend/internal/domain/shared/valueobject"
)

// BalanceCache caches invoice balance snapshots for cheap reads.
// The cache is strictly an accelerator: the service refreshes it after
// every committed balance mutation and reads fall back to the database
// on a miss, so a cold or unavailable cache never changes behavior.
type BalanceCache interface {
	// Get returns the cached balance, or shared.ErrNotFound on a miss
	Get(ctx context.Context, invoiceID uuid.UUID) (*InvoiceBalance, error)
	// Set stores the balance snapshot
	Set(ctx context.Context, balance InvoiceBalance) error
	// Invalidate removes the cached balance
	Invalidate(ctx context.Context, invoiceID uuid.UUID) error
}

// PaymentService handles the invoice payment ledger: recording, editing,
// deleting and verifying payments, always keeping the invoice balance
// consistent with its payment rows.
//
// Every mutation runs in one unit of work: the invoice is re-read with a
// row lock inside the transaction, validated against its current state,
// and written back together with the payment change. Two payments racing
// on the same invoice therefore serialize, and the second sees the
// balance left by the first.
type PaymentService struct {
	scope          TransactionScope
	eventPublisher shared.EventPublisher
	balanceCache   BalanceCache
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(scope TransactionScope) *PaymentService {
	return &PaymentService{scope: scope}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *PaymentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetBalanceCache sets the invoice balance cache
func (s *PaymentService) SetBalanceCache(cache BalanceCache) {
	s.balanceCache = cache
}

// publishDomainEvents publishes all domain events from the invoice after
// a successful commit
func (s *PaymentService) publishDomainEvents(ctx context.Context, inv *billing.Invoice) {
	if s.eventPublisher == nil {
		return
	}
	events := inv.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	// Publish events (errors are logged by the event bus, not propagated)
	_ = s.eventPublisher.Publish(ctx, events...)
	inv.ClearDomainEvents()
}

// refreshBalanceCache stores the committed balance snapshot. Cache
// failures are swallowed; reads fall back to the database.
func (s *PaymentService) refreshBalanceCache(ctx context.Context, inv *billing.Invoice) {
	if s.balanceCache == nil {
		return
	}
	_ = s.balanceCache.Set(ctx, ToInvoiceBalance(inv))
}

// CreateInvoice creates a new draft invoice
func (s *PaymentService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	inv, err := billing.NewInvoice(req.InvoiceNumber, req.CustomerID, valueobject.NewMoneyEUR(req.TotalAmount), req.DueDate)
	if err != nil {
		return nil, err
	}
	if req.ContractID != nil {
		inv.AttachContract(*req.ContractID)
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if existing, err := repos.InvoiceRepo().FindByNumber(ctx, req.InvoiceNumber); err == nil && existing != nil {
			return shared.ErrAlreadyExists
		}
		return repos.InvoiceRepo().Save(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, inv)
	s.refreshBalanceCache(ctx, inv)

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// SendInvoice marks a draft invoice as sent to the customer
func (s *PaymentService) SendInvoice(ctx context.Context, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	var inv *billing.Invoice

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		inv, err = repos.InvoiceRepo().FindByIDForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}
		if err := inv.MarkSent(); err != nil {
			return err
		}
		return repos.InvoiceRepo().Save(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	s.refreshBalanceCache(ctx, inv)

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// CancelInvoice cancels an invoice. Invoices with applied payments
// cannot be cancelled.
func (s *PaymentService) CancelInvoice(ctx context.Context, invoiceID uuid.UUID, reason string) (*InvoiceResponse, error) {
	var inv *billing.Invoice

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		inv, err = repos.InvoiceRepo().FindByIDForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}
		if err := inv.Cancel(reason); err != nil {
			return err
		}
		return repos.InvoiceRepo().Save(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, inv)
	if s.balanceCache != nil {
		_ = s.balanceCache.Invalidate(ctx, invoiceID)
	}

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// GetInvoice retrieves an invoice by ID
func (s *PaymentService) GetInvoice(ctx context.Context, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	var inv *billing.Invoice

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		inv, err = repos.InvoiceRepo().FindByID(ctx, invoiceID)
		return err
	})
	if err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// GetInvoiceBalance returns the balance snapshot of an invoice,
// served from the cache when warm.
func (s *PaymentService) GetInvoiceBalance(ctx context.Context, invoiceID uuid.UUID) (*InvoiceBalance, error) {
	if s.balanceCache != nil {
		if balance, err := s.balanceCache.Get(ctx, invoiceID); err == nil {
			return balance, nil
		}
	}

	var inv *billing.Invoice
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		inv, err = repos.InvoiceRepo().FindByID(ctx, invoiceID)
		return err
	})
	if err != nil {
		return nil, err
	}

	balance := ToInvoiceBalance(inv)
	if s.balanceCache != nil {
		_ = s.balanceCache.Set(ctx, balance)
	}
	return &balance, nil
}

// RecordPayment records a payment against an invoice and applies it to
// the invoice balance. The invoice is re-read with a row lock inside the
// transaction, so the no-overpayment check always runs against current
// state; a payment exceeding the outstanding amount rolls the whole
// operation back.
func (s *PaymentService) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*PaymentResponse, error) {
	payment, err := billing.NewPayment(req.InvoiceID, valueobject.NewMoneyEUR(req.Amount), req.Method, req.PaymentDate, req.RecordedBy)
	if err != nil {
		return nil, err
	}
	payment.Reference = req.Reference

	var inv *billing.Invoice

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		inv, err = repos.InvoiceRepo().FindByIDForUpdate(ctx, req.InvoiceID)
		if err != nil {
			return err
		}

		if err := inv.ApplyPayment(payment.GetAmountMoney()); err != nil {
			return err
		}

		if err := repos.PaymentRepo().Create(ctx, payment); err != nil {
			return err
		}
		return repos.InvoiceRepo().Save(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, inv)
	s.refreshBalanceCache(ctx, inv)

	response := ToPaymentResponse(payment)
	return &response, nil
}

// UpdatePayment edits an unverified payment. When the amount changes the
// invoice balance is recomputed as the exact sum of all remaining
// payment rows rather than by applying a delta, so the stored balance
// can never drift from the payments. An edit that would push the sum
// over the invoice total rolls back, leaving both the payment and the
// invoice untouched.
func (s *PaymentService) UpdatePayment(ctx context.Context, paymentID uuid.UUID, req UpdatePaymentRequest) (*PaymentResponse, error) {
	var (
		payment *billing.Payment
		inv     *billing.Invoice
	)

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		payment, err = repos.PaymentRepo().FindByID(ctx, paymentID)
		if err != nil {
			return err
		}

		// Lock the invoice before touching the payment so concurrent
		// mutations on the same invoice serialize.
		inv, err = repos.InvoiceRepo().FindByIDForUpdate(ctx, payment.InvoiceID)
		if err != nil {
			return err
		}

		update := billing.PaymentUpdate{
			Method:      req.Method,
			PaymentDate: req.PaymentDate,
			Reference:   req.Reference,
		}
		if req.Amount != nil {
			amount := valueobject.NewMoneyEUR(*req.Amount)
			update.Amount = &amount
		}

		if err := payment.Update(update); err != nil {
			return err
		}
		if err := repos.PaymentRepo().Save(ctx, payment); err != nil {
			return err
		}

		if !update.HasAmountChange() {
			return nil
		}

		payments, err := repos.PaymentRepo().FindByInvoice(ctx, payment.InvoiceID)
		if err != nil {
			return err
		}
		if err := inv.RecalculateFromPayments(payments); err != nil {
			return err
		}
		return repos.InvoiceRepo().Save(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, inv)
	s.refreshBalanceCache(ctx, inv)

	response := ToPaymentResponse(payment)
	return &response, nil
}

// DeletePayment removes an unverified payment and recomputes the invoice
// balance from the remaining payment rows in the same transaction.
func (s *PaymentService) DeletePayment(ctx context.Context, paymentID uuid.UUID) error {
	var inv *billing.Invoice

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		payment, err := repos.PaymentRepo().FindByID(ctx, paymentID)
		if err != nil {
			return err
		}
		if !payment.CanDelete() {
			return billing.ErrPaymentVerified
		}

		inv, err = repos.InvoiceRepo().FindByIDForUpdate(ctx, payment.InvoiceID)
		if err != nil {
			return err
		}

		if err := repos.PaymentRepo().Delete(ctx, paymentID); err != nil {
			return err
		}

		payments, err := repos.PaymentRepo().FindByInvoice(ctx, payment.InvoiceID)
		if err != nil {
			return err
		}
		if err := inv.RecalculateFromPayments(payments); err != nil {
			return err
		}
		return repos.InvoiceRepo().Save(ctx, inv)
	})
	if err != nil {
		return err
	}

	s.publishDomainEvents(ctx, inv)
	s.refreshBalanceCache(ctx, inv)

	return nil
}

// VerifyPayment marks a payment as verified. Verification is one-way and
// does not touch the invoice balance.
func (s *PaymentService) VerifyPayment(ctx context.Context, paymentID, verifiedBy uuid.UUID) (*PaymentResponse, error) {
	var payment *billing.Payment

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		payment, err = repos.PaymentRepo().FindByID(ctx, paymentID)
		if err != nil {
			return err
		}
		if err := payment.Verify(verifiedBy); err != nil {
			return err
		}
		return repos.PaymentRepo().Save(ctx, payment)
	})
	if err != nil {
		return nil, err
	}

	response := ToPaymentResponse(payment)
	return &response, nil
}

// ListPayments returns all payments recorded against an invoice
func (s *PaymentService) ListPayments(ctx context.Context, invoiceID uuid.UUID) ([]PaymentResponse, error) {
	var payments []billing.Payment

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		payments, err = repos.PaymentRepo().FindByInvoice(ctx, invoiceID)
		return err
	})
	if err != nil {
		return nil, err
	}

	responses := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		responses = append(responses, ToPaymentResponse(&payments[i]))
	}
	return responses, nil
}
