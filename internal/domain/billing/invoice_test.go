package billing

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/plantlease/backend/internal/domain/shared"
	"github.com/plantlease/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestInvoice(t *testing.T, total string) *Invoice {
	t.Helper()
	totalAmount, err := valueobject.NewMoneyEURFromString(total)
	require.NoError(t, err)

	inv, err := NewInvoice("INV-2026-001", uuid.New(), totalAmount, nil)
	require.NoError(t, err)
	return inv
}

func mustMoney(t *testing.T, amount string) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoneyEURFromString(amount)
	require.NoError(t, err)
	return m
}

// ============================================
// InvoiceStatus Tests
// ============================================

func TestInvoiceStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  InvoiceStatus
		isValid bool
	}{
		{InvoiceStatusDraft, true},
		{InvoiceStatusSent, true},
		{InvoiceStatusPartial, true},
		{InvoiceStatusPaid, true},
		{InvoiceStatusOverdue, true},
		{InvoiceStatusCancelled, true},
		{InvoiceStatusRefunded, true},
		{InvoiceStatus("INVALID"), false},
		{InvoiceStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestInvoiceStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status     InvoiceStatus
		isTerminal bool
	}{
		{InvoiceStatusDraft, false},
		{InvoiceStatusSent, false},
		{InvoiceStatusPartial, false},
		{InvoiceStatusPaid, false},
		{InvoiceStatusCancelled, true},
		{InvoiceStatusRefunded, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isTerminal, tt.status.IsTerminal())
		})
	}
}

// ============================================
// ResolveStatus Tests
// ============================================

func TestResolveStatus(t *testing.T) {
	total := decimal.NewFromInt(1000)

	tests := []struct {
		name     string
		paid     decimal.Decimal
		prior    InvoiceStatus
		expected InvoiceStatus
	}{
		{"fully paid", decimal.NewFromInt(1000), InvoiceStatusPartial, InvoiceStatusPaid},
		{"partially paid", decimal.NewFromInt(400), InvoiceStatusSent, InvoiceStatusPartial},
		{"nothing paid stays sent", decimal.Zero, InvoiceStatusSent, InvoiceStatusSent},
		{"nothing paid stays draft", decimal.Zero, InvoiceStatusDraft, InvoiceStatusDraft},
		{"back to sent after payments removed", decimal.Zero, InvoiceStatusPartial, InvoiceStatusSent},
		{"cancelled passes through", decimal.Zero, InvoiceStatusCancelled, InvoiceStatusCancelled},
		{"refunded passes through", decimal.NewFromInt(1000), InvoiceStatusRefunded, InvoiceStatusRefunded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveStatus(total, tt.paid, tt.prior))
		})
	}
}

func TestResolveStatus_ScaleInsensitive(t *testing.T) {
	// 1000.00 paid against a total of 1000 is PAID regardless of scale
	total, _ := decimal.NewFromString("1000")
	paid, _ := decimal.NewFromString("1000.00")

	assert.Equal(t, InvoiceStatusPaid, ResolveStatus(total, paid, InvoiceStatusPartial))
}

// ============================================
// NewInvoice Tests
// ============================================

func TestNewInvoice(t *testing.T) {
	t.Run("creates draft invoice with valid inputs", func(t *testing.T) {
		inv := createTestInvoice(t, "1000000")

		assert.Equal(t, InvoiceStatusDraft, inv.Status)
		assert.True(t, inv.PaidAmount.IsZero())
		assert.True(t, inv.OutstandingAmount.Equal(decimal.NewFromInt(1000000)))
		assert.Len(t, inv.GetDomainEvents(), 1)
	})

	t.Run("rejects empty invoice number", func(t *testing.T) {
		_, err := NewInvoice("", uuid.New(), mustMoney(t, "100"), nil)
		assert.Error(t, err)
	})

	t.Run("rejects nil customer", func(t *testing.T) {
		_, err := NewInvoice("INV-1", uuid.Nil, mustMoney(t, "100"), nil)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive total", func(t *testing.T) {
		_, err := NewInvoice("INV-1", uuid.New(), mustMoney(t, "0"), nil)
		assert.Error(t, err)

		_, err = NewInvoice("INV-1", uuid.New(), mustMoney(t, "-10"), nil)
		assert.Error(t, err)
	})
}

// ============================================
// ApplyPayment Tests
// ============================================

func TestInvoice_ApplyPayment(t *testing.T) {
	t.Run("applies partial payment", func(t *testing.T) {
		inv := createTestInvoice(t, "1000000")
		require.NoError(t, inv.MarkSent())

		err := inv.ApplyPayment(mustMoney(t, "600000"))
		require.NoError(t, err)

		assert.Equal(t, InvoiceStatusPartial, inv.Status)
		assert.Equal(t, "600000.00", inv.PaidAmount.StringFixed(2))
		assert.Equal(t, "400000.00", inv.OutstandingAmount.StringFixed(2))
	})

	t.Run("rejects payment exceeding outstanding", func(t *testing.T) {
		inv := createTestInvoice(t, "1000000")
		require.NoError(t, inv.MarkSent())
		require.NoError(t, inv.ApplyPayment(mustMoney(t, "600000")))

		err := inv.ApplyPayment(mustMoney(t, "500000"))
		require.Error(t, err)

		var exceedsErr *ExceedsOutstandingError
		require.ErrorAs(t, err, &exceedsErr)
		assert.Equal(t, "500000.00", exceedsErr.Requested.StringFixed(2))
		assert.Equal(t, "400000.00", exceedsErr.Outstanding.StringFixed(2))

		// Balance untouched by the rejected payment
		assert.Equal(t, "600000.00", inv.PaidAmount.StringFixed(2))
		assert.Equal(t, "400000.00", inv.OutstandingAmount.StringFixed(2))
		assert.Equal(t, InvoiceStatusPartial, inv.Status)
	})

	t.Run("sequence of payments reaches exactly PAID", func(t *testing.T) {
		inv := createTestInvoice(t, "1000000")
		require.NoError(t, inv.MarkSent())

		require.NoError(t, inv.ApplyPayment(mustMoney(t, "400000")))
		assert.Equal(t, InvoiceStatusPartial, inv.Status)

		require.NoError(t, inv.ApplyPayment(mustMoney(t, "300000")))
		assert.Equal(t, InvoiceStatusPartial, inv.Status)

		require.NoError(t, inv.ApplyPayment(mustMoney(t, "300000")))
		assert.Equal(t, InvoiceStatusPaid, inv.Status)
		assert.True(t, inv.OutstandingAmount.IsZero())
		assert.NotNil(t, inv.PaidAt)
	})

	t.Run("decimal amounts sum without float drift", func(t *testing.T) {
		inv := createTestInvoice(t, "1000000")
		require.NoError(t, inv.MarkSent())

		require.NoError(t, inv.ApplyPayment(mustMoney(t, "333333.33")))
		require.NoError(t, inv.ApplyPayment(mustMoney(t, "333333.33")))
		require.NoError(t, inv.ApplyPayment(mustMoney(t, "333333.34")))

		assert.Equal(t, InvoiceStatusPaid, inv.Status)
		assert.True(t, inv.OutstandingAmount.IsZero(), "outstanding must be exactly zero, got %s", inv.OutstandingAmount)
	})

	t.Run("rejects payment on terminal invoice", func(t *testing.T) {
		inv := createTestInvoice(t, "1000")
		require.NoError(t, inv.Cancel("duplicate"))

		err := inv.ApplyPayment(mustMoney(t, "100"))
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		inv := createTestInvoice(t, "1000")
		err := inv.ApplyPayment(mustMoney(t, "0"))
		assert.Error(t, err)
	})

	t.Run("emits paid event on full payment", func(t *testing.T) {
		inv := createTestInvoice(t, "500")
		inv.ClearDomainEvents()

		require.NoError(t, inv.ApplyPayment(mustMoney(t, "500")))

		events := inv.GetDomainEvents()
		require.Len(t, events, 2)
		assert.Equal(t, EventTypePaymentApplied, events[0].EventType())
		assert.Equal(t, EventTypeInvoicePaid, events[1].EventType())
	})
}

// ============================================
// RecalculateFromPayments Tests
// ============================================

func TestInvoice_RecalculateFromPayments(t *testing.T) {
	makePayment := func(t *testing.T, inv *Invoice, amount string) Payment {
		p, err := NewPayment(inv.ID, mustMoney(t, amount), PaymentMethodBankTransfer, time.Now(), uuid.New())
		require.NoError(t, err)
		return *p
	}

	t.Run("recomputes paid amount as exact sum", func(t *testing.T) {
		inv := createTestInvoice(t, "1000000")
		require.NoError(t, inv.MarkSent())

		payments := []Payment{
			makePayment(t, inv, "333333.33"),
			makePayment(t, inv, "333333.33"),
			makePayment(t, inv, "333333.34"),
		}

		require.NoError(t, inv.RecalculateFromPayments(payments))

		assert.Equal(t, InvoiceStatusPaid, inv.Status)
		assert.True(t, inv.OutstandingAmount.IsZero())
	})

	t.Run("empty payment list resets to sent", func(t *testing.T) {
		inv := createTestInvoice(t, "1000")
		require.NoError(t, inv.MarkSent())
		require.NoError(t, inv.ApplyPayment(mustMoney(t, "400")))
		require.Equal(t, InvoiceStatusPartial, inv.Status)

		require.NoError(t, inv.RecalculateFromPayments(nil))

		assert.Equal(t, InvoiceStatusSent, inv.Status)
		assert.True(t, inv.PaidAmount.IsZero())
		assert.Equal(t, "1000.00", inv.OutstandingAmount.StringFixed(2))
	})

	t.Run("rejects sum exceeding total", func(t *testing.T) {
		inv := createTestInvoice(t, "1000")
		require.NoError(t, inv.MarkSent())

		payments := []Payment{
			makePayment(t, inv, "800"),
			makePayment(t, inv, "500"),
		}

		err := inv.RecalculateFromPayments(payments)
		var exceedsErr *ExceedsOutstandingError
		require.ErrorAs(t, err, &exceedsErr)
		assert.Equal(t, "1300.00", exceedsErr.Requested.StringFixed(2))
	})

	t.Run("rejects recalculation on terminal invoice", func(t *testing.T) {
		inv := createTestInvoice(t, "1000")
		require.NoError(t, inv.Cancel("void"))

		err := inv.RecalculateFromPayments(nil)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})
}

// ============================================
// Cancel / MarkRefunded Tests
// ============================================

func TestInvoice_Cancel(t *testing.T) {
	t.Run("cancels unpaid invoice", func(t *testing.T) {
		inv := createTestInvoice(t, "1000")

		require.NoError(t, inv.Cancel("customer withdrew"))

		assert.Equal(t, InvoiceStatusCancelled, inv.Status)
		assert.NotNil(t, inv.CancelledAt)
	})

	t.Run("keeps the derived balance through cancellation", func(t *testing.T) {
		inv := createTestInvoice(t, "1000")

		require.NoError(t, inv.Cancel("customer withdrew"))

		// outstanding stays total - paid; cancellation never rewrites
		// the balance figures
		assert.True(t, inv.PaidAmount.IsZero())
		assert.Equal(t, "1000.00", inv.OutstandingAmount.StringFixed(2))
		assert.True(t, inv.OutstandingAmount.Equal(inv.TotalAmount.Sub(inv.PaidAmount)))
	})

	t.Run("rejects cancel with applied payments", func(t *testing.T) {
		inv := createTestInvoice(t, "1000")
		require.NoError(t, inv.ApplyPayment(mustMoney(t, "100")))

		err := inv.Cancel("too late")
		assert.Error(t, err)
		assert.NotEqual(t, InvoiceStatusCancelled, inv.Status)
	})

	t.Run("rejects double cancel", func(t *testing.T) {
		inv := createTestInvoice(t, "1000")
		require.NoError(t, inv.Cancel("first"))

		err := inv.Cancel("second")
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})
}

func TestInvoice_MarkRefunded(t *testing.T) {
	t.Run("refunds paid invoice", func(t *testing.T) {
		inv := createTestInvoice(t, "500")
		require.NoError(t, inv.ApplyPayment(mustMoney(t, "500")))

		require.NoError(t, inv.MarkRefunded())
		assert.Equal(t, InvoiceStatusRefunded, inv.Status)
	})

	t.Run("rejects refund on unpaid invoice", func(t *testing.T) {
		inv := createTestInvoice(t, "500")
		err := inv.MarkRefunded()
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})
}

// ============================================
// Overdue Tests
// ============================================

func TestInvoice_IsOverdue(t *testing.T) {
	now := time.Now()
	past := now.AddDate(0, 0, -10)
	future := now.AddDate(0, 0, 10)

	t.Run("overdue when past due with outstanding balance", func(t *testing.T) {
		total := mustMoney(t, "1000")
		inv, err := NewInvoice("INV-1", uuid.New(), total, &past)
		require.NoError(t, err)
		require.NoError(t, inv.MarkSent())

		assert.True(t, inv.IsOverdue(now))
		assert.Equal(t, InvoiceStatusOverdue, inv.EffectiveStatus(now))
		// The stored status is untouched by the overlay
		assert.Equal(t, InvoiceStatusSent, inv.Status)
	})

	t.Run("not overdue when fully paid", func(t *testing.T) {
		total := mustMoney(t, "1000")
		inv, err := NewInvoice("INV-1", uuid.New(), total, &past)
		require.NoError(t, err)
		require.NoError(t, inv.ApplyPayment(total))

		assert.False(t, inv.IsOverdue(now))
		assert.Equal(t, InvoiceStatusPaid, inv.EffectiveStatus(now))
	})

	t.Run("not overdue before due date", func(t *testing.T) {
		total := mustMoney(t, "1000")
		inv, err := NewInvoice("INV-1", uuid.New(), total, &future)
		require.NoError(t, err)
		require.NoError(t, inv.MarkSent())

		assert.False(t, inv.IsOverdue(now))
	})

	t.Run("not overdue without due date", func(t *testing.T) {
		inv := createTestInvoice(t, "1000")
		assert.False(t, inv.IsOverdue(now))
	})

	t.Run("not overdue when cancelled", func(t *testing.T) {
		total := mustMoney(t, "1000")
		inv, err := NewInvoice("INV-1", uuid.New(), total, &past)
		require.NoError(t, err)
		require.NoError(t, inv.Cancel("void"))

		assert.False(t, inv.IsOverdue(now))
	})
}

func TestExceedsOutstandingError_Message(t *testing.T) {
	err := &ExceedsOutstandingError{
		InvoiceID:   uuid.New(),
		Requested:   decimal.NewFromInt(500000),
		Outstanding: decimal.NewFromInt(400000),
	}

	assert.Contains(t, err.Error(), "500000.00")
	assert.Contains(t, err.Error(), "400000.00")
	assert.Equal(t, CodeExceedsOutstanding, err.Code())

	var target *ExceedsOutstandingError
	assert.True(t, errors.As(err, &target))
}
