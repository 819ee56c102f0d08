package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/valueobject"
)

// Payment application errors.
var (
	ErrPaymentNotPositive = errors.New("payment amount must be positive")
	ErrOverpayment        = errors.New("payment exceeds installment balance")
)

// Installment is one scheduled repayment unit within a loan. The balance
// starts at the scheduled amount and only ever decreases; the status is
// recomputed from the post-payment state, never incremented.
type Installment struct {
	ID        string
	LoanID    string
	Number    int
	DueDate   time.Time
	Amount    decimal.Decimal
	Balance   decimal.Decimal
	Status    valueobject.InstallmentStatus
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// InstallmentStatusFor derives the status of an installment from its
// post-payment state. Idempotent: the same inputs always yield the same
// status.
func InstallmentStatusFor(
	balance, amount decimal.Decimal,
	dueDate, now time.Time,
) valueobject.InstallmentStatus {
	switch {
	case balance.IsZero():
		return valueobject.InstallmentStatusPaid
	case balance.LessThan(amount) && dueDate.Before(now):
		return valueobject.InstallmentStatusLate
	case balance.LessThan(amount):
		return valueobject.InstallmentStatusPartial
	default:
		return valueobject.InstallmentStatusPending
	}
}

// ApplyPayment returns a copy of the installment with the payment subtracted
// from its balance and the status recomputed. Overpayment is rejected, never
// clamped; the caller must split excess across installments.
func (i Installment) ApplyPayment(amount decimal.Decimal, now time.Time) (Installment, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return i, ErrPaymentNotPositive
	}
	if amount.GreaterThan(i.Balance) {
		return i, fmt.Errorf("%w: payment of %s against balance of %s",
			ErrOverpayment, amount.StringFixed(2), i.Balance.StringFixed(2))
	}

	next := i
	next.Balance = i.Balance.Sub(amount)
	next.Status = InstallmentStatusFor(next.Balance, next.Amount, next.DueDate, now)
	next.UpdatedAt = now
	return next, nil
}

// Refresh recomputes the status from current state without changing the
// balance. Used to surface LATE transitions that happen by the passage of
// time alone.
func (i Installment) Refresh(now time.Time) Installment {
	next := i
	next.Status = InstallmentStatusFor(i.Balance, i.Amount, i.DueDate, now)
	return next
}

// IsOverdue reports whether the installment is unpaid past its due date.
func (i Installment) IsOverdue(now time.Time) bool {
	return !i.Status.Equal(valueobject.InstallmentStatusPaid) && i.DueDate.Before(now)
}
