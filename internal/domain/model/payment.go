package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment is an immutable record of funds applied to one installment. It is
// created once and never mutated or deleted.
type Payment struct {
	ID            string
	InstallmentID string
	Amount        decimal.Decimal
	Note          string
	PaidAt        time.Time
	CreatedAt     time.Time
}

// NewPayment creates a payment record. PaidAt defaults to now but may be
// backdated by the caller. Amount bounds against the installment balance are
// enforced by Installment.ApplyPayment, not here.
func NewPayment(installmentID string, amount decimal.Decimal, note string, paidAt, now time.Time) (Payment, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return Payment{}, ErrPaymentNotPositive
	}
	if paidAt.IsZero() {
		paidAt = now
	}
	return Payment{
		ID:            uuid.New().String(),
		InstallmentID: installmentID,
		Amount:        amount,
		Note:          note,
		PaidAt:        paidAt,
		CreatedAt:     now,
	}, nil
}
