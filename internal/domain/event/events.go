package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// LoanIssued is raised when a loan and its installment set are created.
type LoanIssued struct {
	events.BaseEvent
	ClientID         string          `json:"client_id"`
	Principal        decimal.Decimal `json:"principal"`
	TotalPayable     decimal.Decimal `json:"total_payable"`
	Frequency        string          `json:"frequency"`
	InstallmentCount int             `json:"installment_count"`
	CompletionDate   time.Time       `json:"completion_date"`
}

func NewLoanIssued(
	loanID, clientID string,
	principal, totalPayable decimal.Decimal,
	frequency string, installmentCount int,
	completionDate, now time.Time,
) LoanIssued {
	return LoanIssued{
		BaseEvent:        events.NewBaseEvent("credit.loan.issued", loanID, "Loan", now),
		ClientID:         clientID,
		Principal:        principal,
		TotalPayable:     totalPayable,
		Frequency:        frequency,
		InstallmentCount: installmentCount,
		CompletionDate:   completionDate,
	}
}

// PaymentApplied is raised when a payment is applied to an installment.
type PaymentApplied struct {
	events.BaseEvent
	InstallmentID     string          `json:"installment_id"`
	InstallmentNumber int             `json:"installment_number"`
	Amount            decimal.Decimal `json:"amount"`
	RemainingBalance  decimal.Decimal `json:"remaining_balance"`
}

func NewPaymentApplied(
	loanID, installmentID string, installmentNumber int,
	amount, remainingBalance decimal.Decimal,
	now time.Time,
) PaymentApplied {
	return PaymentApplied{
		BaseEvent:         events.NewBaseEvent("credit.payment.applied", loanID, "Loan", now),
		InstallmentID:     installmentID,
		InstallmentNumber: installmentNumber,
		Amount:            amount,
		RemainingBalance:  remainingBalance,
	}
}

// LoanPaidOff is raised when every installment of a loan reaches PAID.
type LoanPaidOff struct {
	events.BaseEvent
	ClientID string `json:"client_id"`
}

func NewLoanPaidOff(loanID, clientID string, now time.Time) LoanPaidOff {
	return LoanPaidOff{
		BaseEvent: events.NewBaseEvent("credit.loan.paid_off", loanID, "Loan", now),
		ClientID:  clientID,
	}
}

// LoanLate is raised when a loan's derived status transitions to LATE.
type LoanLate struct {
	events.BaseEvent
	ClientID string `json:"client_id"`
}

func NewLoanLate(loanID, clientID string, now time.Time) LoanLate {
	return LoanLate{
		BaseEvent: events.NewBaseEvent("credit.loan.late", loanID, "Loan", now),
		ClientID:  clientID,
	}
}

// LoanCanceled is raised when a loan is administratively canceled.
type LoanCanceled struct {
	events.BaseEvent
	ClientID string `json:"client_id"`
}

func NewLoanCanceled(loanID, clientID string, now time.Time) LoanCanceled {
	return LoanCanceled{
		BaseEvent: events.NewBaseEvent("credit.loan.canceled", loanID, "Loan", now),
		ClientID:  clientID,
	}
}
