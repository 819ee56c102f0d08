package valueobject

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// LoanStatus – immutable value object
// ---------------------------------------------------------------------------

// LoanStatus represents the lifecycle stage of a loan. It is derived from the
// collective state of the loan's installments, except for CANCELED which is a
// terminal administrative state.
type LoanStatus struct {
	value string
}

const (
	loanStatusActive   = "ACTIVE"
	loanStatusPaid     = "PAID"
	loanStatusLate     = "LATE"
	loanStatusCanceled = "CANCELED"
)

var (
	LoanStatusActive   = LoanStatus{value: loanStatusActive}
	LoanStatusPaid     = LoanStatus{value: loanStatusPaid}
	LoanStatusLate     = LoanStatus{value: loanStatusLate}
	LoanStatusCanceled = LoanStatus{value: loanStatusCanceled}
)

var validLoanStatuses = map[string]LoanStatus{
	loanStatusActive:   LoanStatusActive,
	loanStatusPaid:     LoanStatusPaid,
	loanStatusLate:     LoanStatusLate,
	loanStatusCanceled: LoanStatusCanceled,
}

// NewLoanStatus creates a LoanStatus from a raw string.
func NewLoanStatus(s string) (LoanStatus, error) {
	v, ok := validLoanStatuses[s]
	if !ok {
		return LoanStatus{}, fmt.Errorf("invalid loan status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s LoanStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s LoanStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s LoanStatus) Equal(other LoanStatus) bool { return s.value == other.value }

// IsClosed reports whether the loan no longer accepts payments.
func (s LoanStatus) IsClosed() bool {
	return s.value == loanStatusPaid || s.value == loanStatusCanceled
}

// ---------------------------------------------------------------------------
// InstallmentStatus – immutable value object
// ---------------------------------------------------------------------------

// InstallmentStatus represents the payment state of a single installment.
// It is always a pure function of (balance, scheduled amount, due date, now),
// never remembered history.
type InstallmentStatus struct {
	value string
}

const (
	installmentStatusPending = "PENDING"
	installmentStatusPartial = "PARTIAL"
	installmentStatusPaid    = "PAID"
	installmentStatusLate    = "LATE"
)

var (
	InstallmentStatusPending = InstallmentStatus{value: installmentStatusPending}
	InstallmentStatusPartial = InstallmentStatus{value: installmentStatusPartial}
	InstallmentStatusPaid    = InstallmentStatus{value: installmentStatusPaid}
	InstallmentStatusLate    = InstallmentStatus{value: installmentStatusLate}
)

var validInstallmentStatuses = map[string]InstallmentStatus{
	installmentStatusPending: InstallmentStatusPending,
	installmentStatusPartial: InstallmentStatusPartial,
	installmentStatusPaid:    InstallmentStatusPaid,
	installmentStatusLate:    InstallmentStatusLate,
}

// NewInstallmentStatus creates an InstallmentStatus from a raw string.
func NewInstallmentStatus(s string) (InstallmentStatus, error) {
	v, ok := validInstallmentStatuses[s]
	if !ok {
		return InstallmentStatus{}, fmt.Errorf("invalid installment status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s InstallmentStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s InstallmentStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s InstallmentStatus) Equal(other InstallmentStatus) bool { return s.value == other.value }

// IsPayable reports whether the installment can still receive payments.
func (s InstallmentStatus) IsPayable() bool {
	switch s.value {
	case installmentStatusPending, installmentStatusPartial, installmentStatusLate:
		return true
	}
	return false
}

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
