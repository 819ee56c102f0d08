package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/event"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Loan aggregate root
// ---------------------------------------------------------------------------

var (
	ErrClientRequired         = errors.New("client ID is required")
	ErrLoanClosed             = errors.New("loan is closed and does not accept payments")
	ErrInstallmentNotFound    = errors.New("installment does not belong to this loan")
	ErrNoPayableInstallment   = errors.New("loan has no payable installment remaining")
	ErrLoanAlreadyPaid        = errors.New("a fully paid loan cannot be canceled")
	ErrLoanAlreadyCanceled    = errors.New("loan is already canceled")
)

// Loan is an immutable aggregate. Mutations return a new copy. A loan owns
// its installments exclusively; they are created in bulk at issuance and
// never deleted (append-only financial record).
type Loan struct {
	id               string
	clientID         string
	principal        decimal.Decimal
	fixedInstallment decimal.Decimal
	interestRatePct  decimal.Decimal
	totalInterest    decimal.Decimal
	totalPayable     decimal.Decimal
	frequency        valueobject.Frequency
	installmentCount int
	startDate        time.Time
	completionDate   time.Time
	status           valueobject.LoanStatus
	installments     []Installment
	version          int
	createdAt        time.Time
	updatedAt        time.Time
	domainEvents     []event.DomainEvent
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// IssueLoan materialises a loan from a computed schedule. Every installment
// starts with its balance equal to the scheduled amount, status PENDING. The
// loan starts ACTIVE.
func IssueLoan(clientID string, sched Schedule, now time.Time) (Loan, error) {
	if clientID == "" {
		return Loan{}, ErrClientRequired
	}
	if len(sched.Entries) == 0 {
		return Loan{}, ErrCountNotPositive
	}

	id := uuid.New().String()
	installments := make([]Installment, 0, len(sched.Entries))
	for _, entry := range sched.Entries {
		installments = append(installments, Installment{
			ID:        uuid.New().String(),
			LoanID:    id,
			Number:    entry.Number,
			DueDate:   entry.DueDate,
			Amount:    entry.Amount,
			Balance:   entry.Amount,
			Status:    valueobject.InstallmentStatusPending,
			Version:   1,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	loan := Loan{
		id:               id,
		clientID:         clientID,
		principal:        sched.Principal,
		fixedInstallment: sched.FixedInstallment,
		interestRatePct:  sched.InterestRatePct,
		totalInterest:    sched.TotalInterest,
		totalPayable:     sched.TotalPayable,
		frequency:        sched.Frequency,
		installmentCount: sched.InstallmentCount,
		startDate:        sched.StartDate,
		completionDate:   sched.CompletionDate,
		status:           valueobject.LoanStatusActive,
		installments:     installments,
		version:          1,
		createdAt:        now,
		updatedAt:        now,
	}

	loan.domainEvents = append(loan.domainEvents, event.NewLoanIssued(
		id, clientID, sched.Principal, sched.TotalPayable,
		sched.Frequency.String(), sched.InstallmentCount, sched.CompletionDate, now,
	))

	return loan, nil
}

// ReconstructLoan rebuilds a Loan aggregate from persistence.
func ReconstructLoan(
	id, clientID string,
	principal, fixedInstallment, interestRatePct, totalInterest, totalPayable decimal.Decimal,
	frequency valueobject.Frequency,
	installmentCount int,
	startDate, completionDate time.Time,
	status valueobject.LoanStatus,
	installments []Installment,
	version int,
	createdAt, updatedAt time.Time,
) Loan {
	return Loan{
		id:               id,
		clientID:         clientID,
		principal:        principal,
		fixedInstallment: fixedInstallment,
		interestRatePct:  interestRatePct,
		totalInterest:    totalInterest,
		totalPayable:     totalPayable,
		frequency:        frequency,
		installmentCount: installmentCount,
		startDate:        startDate,
		completionDate:   completionDate,
		status:           status,
		installments:     installments,
		version:          version,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// ---------------------------------------------------------------------------
// Status derivation
// ---------------------------------------------------------------------------

// LoanStatusFor derives a loan's status from the full set of its
// installments. Pure and idempotent:
//
//   - every installment PAID            -> PAID
//   - any LATE, or any unpaid past due  -> LATE
//   - otherwise                         -> ACTIVE
func LoanStatusFor(installments []Installment, now time.Time) valueobject.LoanStatus {
	allPaid := true
	anyLate := false
	for _, ins := range installments {
		if !ins.Status.Equal(valueobject.InstallmentStatusPaid) {
			allPaid = false
			if ins.Status.Equal(valueobject.InstallmentStatusLate) || ins.DueDate.Before(now) {
				anyLate = true
			}
		}
	}
	switch {
	case allPaid:
		return valueobject.LoanStatusPaid
	case anyLate:
		return valueobject.LoanStatusLate
	default:
		return valueobject.LoanStatusActive
	}
}

// ---------------------------------------------------------------------------
// State transitions
// ---------------------------------------------------------------------------

// ApplyPayment applies a payment to one of the loan's installments and
// re-derives the loan status from the updated installment set. The whole
// transition happens on the copy; callers persist installment, payment and
// loan status together or not at all.
func (l Loan) ApplyPayment(installmentID string, amount decimal.Decimal, now time.Time) (Loan, error) {
	if l.status.IsClosed() {
		return l, fmt.Errorf("%w: status %s", ErrLoanClosed, l.status)
	}

	idx := -1
	for i, ins := range l.installments {
		if ins.ID == installmentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return l, ErrInstallmentNotFound
	}

	updated, err := l.installments[idx].ApplyPayment(amount, now)
	if err != nil {
		return l, err
	}

	next := l
	next.installments = make([]Installment, len(l.installments))
	copy(next.installments, l.installments)
	next.installments[idx] = updated
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewPaymentApplied(
		l.id, updated.ID, updated.Number, amount, updated.Balance, now,
	))

	// Re-derive the aggregate status every time; writing it is conditional
	// but the comparison self-heals a stale value.
	derived := LoanStatusFor(next.installments, now)
	if !derived.Equal(l.status) {
		next.status = derived
		switch {
		case derived.Equal(valueobject.LoanStatusPaid):
			next.domainEvents = append(next.domainEvents, event.NewLoanPaidOff(l.id, l.clientID, now))
		case derived.Equal(valueobject.LoanStatusLate):
			next.domainEvents = append(next.domainEvents, event.NewLoanLate(l.id, l.clientID, now))
		}
	}

	return next, nil
}

// NextPayable returns the oldest payable installment: status in
// {PENDING, PARTIAL, LATE}, ordered by due date then sequence number. This is
// the sole tie-break rule for ambiguous payment targets.
func (l Loan) NextPayable() (Installment, error) {
	if l.status.IsClosed() {
		return Installment{}, fmt.Errorf("%w: status %s", ErrLoanClosed, l.status)
	}

	var best *Installment
	for i := range l.installments {
		ins := &l.installments[i]
		if !ins.Status.IsPayable() {
			continue
		}
		if best == nil ||
			ins.DueDate.Before(best.DueDate) ||
			(ins.DueDate.Equal(best.DueDate) && ins.Number < best.Number) {
			best = ins
		}
	}
	if best == nil {
		return Installment{}, ErrNoPayableInstallment
	}
	return *best, nil
}

// Cancel marks the loan CANCELED. A fully paid loan stays PAID.
func (l Loan) Cancel(now time.Time) (Loan, error) {
	if l.status.Equal(valueobject.LoanStatusPaid) {
		return l, ErrLoanAlreadyPaid
	}
	if l.status.Equal(valueobject.LoanStatusCanceled) {
		return l, ErrLoanAlreadyCanceled
	}
	next := l
	next.status = valueobject.LoanStatusCanceled
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanCanceled(l.id, l.clientID, now))
	return next, nil
}

// ---------------------------------------------------------------------------
// Balance summary
// ---------------------------------------------------------------------------

// BalanceSummary aggregates the collectible state of the loan.
type BalanceSummary struct {
	Outstanding         decimal.Decimal
	Overdue             decimal.Decimal
	NextDueDate         time.Time
	PendingInstallments int
	OverdueInstallments int
}

// Balance computes the loan's outstanding and overdue totals as of now.
func (l Loan) Balance(now time.Time) BalanceSummary {
	summary := BalanceSummary{
		Outstanding: decimal.Zero,
		Overdue:     decimal.Zero,
	}
	for _, ins := range l.installments {
		summary.Outstanding = summary.Outstanding.Add(ins.Balance)
		paid := ins.Status.Equal(valueobject.InstallmentStatusPaid)
		if !paid {
			summary.PendingInstallments++
			if summary.NextDueDate.IsZero() || ins.DueDate.Before(summary.NextDueDate) {
				summary.NextDueDate = ins.DueDate
			}
		}
		if ins.Status.Equal(valueobject.InstallmentStatusLate) || (!paid && ins.DueDate.Before(now)) {
			summary.OverdueInstallments++
			summary.Overdue = summary.Overdue.Add(ins.Balance)
		}
	}
	return summary
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (l Loan) ID() string                         { return l.id }
func (l Loan) ClientID() string                   { return l.clientID }
func (l Loan) Principal() decimal.Decimal         { return l.principal }
func (l Loan) FixedInstallment() decimal.Decimal  { return l.fixedInstallment }
func (l Loan) InterestRatePct() decimal.Decimal   { return l.interestRatePct }
func (l Loan) TotalInterest() decimal.Decimal     { return l.totalInterest }
func (l Loan) TotalPayable() decimal.Decimal      { return l.totalPayable }
func (l Loan) Frequency() valueobject.Frequency   { return l.frequency }
func (l Loan) InstallmentCount() int              { return l.installmentCount }
func (l Loan) StartDate() time.Time               { return l.startDate }
func (l Loan) CompletionDate() time.Time          { return l.completionDate }
func (l Loan) Status() valueobject.LoanStatus     { return l.status }
func (l Loan) Version() int                       { return l.version }
func (l Loan) CreatedAt() time.Time               { return l.createdAt }
func (l Loan) UpdatedAt() time.Time               { return l.updatedAt }
func (l Loan) DomainEvents() []event.DomainEvent  { return l.domainEvents }

// Installments returns a defensive copy of the installment set, ordered as
// loaded (sequence number ascending).
func (l Loan) Installments() []Installment {
	if l.installments == nil {
		return nil
	}
	out := make([]Installment, len(l.installments))
	copy(out, l.installments)
	return out
}

// Installment returns the installment with the given ID.
func (l Loan) Installment(id string) (Installment, bool) {
	for _, ins := range l.installments {
		if ins.ID == id {
			return ins, true
		}
	}
	return Installment{}, false
}

// ClearEvents returns a copy with an empty event list.
func (l Loan) ClearEvents() Loan {
	next := l
	next.domainEvents = nil
	return next
}

func copyEvents(src []event.DomainEvent) []event.DomainEvent {
	if src == nil {
		return nil
	}
	out := make([]event.DomainEvent, len(src))
	copy(out, src)
	return out
}
