package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Fixed-installment repayment plan ("Plan A")
// ---------------------------------------------------------------------------

// Schedule construction errors. Each one is a caller-fixable input error.
var (
	ErrPrincipalNotPositive   = errors.New("principal must be positive")
	ErrInstallmentNotPositive = errors.New("fixed installment must be positive")
	ErrCountNotPositive       = errors.New("installment count must be a positive integer")
	ErrStartDateRequired      = errors.New("start date is required")
	ErrFrequencyRequired      = errors.New("repayment frequency is required")
	ErrNegativeInterest       = errors.New("total payable is less than principal (negative interest)")
)

// ScheduleEntry is an immutable value object representing one installment in
// a repayment schedule. OutstandingBefore is the loan-level balance before
// that installment is paid, following financial-statement convention.
type ScheduleEntry struct {
	DueDate           time.Time
	Amount            decimal.Decimal
	OutstandingBefore decimal.Decimal
	Number            int
}

// Schedule is the full repayment plan derived from loan terms, including the
// totals the plan implies. The interest rate is informative only.
type Schedule struct {
	Principal        decimal.Decimal
	FixedInstallment decimal.Decimal
	TotalPayable     decimal.Decimal
	TotalInterest    decimal.Decimal
	InterestRatePct  decimal.Decimal
	StartDate        time.Time
	CompletionDate   time.Time
	Frequency        valueobject.Frequency
	InstallmentCount int
	Entries          []ScheduleEntry
}

// BuildSchedule computes a fixed-installment repayment schedule. Pure: no
// side effects, no clock reads.
//
// The plan implies its own cost of credit:
//
//	totalPayable  = fixedInstallment × installmentCount
//	totalInterest = totalPayable − principal   (must not be negative)
//	ratePct       = totalInterest / principal × 100, rounded to 2 dp
//
// Due dates are always computed fresh from the start date (AddPeriod with
// step i), never by iterating a running date, so repeated month additions
// cannot drift.
func BuildSchedule(
	principal, fixedInstallment decimal.Decimal,
	installmentCount int,
	startDate time.Time,
	frequency valueobject.Frequency,
) (Schedule, error) {
	if principal.LessThanOrEqual(decimal.Zero) {
		return Schedule{}, ErrPrincipalNotPositive
	}
	if fixedInstallment.LessThanOrEqual(decimal.Zero) {
		return Schedule{}, ErrInstallmentNotPositive
	}
	if installmentCount <= 0 {
		return Schedule{}, ErrCountNotPositive
	}
	if startDate.IsZero() {
		return Schedule{}, ErrStartDateRequired
	}
	if frequency.IsZero() {
		return Schedule{}, ErrFrequencyRequired
	}

	totalPayable := fixedInstallment.Mul(decimal.NewFromInt(int64(installmentCount)))
	totalInterest := totalPayable.Sub(principal)
	if totalInterest.IsNegative() {
		return Schedule{}, ErrNegativeInterest
	}

	ratePct := totalInterest.Div(principal).Mul(decimal.NewFromInt(100)).Round(2)

	entries := make([]ScheduleEntry, 0, installmentCount)
	outstanding := totalPayable
	for i := 1; i <= installmentCount; i++ {
		entries = append(entries, ScheduleEntry{
			Number:            i,
			DueDate:           AddPeriod(startDate, frequency, i),
			Amount:            fixedInstallment,
			OutstandingBefore: outstanding,
		})
		outstanding = outstanding.Sub(fixedInstallment)
	}

	return Schedule{
		Principal:        principal,
		FixedInstallment: fixedInstallment,
		TotalPayable:     totalPayable,
		TotalInterest:    totalInterest,
		InterestRatePct:  ratePct,
		StartDate:        startDate,
		CompletionDate:   entries[len(entries)-1].DueDate,
		Frequency:        frequency,
		InstallmentCount: installmentCount,
		Entries:          entries,
	}, nil
}

// AddPeriod advances date by steps periods of the given frequency, computed
// from the original date in one jump. Month and year stepping is calendar
// aware: a day past the end of the target month clamps to that month's last
// day (Jan 31 + 1 month = Feb 28, or Feb 29 in a leap year).
func AddPeriod(date time.Time, frequency valueobject.Frequency, steps int) time.Time {
	switch frequency {
	case valueobject.FrequencyDaily:
		return date.AddDate(0, 0, steps)
	case valueobject.FrequencyBiweekly:
		return date.AddDate(0, 0, 15*steps)
	case valueobject.FrequencyMonthly:
		return addMonths(date, steps)
	case valueobject.FrequencyYearly:
		return addMonths(date, 12*steps)
	}
	return date
}

func addMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	hour, min, sec := t.Clock()

	// Step from the first of the month so AddDate cannot overflow, then
	// clamp the day to the target month's length.
	first := time.Date(y, m, 1, hour, min, sec, t.Nanosecond(), t.Location())
	target := first.AddDate(0, months, 0)
	if last := daysIn(target.Year(), target.Month()); d > last {
		d = last
	}
	return time.Date(target.Year(), target.Month(), d, hour, min, sec, t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
