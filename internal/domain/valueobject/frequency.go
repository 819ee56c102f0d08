package valueobject

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// Frequency – immutable value object
// ---------------------------------------------------------------------------

// Frequency is the periodic interval between installment due dates.
type Frequency struct {
	value string
}

const (
	frequencyDaily    = "DAILY"
	frequencyBiweekly = "BIWEEKLY"
	frequencyMonthly  = "MONTHLY"
	frequencyYearly   = "YEARLY"
)

var (
	FrequencyDaily    = Frequency{value: frequencyDaily}
	FrequencyBiweekly = Frequency{value: frequencyBiweekly}
	FrequencyMonthly  = Frequency{value: frequencyMonthly}
	FrequencyYearly   = Frequency{value: frequencyYearly}
)

var validFrequencies = map[string]Frequency{
	frequencyDaily:    FrequencyDaily,
	frequencyBiweekly: FrequencyBiweekly,
	frequencyMonthly:  FrequencyMonthly,
	frequencyYearly:   FrequencyYearly,
}

// ErrInvalidFrequency is returned for a frequency outside the supported set.
var ErrInvalidFrequency = errors.New("invalid repayment frequency")

// NewFrequency creates a Frequency from a raw string.
func NewFrequency(s string) (Frequency, error) {
	v, ok := validFrequencies[s]
	if !ok {
		return Frequency{}, fmt.Errorf("%w: %q", ErrInvalidFrequency, s)
	}
	return v, nil
}

// String returns the string representation of the frequency.
func (f Frequency) String() string { return f.value }

// IsZero returns true if the frequency has not been initialised.
func (f Frequency) IsZero() bool { return f.value == "" }

// Equal returns true when both frequencies carry the same value.
func (f Frequency) Equal(other Frequency) bool { return f.value == other.value }
