package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/model"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/valueobject"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildSchedule(t *testing.T) {
	t.Run("computes a daily plan", func(t *testing.T) {
		sched, err := model.BuildSchedule(
			decimal.NewFromInt(1000), decimal.NewFromInt(250),
			5, date(2025, time.January, 1), valueobject.FrequencyDaily,
		)
		require.NoError(t, err)

		assert.True(t, decimal.NewFromInt(1250).Equal(sched.TotalPayable))
		assert.True(t, decimal.NewFromInt(250).Equal(sched.TotalInterest))
		assert.True(t, decimal.NewFromInt(25).Equal(sched.InterestRatePct))
		assert.Equal(t, date(2025, time.January, 6), sched.CompletionDate)

		require.Len(t, sched.Entries, 5)
		for i, entry := range sched.Entries {
			assert.Equal(t, i+1, entry.Number)
			assert.Equal(t, date(2025, time.January, 2+i), entry.DueDate)
			assert.True(t, decimal.NewFromInt(250).Equal(entry.Amount))
		}
		// Outstanding walks down from total payable to the last installment.
		assert.True(t, decimal.NewFromInt(1250).Equal(sched.Entries[0].OutstandingBefore))
		assert.True(t, decimal.NewFromInt(250).Equal(sched.Entries[4].OutstandingBefore))
	})

	t.Run("installments sum to total payable", func(t *testing.T) {
		sched, err := model.BuildSchedule(
			decimal.NewFromInt(900), decimal.RequireFromString("333.33"),
			3, date(2025, time.March, 15), valueobject.FrequencyMonthly,
		)
		require.NoError(t, err)

		sum := decimal.Zero
		for _, entry := range sched.Entries {
			sum = sum.Add(entry.Amount)
		}
		assert.True(t, sum.Equal(sched.TotalPayable))
		assert.True(t, sched.TotalInterest.Equal(sched.TotalPayable.Sub(decimal.NewFromInt(900))))
	})

	t.Run("rounds the informative rate to two decimals", func(t *testing.T) {
		// 3 x 350 = 1050 against 1000: 5% exactly; against 900: 16.67%.
		sched, err := model.BuildSchedule(
			decimal.NewFromInt(900), decimal.NewFromInt(350),
			3, date(2025, time.January, 1), valueobject.FrequencyDaily,
		)
		require.NoError(t, err)
		assert.Equal(t, "16.67", sched.InterestRatePct.StringFixed(2))
	})

	t.Run("biweekly periods span fifteen days", func(t *testing.T) {
		sched, err := model.BuildSchedule(
			decimal.NewFromInt(100), decimal.NewFromInt(60),
			2, date(2025, time.January, 1), valueobject.FrequencyBiweekly,
		)
		require.NoError(t, err)
		assert.Equal(t, date(2025, time.January, 16), sched.Entries[0].DueDate)
		assert.Equal(t, date(2025, time.January, 31), sched.Entries[1].DueDate)
	})

	t.Run("monthly due dates clamp to the end of short months", func(t *testing.T) {
		sched, err := model.BuildSchedule(
			decimal.NewFromInt(100), decimal.NewFromInt(40),
			3, date(2025, time.January, 31), valueobject.FrequencyMonthly,
		)
		require.NoError(t, err)
		assert.Equal(t, date(2025, time.February, 28), sched.Entries[0].DueDate)
		assert.Equal(t, date(2025, time.March, 31), sched.Entries[1].DueDate)
		assert.Equal(t, date(2025, time.April, 30), sched.Entries[2].DueDate)
	})

	t.Run("leap February keeps the 29th", func(t *testing.T) {
		got := model.AddPeriod(date(2024, time.January, 31), valueobject.FrequencyMonthly, 1)
		assert.Equal(t, date(2024, time.February, 29), got)
	})

	t.Run("yearly periods add whole years", func(t *testing.T) {
		got := model.AddPeriod(date(2025, time.June, 10), valueobject.FrequencyYearly, 2)
		assert.Equal(t, date(2027, time.June, 10), got)
	})

	t.Run("due dates are strictly increasing", func(t *testing.T) {
		for _, freq := range []valueobject.Frequency{
			valueobject.FrequencyDaily, valueobject.FrequencyBiweekly,
			valueobject.FrequencyMonthly, valueobject.FrequencyYearly,
		} {
			sched, err := model.BuildSchedule(
				decimal.NewFromInt(100), decimal.NewFromInt(10),
				24, date(2025, time.January, 31), freq,
			)
			require.NoError(t, err)
			for i := 1; i < len(sched.Entries); i++ {
				assert.True(t, sched.Entries[i].DueDate.After(sched.Entries[i-1].DueDate),
					"%s entry %d not after entry %d", freq, i+1, i)
			}
		}
	})

	t.Run("validation", func(t *testing.T) {
		start := date(2025, time.January, 1)
		cases := []struct {
			name             string
			principal        decimal.Decimal
			fixedInstallment decimal.Decimal
			count            int
			start            time.Time
			frequency        valueobject.Frequency
			wantErr          error
		}{
			{"zero principal", decimal.Zero, decimal.NewFromInt(10), 5, start, valueobject.FrequencyDaily, model.ErrPrincipalNotPositive},
			{"negative installment", decimal.NewFromInt(100), decimal.NewFromInt(-1), 5, start, valueobject.FrequencyDaily, model.ErrInstallmentNotPositive},
			{"zero count", decimal.NewFromInt(100), decimal.NewFromInt(10), 0, start, valueobject.FrequencyDaily, model.ErrCountNotPositive},
			{"missing start date", decimal.NewFromInt(100), decimal.NewFromInt(30), 5, time.Time{}, valueobject.FrequencyDaily, model.ErrStartDateRequired},
			{"missing frequency", decimal.NewFromInt(100), decimal.NewFromInt(30), 5, start, valueobject.Frequency{}, model.ErrFrequencyRequired},
			{"negative interest", decimal.NewFromInt(2000), decimal.NewFromInt(250), 5, start, valueobject.FrequencyDaily, model.ErrNegativeInterest},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := model.BuildSchedule(tc.principal, tc.fixedInstallment, tc.count, tc.start, tc.frequency)
				assert.ErrorIs(t, err, tc.wantErr)
			})
		}
	})

	t.Run("zero interest is allowed", func(t *testing.T) {
		sched, err := model.BuildSchedule(
			decimal.NewFromInt(1000), decimal.NewFromInt(200),
			5, date(2025, time.January, 1), valueobject.FrequencyDaily,
		)
		require.NoError(t, err)
		assert.True(t, sched.TotalInterest.IsZero())
		assert.True(t, sched.InterestRatePct.IsZero())
	})
}
