package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/application/usecase"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/model"
)

func TestNextInstallment_Execute(t *testing.T) {
	now := time.Now().UTC()

	t.Run("returns the oldest payable installment", func(t *testing.T) {
		loan := twoInstallmentLoan(now)
		loans := &mockLoanRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Loan, error) {
				return loan, nil
			},
		}

		uc := usecase.NewNextInstallmentUseCase(loans)
		resp, err := uc.Execute(context.Background(), "loan-1")

		require.NoError(t, err)
		assert.Equal(t, "ins-1", resp.InstallmentID)
		assert.Equal(t, 1, resp.Number)
		assert.True(t, decimal.NewFromInt(250).Equal(resp.SuggestedAmount))
	})

	t.Run("skips paid installments", func(t *testing.T) {
		loan := twoInstallmentLoan(now)
		paid, err := loan.ApplyPayment("ins-1", decimal.NewFromInt(250), now)
		require.NoError(t, err)

		loans := &mockLoanRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Loan, error) {
				return paid, nil
			},
		}

		uc := usecase.NewNextInstallmentUseCase(loans)
		resp, err := uc.Execute(context.Background(), "loan-1")

		require.NoError(t, err)
		assert.Equal(t, "ins-2", resp.InstallmentID)
	})

	t.Run("suggests the remaining balance after a partial payment", func(t *testing.T) {
		loan := twoInstallmentLoan(now)
		partial, err := loan.ApplyPayment("ins-1", decimal.NewFromInt(100), now)
		require.NoError(t, err)

		loans := &mockLoanRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Loan, error) {
				return partial, nil
			},
		}

		uc := usecase.NewNextInstallmentUseCase(loans)
		resp, err := uc.Execute(context.Background(), "loan-1")

		require.NoError(t, err)
		assert.Equal(t, "ins-1", resp.InstallmentID)
		assert.Equal(t, "PARTIAL", resp.Status)
		assert.True(t, decimal.NewFromInt(150).Equal(resp.SuggestedAmount))
	})

	t.Run("fails on a canceled loan", func(t *testing.T) {
		loan := twoInstallmentLoan(now)
		canceled, err := loan.Cancel(now)
		require.NoError(t, err)

		loans := &mockLoanRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Loan, error) {
				return canceled, nil
			},
		}

		uc := usecase.NewNextInstallmentUseCase(loans)
		_, err = uc.Execute(context.Background(), "loan-1")
		require.ErrorIs(t, err, model.ErrLoanClosed)
	})
}
