package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/application/dto"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/port"
)

// LoanBalanceUseCase summarises a loan's outstanding and overdue totals.
type LoanBalanceUseCase struct {
	loans port.LoanRepository
}

// NewLoanBalanceUseCase wires dependencies.
func NewLoanBalanceUseCase(loans port.LoanRepository) *LoanBalanceUseCase {
	return &LoanBalanceUseCase{loans: loans}
}

// Execute computes the balance summary as of now.
func (uc *LoanBalanceUseCase) Execute(ctx context.Context, loanID string) (dto.LoanBalanceResponse, error) {
	loan, err := uc.loans.FindByID(ctx, loanID)
	if err != nil {
		return dto.LoanBalanceResponse{}, fmt.Errorf("find loan: %w", err)
	}

	summary := loan.Balance(time.Now().UTC())

	resp := dto.LoanBalanceResponse{
		LoanID:              loan.ID(),
		Status:              loan.Status().String(),
		Outstanding:         summary.Outstanding,
		Overdue:             summary.Overdue,
		PendingInstallments: summary.PendingInstallments,
		OverdueInstallments: summary.OverdueInstallments,
	}
	if !summary.NextDueDate.IsZero() {
		next := summary.NextDueDate
		resp.NextDueDate = &next
	}
	return resp, nil
}
