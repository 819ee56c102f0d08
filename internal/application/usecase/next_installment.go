package usecase

import (
	"context"
	"fmt"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/application/dto"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/port"
)

// NextInstallmentUseCase returns the oldest payable installment of a loan and
// the exact amount a collector should charge (the installment's remaining
// balance).
type NextInstallmentUseCase struct {
	loans port.LoanRepository
}

// NewNextInstallmentUseCase wires dependencies.
func NewNextInstallmentUseCase(loans port.LoanRepository) *NextInstallmentUseCase {
	return &NextInstallmentUseCase{loans: loans}
}

// Execute resolves the next collectible installment for the loan.
func (uc *NextInstallmentUseCase) Execute(ctx context.Context, loanID string) (dto.NextInstallmentResponse, error) {
	loan, err := uc.loans.FindByID(ctx, loanID)
	if err != nil {
		return dto.NextInstallmentResponse{}, fmt.Errorf("find loan: %w", err)
	}

	ins, err := loan.NextPayable()
	if err != nil {
		return dto.NextInstallmentResponse{}, fmt.Errorf("resolve installment: %w", err)
	}

	return dto.NextInstallmentResponse{
		LoanID:          loan.ID(),
		InstallmentID:   ins.ID,
		Number:          ins.Number,
		DueDate:         ins.DueDate,
		Amount:          ins.Amount,
		Balance:         ins.Balance,
		Status:          ins.Status.String(),
		SuggestedAmount: ins.Balance,
	}, nil
}
