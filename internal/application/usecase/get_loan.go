package usecase

import (
	"context"
	"fmt"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/application/dto"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/port"
)

// GetLoanUseCase retrieves a loan with its client and payment history.
type GetLoanUseCase struct {
	loans    port.LoanRepository
	clients  port.ClientRepository
	payments port.PaymentRepository
}

// NewGetLoanUseCase wires dependencies.
func NewGetLoanUseCase(
	loans port.LoanRepository,
	clients port.ClientRepository,
	payments port.PaymentRepository,
) *GetLoanUseCase {
	return &GetLoanUseCase{loans: loans, clients: clients, payments: payments}
}

// Execute loads the loan detail.
func (uc *GetLoanUseCase) Execute(ctx context.Context, loanID string) (dto.LoanDetailResponse, error) {
	loan, err := uc.loans.FindByID(ctx, loanID)
	if err != nil {
		return dto.LoanDetailResponse{}, fmt.Errorf("find loan: %w", err)
	}

	client, err := uc.clients.FindByID(ctx, loan.ClientID())
	if err != nil {
		return dto.LoanDetailResponse{}, fmt.Errorf("find client: %w", err)
	}

	payments, err := uc.payments.FindByLoanID(ctx, loanID)
	if err != nil {
		return dto.LoanDetailResponse{}, fmt.Errorf("list payments: %w", err)
	}

	paymentResponses := make([]dto.PaymentResponse, len(payments))
	for i, p := range payments {
		paymentResponses[i] = toPaymentResponse(p)
	}

	return dto.LoanDetailResponse{
		Loan:     toLoanResponse(loan, true),
		Client:   toClientResponse(client),
		Payments: paymentResponses,
	}, nil
}
