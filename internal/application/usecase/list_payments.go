package usecase

import (
	"context"
	"fmt"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/application/dto"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/port"
)

// ListPaymentsUseCase serves payment history queries: per loan, or a general
// paginated listing with free-text search.
type ListPaymentsUseCase struct {
	loans    port.LoanRepository
	payments port.PaymentRepository
}

// NewListPaymentsUseCase wires dependencies.
func NewListPaymentsUseCase(loans port.LoanRepository, payments port.PaymentRepository) *ListPaymentsUseCase {
	return &ListPaymentsUseCase{loans: loans, payments: payments}
}

// ByLoan lists a loan's payments, most recent first.
func (uc *ListPaymentsUseCase) ByLoan(ctx context.Context, loanID string) ([]dto.PaymentResponse, error) {
	if _, err := uc.loans.FindByID(ctx, loanID); err != nil {
		return nil, fmt.Errorf("find loan: %w", err)
	}

	payments, err := uc.payments.FindByLoanID(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	out := make([]dto.PaymentResponse, len(payments))
	for i, p := range payments {
		out[i] = toPaymentResponse(p)
	}
	return out, nil
}

// General returns one page of payments across all loans. The query matches
// payment notes and the owning client's name or national ID.
func (uc *ListPaymentsUseCase) General(ctx context.Context, filter port.PaymentFilter) (dto.Page[dto.PaymentResponse], error) {
	filter.Page, filter.PageSize = clampPaging(filter.Page, filter.PageSize, 10)

	payments, total, err := uc.payments.List(ctx, filter)
	if err != nil {
		return dto.Page[dto.PaymentResponse]{}, fmt.Errorf("list payments: %w", err)
	}

	data := make([]dto.PaymentResponse, len(payments))
	for i, p := range payments {
		data[i] = toPaymentResponse(p)
	}
	return dto.NewPage(data, total, filter.Page, filter.PageSize), nil
}
