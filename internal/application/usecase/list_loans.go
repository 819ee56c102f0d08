package usecase

import (
	"context"
	"fmt"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/application/dto"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/port"
)

// ListLoansUseCase lists loans with optional status and client filters.
type ListLoansUseCase struct {
	loans port.LoanRepository
}

// NewListLoansUseCase wires dependencies.
func NewListLoansUseCase(loans port.LoanRepository) *ListLoansUseCase {
	return &ListLoansUseCase{loans: loans}
}

// Execute returns one page of loans. Installments are omitted from listings.
func (uc *ListLoansUseCase) Execute(ctx context.Context, filter port.LoanFilter) (dto.Page[dto.LoanResponse], error) {
	filter.Page, filter.PageSize = clampPaging(filter.Page, filter.PageSize, 10)

	loans, total, err := uc.loans.List(ctx, filter)
	if err != nil {
		return dto.Page[dto.LoanResponse]{}, fmt.Errorf("list loans: %w", err)
	}

	data := make([]dto.LoanResponse, len(loans))
	for i, loan := range loans {
		data[i] = toLoanResponse(loan, false)
	}
	return dto.NewPage(data, total, filter.Page, filter.PageSize), nil
}

// clampPaging normalises page/pageSize the way every listing endpoint does:
// page >= 1, 1 <= pageSize <= 100 with the given default.
func clampPaging(page, pageSize, defaultSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = defaultSize
	}
	return page, pageSize
}
