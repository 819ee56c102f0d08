package usecase

import (
	"context"
	"fmt"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/application/dto"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/port"
)

// ListInstallmentsUseCase powers the collection tray: installments filtered
// by status, overdue flag, due date, client or loan.
type ListInstallmentsUseCase struct {
	installments port.InstallmentRepository
}

// NewListInstallmentsUseCase wires dependencies.
func NewListInstallmentsUseCase(installments port.InstallmentRepository) *ListInstallmentsUseCase {
	return &ListInstallmentsUseCase{installments: installments}
}

// Execute returns one page of installments matching the filter.
func (uc *ListInstallmentsUseCase) Execute(ctx context.Context, filter port.InstallmentFilter) (dto.Page[dto.InstallmentResponse], error) {
	filter.Page, filter.PageSize = clampPaging(filter.Page, filter.PageSize, 20)

	installments, total, err := uc.installments.List(ctx, filter)
	if err != nil {
		return dto.Page[dto.InstallmentResponse]{}, fmt.Errorf("list installments: %w", err)
	}

	data := make([]dto.InstallmentResponse, len(installments))
	for i, ins := range installments {
		data[i] = toInstallmentResponse(ins)
	}
	return dto.NewPage(data, total, filter.Page, filter.PageSize), nil
}
