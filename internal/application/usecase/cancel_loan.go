package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/application/dto"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/event"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/port"
)

// CancelLoanUseCase marks a loan CANCELED. Canceled loans no longer accept
// payments; the loan and installment records stay (append-only).
type CancelLoanUseCase struct {
	uow       port.UnitOfWork
	publisher port.EventPublisher
}

// NewCancelLoanUseCase wires dependencies.
func NewCancelLoanUseCase(uow port.UnitOfWork, publisher port.EventPublisher) *CancelLoanUseCase {
	return &CancelLoanUseCase{uow: uow, publisher: publisher}
}

// Execute cancels the loan.
func (uc *CancelLoanUseCase) Execute(ctx context.Context, loanID string) (dto.LoanResponse, error) {
	now := time.Now().UTC()

	var (
		resp   dto.LoanResponse
		events []event.DomainEvent
	)
	err := uc.uow.Execute(ctx, func(ctx context.Context, tx port.TxRepositories) error {
		loan, err := tx.Loans().FindByID(ctx, loanID)
		if err != nil {
			return fmt.Errorf("find loan: %w", err)
		}

		canceled, err := loan.Cancel(now)
		if err != nil {
			return fmt.Errorf("cancel loan: %w", err)
		}
		if err := tx.Loans().Save(ctx, canceled); err != nil {
			return fmt.Errorf("save loan: %w", err)
		}

		events = canceled.DomainEvents()
		resp = toLoanResponse(canceled, false)
		return nil
	})
	if err != nil {
		return dto.LoanResponse{}, err
	}

	if err := uc.publisher.Publish(ctx, events...); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("publish events: %w", err)
	}
	return resp, nil
}
