package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/application/dto"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/model"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/port"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/valueobject"
)

// IssueLoanUseCase materialises a repayment schedule from the requested loan
// terms and persists the loan with its full installment set atomically.
type IssueLoanUseCase struct {
	uow       port.UnitOfWork
	publisher port.EventPublisher
}

// NewIssueLoanUseCase wires dependencies.
func NewIssueLoanUseCase(uow port.UnitOfWork, publisher port.EventPublisher) *IssueLoanUseCase {
	return &IssueLoanUseCase{uow: uow, publisher: publisher}
}

// Execute issues a loan for an existing client.
func (uc *IssueLoanUseCase) Execute(ctx context.Context, req dto.IssueLoanRequest) (dto.LoanResponse, error) {
	now := time.Now().UTC()

	frequency, err := valueobject.NewFrequency(req.Frequency)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("parse frequency: %w", err)
	}

	// Pure schedule computation; every validation failure here is a
	// caller-fixable input error.
	schedule, err := model.BuildSchedule(
		req.Principal, req.FixedInstallment,
		req.InstallmentCount, req.StartDate, frequency,
	)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("build schedule: %w", err)
	}

	var loan model.Loan
	err = uc.uow.Execute(ctx, func(ctx context.Context, tx port.TxRepositories) error {
		if _, err := tx.Clients().FindByID(ctx, req.ClientID); err != nil {
			return fmt.Errorf("find client: %w", err)
		}

		issued, err := model.IssueLoan(req.ClientID, schedule, now)
		if err != nil {
			return fmt.Errorf("issue loan: %w", err)
		}
		if err := tx.Loans().Save(ctx, issued); err != nil {
			return fmt.Errorf("save loan: %w", err)
		}

		loan = issued
		return nil
	})
	if err != nil {
		return dto.LoanResponse{}, err
	}

	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toLoanResponse(loan, true), nil
}
