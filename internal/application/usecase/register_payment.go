package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/application/dto"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/event"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/model"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/port"
)

// ErrPaymentTargetRequired is returned when neither an installment ID nor a
// loan ID is supplied.
var ErrPaymentTargetRequired = errors.New("either installment ID or loan ID is required")

// RegisterPaymentUseCase applies a payment to an installment and re-derives
// the owning loan's status, all within one atomic unit of work. The payment
// record, the installment update and the conditional loan status update
// commit together or not at all.
type RegisterPaymentUseCase struct {
	uow       port.UnitOfWork
	publisher port.EventPublisher
}

// NewRegisterPaymentUseCase wires dependencies.
func NewRegisterPaymentUseCase(uow port.UnitOfWork, publisher port.EventPublisher) *RegisterPaymentUseCase {
	return &RegisterPaymentUseCase{uow: uow, publisher: publisher}
}

// Execute registers a payment. The target installment is either explicit or
// resolved as the loan's oldest payable installment; the amount defaults to
// that installment's exact remaining balance.
func (uc *RegisterPaymentUseCase) Execute(ctx context.Context, req dto.RegisterPaymentRequest) (dto.RegisterPaymentResponse, error) {
	now := time.Now().UTC()

	var (
		resp   dto.RegisterPaymentResponse
		events []event.DomainEvent
	)

	err := uc.uow.Execute(ctx, func(ctx context.Context, tx port.TxRepositories) error {
		target, err := resolveInstallment(ctx, tx, req)
		if err != nil {
			return err
		}

		// Fresh read of the full aggregate inside the transaction; the
		// loan status derivation needs every installment.
		loan, err := tx.Loans().FindByID(ctx, target.LoanID)
		if err != nil {
			return fmt.Errorf("find loan: %w", err)
		}

		amount := target.Balance
		if req.Amount != nil {
			amount = *req.Amount
		}

		updatedLoan, err := loan.ApplyPayment(target.ID, amount, now)
		if err != nil {
			return fmt.Errorf("apply payment: %w", err)
		}

		payment, err := model.NewPayment(target.ID, amount, req.Note, req.PaidAt, now)
		if err != nil {
			return fmt.Errorf("create payment: %w", err)
		}
		if err := tx.Payments().Save(ctx, payment); err != nil {
			return fmt.Errorf("save payment: %w", err)
		}

		updatedInstallment, ok := updatedLoan.Installment(target.ID)
		if !ok {
			return model.ErrInstallmentNotFound
		}
		if err := tx.Installments().Update(ctx, updatedInstallment); err != nil {
			return fmt.Errorf("update installment: %w", err)
		}

		// Write the loan row only when the derived status differs.
		if !updatedLoan.Status().Equal(loan.Status()) {
			if err := tx.Loans().Save(ctx, updatedLoan); err != nil {
				return fmt.Errorf("save loan: %w", err)
			}
		}

		events = updatedLoan.DomainEvents()
		resp = dto.RegisterPaymentResponse{
			Payment:     toPaymentResponse(payment),
			Installment: toInstallmentResponse(updatedInstallment),
			LoanID:      updatedLoan.ID(),
			LoanStatus:  updatedLoan.Status().String(),
		}
		return nil
	})
	if err != nil {
		return dto.RegisterPaymentResponse{}, err
	}

	if err := uc.publisher.Publish(ctx, events...); err != nil {
		return dto.RegisterPaymentResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return resp, nil
}

// resolveInstallment finds the payment target: an explicit installment, or
// the owning loan's oldest payable installment (due date ascending, then
// sequence number ascending).
func resolveInstallment(ctx context.Context, tx port.TxRepositories, req dto.RegisterPaymentRequest) (model.Installment, error) {
	switch {
	case req.InstallmentID != "":
		ins, err := tx.Installments().FindByID(ctx, req.InstallmentID)
		if err != nil {
			return model.Installment{}, fmt.Errorf("find installment: %w", err)
		}
		return ins, nil

	case req.LoanID != "":
		loan, err := tx.Loans().FindByID(ctx, req.LoanID)
		if err != nil {
			return model.Installment{}, fmt.Errorf("find loan: %w", err)
		}
		ins, err := loan.NextPayable()
		if err != nil {
			return model.Installment{}, fmt.Errorf("resolve installment: %w", err)
		}
		return ins, nil

	default:
		return model.Installment{}, ErrPaymentTargetRequired
	}
}
