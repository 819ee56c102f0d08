package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/port"
)

// ErrClientHasOpenLoans blocks deletion of a borrower with outstanding debt.
var ErrClientHasOpenLoans = errors.New("client has open loans and cannot be deleted")

// DeleteClientUseCase removes a borrower from the directory. Deletion is
// blocked while any owned loan is still open (ACTIVE or LATE).
type DeleteClientUseCase struct {
	clients port.ClientRepository
	loans   port.LoanRepository
}

// NewDeleteClientUseCase wires dependencies.
func NewDeleteClientUseCase(clients port.ClientRepository, loans port.LoanRepository) *DeleteClientUseCase {
	return &DeleteClientUseCase{clients: clients, loans: loans}
}

// Execute deletes the client when no open loan remains.
func (uc *DeleteClientUseCase) Execute(ctx context.Context, id string) error {
	if _, err := uc.clients.FindByID(ctx, id); err != nil {
		return fmt.Errorf("find client: %w", err)
	}

	open, err := uc.loans.HasOpenLoans(ctx, id)
	if err != nil {
		return fmt.Errorf("check loans: %w", err)
	}
	if open {
		return ErrClientHasOpenLoans
	}

	if err := uc.clients.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}
