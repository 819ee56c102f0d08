package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/application/dto"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/model"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/port"
)

// CreateClientUseCase registers a borrower. National IDs are unique across
// the directory.
type CreateClientUseCase struct {
	clients port.ClientRepository
}

// NewCreateClientUseCase wires dependencies.
func NewCreateClientUseCase(clients port.ClientRepository) *CreateClientUseCase {
	return &CreateClientUseCase{clients: clients}
}

// Execute creates the client.
func (uc *CreateClientUseCase) Execute(ctx context.Context, req dto.ClientRequest) (dto.ClientResponse, error) {
	now := time.Now().UTC()

	client, err := model.NewClient(req.FirstName, req.LastName, req.NationalID, req.Phone, req.Address, now)
	if err != nil {
		return dto.ClientResponse{}, fmt.Errorf("create client: %w", err)
	}

	if client.NationalID != "" {
		_, err := uc.clients.FindByNationalID(ctx, client.NationalID)
		switch {
		case err == nil:
			return dto.ClientResponse{}, port.ErrDuplicateNationalID
		case !errors.Is(err, port.ErrNotFound):
			return dto.ClientResponse{}, fmt.Errorf("check national ID: %w", err)
		}
	}

	if err := uc.clients.Save(ctx, client); err != nil {
		return dto.ClientResponse{}, fmt.Errorf("save client: %w", err)
	}
	return toClientResponse(client), nil
}
