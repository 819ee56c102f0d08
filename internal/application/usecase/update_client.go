package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/application/dto"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/model"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/port"
)

// UpdateClientUseCase edits a borrower's identity fields.
type UpdateClientUseCase struct {
	clients port.ClientRepository
}

// NewUpdateClientUseCase wires dependencies.
func NewUpdateClientUseCase(clients port.ClientRepository) *UpdateClientUseCase {
	return &UpdateClientUseCase{clients: clients}
}

// Execute applies the changes. A national ID change must not collide with
// another client.
func (uc *UpdateClientUseCase) Execute(ctx context.Context, id string, req dto.ClientRequest) (dto.ClientResponse, error) {
	client, err := uc.clients.FindByID(ctx, id)
	if err != nil {
		return dto.ClientResponse{}, fmt.Errorf("find client: %w", err)
	}

	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	if firstName == "" || lastName == "" {
		return dto.ClientResponse{}, model.ErrClientNameRequired
	}

	nationalID := strings.TrimSpace(req.NationalID)
	if nationalID != "" && nationalID != client.NationalID {
		existing, err := uc.clients.FindByNationalID(ctx, nationalID)
		switch {
		case err == nil && existing.ID != client.ID:
			return dto.ClientResponse{}, port.ErrDuplicateNationalID
		case err != nil && !errors.Is(err, port.ErrNotFound):
			return dto.ClientResponse{}, fmt.Errorf("check national ID: %w", err)
		}
	}

	client.FirstName = firstName
	client.LastName = lastName
	client.NationalID = nationalID
	client.Phone = strings.TrimSpace(req.Phone)
	client.Address = strings.TrimSpace(req.Address)
	client.UpdatedAt = time.Now().UTC()

	if err := uc.clients.Save(ctx, client); err != nil {
		return dto.ClientResponse{}, fmt.Errorf("save client: %w", err)
	}
	return toClientResponse(client), nil
}
