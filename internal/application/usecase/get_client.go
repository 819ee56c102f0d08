package usecase

import (
	"context"
	"fmt"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/application/dto"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/port"
)

// GetClientUseCase retrieves one client.
type GetClientUseCase struct {
	clients port.ClientRepository
}

// NewGetClientUseCase wires dependencies.
func NewGetClientUseCase(clients port.ClientRepository) *GetClientUseCase {
	return &GetClientUseCase{clients: clients}
}

// Execute loads the client by ID.
func (uc *GetClientUseCase) Execute(ctx context.Context, id string) (dto.ClientResponse, error) {
	client, err := uc.clients.FindByID(ctx, id)
	if err != nil {
		return dto.ClientResponse{}, fmt.Errorf("find client: %w", err)
	}
	return toClientResponse(client), nil
}
