package usecase

import (
	"context"
	"fmt"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/application/dto"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/port"
)

// ListClientsUseCase lists the borrower directory, newest first.
type ListClientsUseCase struct {
	clients port.ClientRepository
}

// NewListClientsUseCase wires dependencies.
func NewListClientsUseCase(clients port.ClientRepository) *ListClientsUseCase {
	return &ListClientsUseCase{clients: clients}
}

// Execute returns one page of clients.
func (uc *ListClientsUseCase) Execute(ctx context.Context, page, pageSize int) (dto.Page[dto.ClientResponse], error) {
	page, pageSize = clampPaging(page, pageSize, 10)

	clients, total, err := uc.clients.List(ctx, page, pageSize)
	if err != nil {
		return dto.Page[dto.ClientResponse]{}, fmt.Errorf("list clients: %w", err)
	}

	data := make([]dto.ClientResponse, len(clients))
	for i, c := range clients {
		data[i] = toClientResponse(c)
	}
	return dto.NewPage(data, total, page, pageSize), nil
}
