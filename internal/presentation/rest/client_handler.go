package rest

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/application/dto"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/application/usecase"
)

// ClientHandler serves the client CRUD endpoints.
type ClientHandler struct {
	create *usecase.CreateClientUseCase
	update *usecase.UpdateClientUseCase
	delete *usecase.DeleteClientUseCase
	get    *usecase.GetClientUseCase
	list   *usecase.ListClientsUseCase
	logger *slog.Logger
}

// NewClientHandler creates the client handler.
func NewClientHandler(
	create *usecase.CreateClientUseCase,
	update *usecase.UpdateClientUseCase,
	del *usecase.DeleteClientUseCase,
	get *usecase.GetClientUseCase,
	list *usecase.ListClientsUseCase,
	logger *slog.Logger,
) *ClientHandler {
	return &ClientHandler{create: create, update: update, delete: del, get: get, list: list, logger: logger}
}

// Create handles POST /api/clients.
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.ClientRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}
	resp, err := h.create.Execute(r.Context(), req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, resp)
}

// Update handles PUT /api/clients/{id}.
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.ClientRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}
	resp, err := h.update.Execute(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// Delete handles DELETE /api/clients/{id}. Clients with open loans cannot be
// removed.
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.delete.Execute(r.Context(), mux.Vars(r)["id"]); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// Get handles GET /api/clients/{id}.
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.get.Execute(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// List handles GET /api/clients.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "page_size", 0)
	resp, err := h.list.Execute(r.Context(), page, pageSize)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}
