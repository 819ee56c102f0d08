package rest

import (
	"log/slog"
	"net/http"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/application/dto"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/application/usecase"
)

// AuthHandler serves operator login.
type AuthHandler struct {
	login  *usecase.LoginUseCase
	logger *slog.Logger
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(login *usecase.LoginUseCase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{login: login, logger: logger}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	resp, err := h.login.Execute(r.Context(), req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}
