package rest

import (
	"log/slog"
	"net/http"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/application/usecase"
)

// DashboardHandler serves the back-office KPI endpoint.
type DashboardHandler struct {
	dashboard *usecase.DashboardUseCase
	logger    *slog.Logger
}

// NewDashboardHandler creates the dashboard handler.
func NewDashboardHandler(dashboard *usecase.DashboardUseCase, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, logger: logger}
}

// KPIs handles GET /api/dashboard.
func (h *DashboardHandler) KPIs(w http.ResponseWriter, r *http.Request) {
	kpis, err := h.dashboard.Execute(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, kpis)
}
