package rest

import (
	"log/slog"
	"net/http"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/application/usecase"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/port"
)

// InstallmentHandler serves the operative installment listing used by the
// collections view.
type InstallmentHandler struct {
	list   *usecase.ListInstallmentsUseCase
	logger *slog.Logger
}

// NewInstallmentHandler creates the installment handler.
func NewInstallmentHandler(list *usecase.ListInstallmentsUseCase, logger *slog.Logger) *InstallmentHandler {
	return &InstallmentHandler{list: list, logger: logger}
}

// List handles GET /api/installments. Filters: status, overdue=true,
// due_on=YYYY-MM-DD, client_id, loan_id.
func (h *InstallmentHandler) List(w http.ResponseWriter, r *http.Request) {
	dueOn, err := parseDate(r.URL.Query().Get("due_on"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	filter := port.InstallmentFilter{
		Status:      r.URL.Query().Get("status"),
		OverdueOnly: r.URL.Query().Get("overdue") == "true",
		DueOn:       dueOn,
		ClientID:    r.URL.Query().Get("client_id"),
		LoanID:      r.URL.Query().Get("loan_id"),
		Page:        queryInt(r, "page", 1),
		PageSize:    queryInt(r, "page_size", 0),
	}
	resp, err := h.list.Execute(r.Context(), filter)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}
