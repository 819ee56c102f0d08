package rest

import (
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/application/dto"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/application/usecase"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/port"
)

// PaymentHandler serves payment registration and the general payment listing.
type PaymentHandler struct {
	register *usecase.RegisterPaymentUseCase
	list     *usecase.ListPaymentsUseCase
	logger   *slog.Logger
}

// NewPaymentHandler creates the payment handler.
func NewPaymentHandler(
	register *usecase.RegisterPaymentUseCase,
	list *usecase.ListPaymentsUseCase,
	logger *slog.Logger,
) *PaymentHandler {
	return &PaymentHandler{register: register, list: list, logger: logger}
}

// registerPaymentBody is the wire form of a payment. Exactly one of
// installment_id or loan_id must be set; a missing amount collects the
// target's full remaining balance.
type registerPaymentBody struct {
	InstallmentID string `json:"installment_id"`
	LoanID        string `json:"loan_id"`
	Amount        string `json:"amount"`
	PaidAt        string `json:"paid_at"`
	Note          string `json:"note"`
}

// Register handles POST /api/payments.
func (h *PaymentHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body registerPaymentBody
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}

	var amount *decimal.Decimal
	if body.Amount != "" {
		d, err := parseDecimal("payment", body.Amount)
		if err != nil {
			respondError(w, h.logger, err)
			return
		}
		amount = &d
	}
	paidAt, err := parseDate(body.PaidAt)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	resp, err := h.register.Execute(r.Context(), dto.RegisterPaymentRequest{
		InstallmentID: body.InstallmentID,
		LoanID:        body.LoanID,
		Amount:        amount,
		PaidAt:        paidAt,
		Note:          body.Note,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, resp)
}

// List handles GET /api/payments with an optional free-text query matching
// the note, client name or national ID.
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := port.PaymentFilter{
		Query:    r.URL.Query().Get("q"),
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "page_size", 0),
	}
	resp, err := h.list.General(r.Context(), filter)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}
