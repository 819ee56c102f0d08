package rest

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/application/dto"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/application/usecase"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/port"
)

// LoanHandler serves loan issuance, queries and cancellation.
type LoanHandler struct {
	issue    *usecase.IssueLoanUseCase
	get      *usecase.GetLoanUseCase
	list     *usecase.ListLoansUseCase
	cancel   *usecase.CancelLoanUseCase
	balance  *usecase.LoanBalanceUseCase
	next     *usecase.NextInstallmentUseCase
	payments *usecase.ListPaymentsUseCase
	logger   *slog.Logger
}

// NewLoanHandler creates the loan handler.
func NewLoanHandler(
	issue *usecase.IssueLoanUseCase,
	get *usecase.GetLoanUseCase,
	list *usecase.ListLoansUseCase,
	cancel *usecase.CancelLoanUseCase,
	balance *usecase.LoanBalanceUseCase,
	next *usecase.NextInstallmentUseCase,
	payments *usecase.ListPaymentsUseCase,
	logger *slog.Logger,
) *LoanHandler {
	return &LoanHandler{
		issue: issue, get: get, list: list, cancel: cancel,
		balance: balance, next: next, payments: payments, logger: logger,
	}
}

// issueLoanBody is the wire form of a loan issuance request. Monetary fields
// travel as strings to keep exact decimal semantics.
type issueLoanBody struct {
	ClientID         string `json:"client_id"`
	Principal        string `json:"principal"`
	FixedInstallment string `json:"fixed_installment"`
	InstallmentCount int    `json:"installment_count"`
	Frequency        string `json:"frequency"`
	StartDate        string `json:"start_date"`
}

// Issue handles POST /api/loans.
func (h *LoanHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var body issueLoanBody
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, h.logger, err)
		return
	}

	principal, err := parseDecimal("principal", body.Principal)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	fixedInstallment, err := parseDecimal("fixed_installment", body.FixedInstallment)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	startDate, err := parseDate(body.StartDate)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	resp, err := h.issue.Execute(r.Context(), dto.IssueLoanRequest{
		ClientID:         body.ClientID,
		Principal:        principal,
		FixedInstallment: fixedInstallment,
		InstallmentCount: body.InstallmentCount,
		Frequency:        body.Frequency,
		StartDate:        startDate,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, resp)
}

// Get handles GET /api/loans/{id}: loan, owning client and payment history.
func (h *LoanHandler) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.get.Execute(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// List handles GET /api/loans with optional status and client_id filters.
func (h *LoanHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := port.LoanFilter{
		Status:   r.URL.Query().Get("status"),
		ClientID: r.URL.Query().Get("client_id"),
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "page_size", 0),
	}
	resp, err := h.list.Execute(r.Context(), filter)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// Cancel handles POST /api/loans/{id}/cancel.
func (h *LoanHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	resp, err := h.cancel.Execute(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// Balance handles GET /api/loans/{id}/balance.
func (h *LoanHandler) Balance(w http.ResponseWriter, r *http.Request) {
	resp, err := h.balance.Execute(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// NextInstallment handles GET /api/loans/{id}/next-installment: the oldest
// payable installment and the exact amount to collect.
func (h *LoanHandler) NextInstallment(w http.ResponseWriter, r *http.Request) {
	resp, err := h.next.Execute(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// Payments handles GET /api/loans/{id}/payments.
func (h *LoanHandler) Payments(w http.ResponseWriter, r *http.Request) {
	resp, err := h.payments.ByLoan(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}
