package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/application/usecase"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/model"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/port"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/valueobject"
)

// errorResponse is the uniform error envelope.
type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// respondError maps domain errors onto HTTP status codes. Unknown errors are
// logged and masked as 500 so internals never leak to clients.
func respondError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
		respondJSON(w, status, errorResponse{Error: "internal server error"})
		return
	}
	respondJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, port.ErrNotFound),
		errors.Is(err, model.ErrInstallmentNotFound):
		return http.StatusNotFound

	case errors.Is(err, usecase.ErrInvalidCredentials):
		return http.StatusUnauthorized

	case errors.Is(err, port.ErrConflict),
		errors.Is(err, port.ErrDuplicateNationalID),
		errors.Is(err, usecase.ErrClientHasOpenLoans),
		errors.Is(err, model.ErrLoanClosed),
		errors.Is(err, model.ErrLoanAlreadyPaid),
		errors.Is(err, model.ErrLoanAlreadyCanceled),
		errors.Is(err, model.ErrNoPayableInstallment):
		return http.StatusConflict

	case errors.Is(err, model.ErrOverpayment),
		errors.Is(err, model.ErrPaymentNotPositive),
		errors.Is(err, model.ErrPrincipalNotPositive),
		errors.Is(err, model.ErrInstallmentNotPositive),
		errors.Is(err, model.ErrCountNotPositive),
		errors.Is(err, model.ErrStartDateRequired),
		errors.Is(err, model.ErrFrequencyRequired),
		errors.Is(err, model.ErrNegativeInterest),
		errors.Is(err, model.ErrClientRequired),
		errors.Is(err, model.ErrClientNameRequired),
		errors.Is(err, usecase.ErrPaymentTargetRequired),
		errors.Is(err, valueobject.ErrInvalidFrequency):
		return http.StatusUnprocessableEntity

	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// errBadRequest wraps malformed-input errors raised while decoding requests.
var errBadRequest = errors.New("bad request")
