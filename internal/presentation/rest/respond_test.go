package rest

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/application/usecase"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/model"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/port"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", port.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("find loan: %w", port.ErrNotFound), http.StatusNotFound},
		{"invalid credentials", usecase.ErrInvalidCredentials, http.StatusUnauthorized},
		{"version conflict", port.ErrConflict, http.StatusConflict},
		{"duplicate national id", port.ErrDuplicateNationalID, http.StatusConflict},
		{"open loans block deletion", usecase.ErrClientHasOpenLoans, http.StatusConflict},
		{"closed loan", model.ErrLoanClosed, http.StatusConflict},
		{"nothing payable", model.ErrNoPayableInstallment, http.StatusConflict},
		{"overpayment", model.ErrOverpayment, http.StatusUnprocessableEntity},
		{"negative interest", model.ErrNegativeInterest, http.StatusUnprocessableEntity},
		{"missing target", usecase.ErrPaymentTargetRequired, http.StatusUnprocessableEntity},
		{"malformed input", fmt.Errorf("%w: bad date", errBadRequest), http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, statusFor(tc.err))
		})
	}
}

func TestRespondError_MasksInternals(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	rec := httptest.NewRecorder()
	respondError(rec, logger, errors.New("pq: connection refused"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
	assert.Contains(t, rec.Body.String(), "internal server error")
}

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	respondJSON(rec, http.StatusCreated, map[string]string{"id": "abc"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":"abc"}`, rec.Body.String())
}
