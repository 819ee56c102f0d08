package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/application/usecase"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/event"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/model"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/port"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/pkg/auth"
)

// ---------------------------------------------------------------------------
// In-memory port implementations
// ---------------------------------------------------------------------------

type memStore struct {
	clients  map[string]model.Client
	loans    map[string]model.Loan
	payments []model.Payment
	users    map[string]model.User
}

func newMemStore() *memStore {
	return &memStore{
		clients: make(map[string]model.Client),
		loans:   make(map[string]model.Loan),
		users:   make(map[string]model.User),
	}
}

func (s *memStore) Save(ctx context.Context, c model.Client) error { s.clients[c.ID] = c; return nil }

func (s *memStore) FindByID(ctx context.Context, id string) (model.Client, error) {
	c, ok := s.clients[id]
	if !ok {
		return model.Client{}, port.ErrNotFound
	}
	return c, nil
}

func (s *memStore) FindByNationalID(ctx context.Context, nationalID string) (model.Client, error) {
	for _, c := range s.clients {
		if c.NationalID == nationalID {
			return c, nil
		}
	}
	return model.Client{}, port.ErrNotFound
}

func (s *memStore) List(ctx context.Context, page, pageSize int) ([]model.Client, int64, error) {
	var out []model.Client
	for _, c := range s.clients {
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (s *memStore) Delete(ctx context.Context, id string) error {
	delete(s.clients, id)
	return nil
}

type memLoans struct{ s *memStore }

func (r memLoans) Save(ctx context.Context, l model.Loan) error { r.s.loans[l.ID()] = l; return nil }

func (r memLoans) FindByID(ctx context.Context, id string) (model.Loan, error) {
	l, ok := r.s.loans[id]
	if !ok {
		return model.Loan{}, port.ErrNotFound
	}
	return l, nil
}

func (r memLoans) List(ctx context.Context, f port.LoanFilter) ([]model.Loan, int64, error) {
	var out []model.Loan
	for _, l := range r.s.loans {
		out = append(out, l)
	}
	return out, int64(len(out)), nil
}

func (r memLoans) HasOpenLoans(ctx context.Context, clientID string) (bool, error) {
	for _, l := range r.s.loans {
		if l.ClientID() == clientID && !l.Status().IsClosed() {
			return true, nil
		}
	}
	return false, nil
}

type memInstallments struct{ s *memStore }

func (r memInstallments) FindByID(ctx context.Context, id string) (model.Installment, error) {
	for _, l := range r.s.loans {
		if ins, ok := l.Installment(id); ok {
			return ins, nil
		}
	}
	return model.Installment{}, port.ErrNotFound
}

func (r memInstallments) Update(ctx context.Context, ins model.Installment) error { return nil }

func (r memInstallments) List(ctx context.Context, f port.InstallmentFilter) ([]model.Installment, int64, error) {
	return nil, 0, nil
}

type memPayments struct{ s *memStore }

func (r memPayments) Save(ctx context.Context, p model.Payment) error {
	r.s.payments = append(r.s.payments, p)
	return nil
}

func (r memPayments) FindByLoanID(ctx context.Context, loanID string) ([]model.Payment, error) {
	return r.s.payments, nil
}

func (r memPayments) List(ctx context.Context, f port.PaymentFilter) ([]model.Payment, int64, error) {
	return r.s.payments, int64(len(r.s.payments)), nil
}

type memUsers struct{ s *memStore }

func (r memUsers) FindByUsername(ctx context.Context, username string) (model.User, error) {
	u, ok := r.s.users[username]
	if !ok {
		return model.User{}, port.ErrNotFound
	}
	return u, nil
}

type memReporting struct{}

func (memReporting) KPIs(ctx context.Context, now time.Time) (model.DashboardKPIs, error) {
	return model.DashboardKPIs{TotalClients: 3, ActiveLoans: 2}, nil
}

type memUow struct{ s *memStore }

func (u memUow) Execute(ctx context.Context, fn func(ctx context.Context, tx port.TxRepositories) error) error {
	return fn(ctx, u)
}

func (u memUow) Clients() port.ClientRepository           { return u.s }
func (u memUow) Loans() port.LoanRepository               { return memLoans{u.s} }
func (u memUow) Installments() port.InstallmentRepository { return memInstallments{u.s} }
func (u memUow) Payments() port.PaymentRepository         { return memPayments{u.s} }

type noopPublisher struct{}

func (noopPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error { return nil }

// ---------------------------------------------------------------------------
// Test server wiring
// ---------------------------------------------------------------------------

func newTestServer(t *testing.T, store *memStore) (http.Handler, *auth.JWTService) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtSvc, err := auth.NewJWTService(auth.JWTConfig{Secret: "test-secret", Issuer: "gestor-creditos"})
	require.NoError(t, err)

	loans := memLoans{store}
	publisher := noopPublisher{}
	uow := memUow{store}

	handlers := Handlers{
		Auth: NewAuthHandler(usecase.NewLoginUseCase(memUsers{store}, jwtSvc), logger),
		Clients: NewClientHandler(
			usecase.NewCreateClientUseCase(store),
			usecase.NewUpdateClientUseCase(store),
			usecase.NewDeleteClientUseCase(store, loans),
			usecase.NewGetClientUseCase(store),
			usecase.NewListClientsUseCase(store),
			logger,
		),
		Loans: NewLoanHandler(
			usecase.NewIssueLoanUseCase(uow, publisher),
			usecase.NewGetLoanUseCase(loans, store, memPayments{store}),
			usecase.NewListLoansUseCase(loans),
			usecase.NewCancelLoanUseCase(uow, publisher),
			usecase.NewLoanBalanceUseCase(loans),
			usecase.NewNextInstallmentUseCase(loans),
			usecase.NewListPaymentsUseCase(loans, memPayments{store}),
			logger,
		),
		Payments: NewPaymentHandler(
			usecase.NewRegisterPaymentUseCase(uow, publisher),
			usecase.NewListPaymentsUseCase(loans, memPayments{store}),
			logger,
		),
		Installments: NewInstallmentHandler(usecase.NewListInstallmentsUseCase(memInstallments{store}), logger),
		Dashboard:    NewDashboardHandler(usecase.NewDashboardUseCase(memReporting{}, nil, time.Minute), logger),
		Health:       NewHealthHandler(nil),
	}
	return NewRouter(handlers, jwtSvc, logger), jwtSvc
}

func seedUser(t *testing.T, store *memStore) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	store.users["admin"] = model.User{
		ID: "user-1", Username: "admin", PasswordHash: string(hash), Role: model.RoleAdmin,
	}
}

func bearerToken(t *testing.T, jwtSvc *auth.JWTService) string {
	t.Helper()
	token, err := jwtSvc.GenerateToken("user-1", "admin", model.RoleAdmin)
	require.NoError(t, err)
	return "Bearer " + token
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestRouter_HealthIsOpen(t *testing.T) {
	router, _ := newTestServer(t, newMemStore())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_APIRequiresToken(t *testing.T) {
	router, _ := newTestServer(t, newMemStore())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/dashboard", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_LoginFlow(t *testing.T) {
	store := newMemStore()
	seedUser(t, store)
	router, _ := newTestServer(t, store)

	t.Run("valid credentials return a usable token", func(t *testing.T) {
		body := bytes.NewBufferString(`{"username":"admin","password":"secret"}`)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/auth/login", body))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Token string `json:"token"`
			Role  string `json:"role"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "ADMIN", resp.Role)

		req := httptest.NewRequest("GET", "/api/dashboard", nil)
		req.Header.Set("Authorization", "Bearer "+resp.Token)
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong password is rejected without detail", func(t *testing.T) {
		body := bytes.NewBufferString(`{"username":"admin","password":"wrong"}`)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/auth/login", body))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.NotContains(t, rec.Body.String(), "password hash")
	})
}

func TestRouter_IssueLoanEndToEnd(t *testing.T) {
	store := newMemStore()
	seedUser(t, store)
	store.clients["client-1"] = model.Client{ID: "client-1", FirstName: "Ana", LastName: "Diaz"}
	router, jwtSvc := newTestServer(t, store)
	token := bearerToken(t, jwtSvc)

	body := bytes.NewBufferString(`{
		"client_id": "client-1",
		"principal": "1000",
		"fixed_installment": "250",
		"installment_count": 5,
		"frequency": "DAILY",
		"start_date": "2025-01-01"
	}`)
	req := httptest.NewRequest("POST", "/api/loans", body)
	req.Header.Set("Authorization", token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Status       string `json:"status"`
		TotalPayable string `json:"total_payable"`
		Installments []struct {
			DueDate string `json:"due_date"`
			Status  string `json:"status"`
		} `json:"installments"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ACTIVE", resp.Status)
	assert.Equal(t, "1250", resp.TotalPayable)
	require.Len(t, resp.Installments, 5)
	assert.Contains(t, resp.Installments[0].DueDate, "2025-01-02")

	t.Run("overpayment is rejected with 422", func(t *testing.T) {
		var loanID string
		for id := range store.loans {
			loanID = id
		}
		payBody := bytes.NewBufferString(`{"loan_id":"` + loanID + `","amount":"9999"}`)
		payReq := httptest.NewRequest("POST", "/api/payments", payBody)
		payReq.Header.Set("Authorization", token)
		payRec := httptest.NewRecorder()
		router.ServeHTTP(payRec, payReq)
		assert.Equal(t, http.StatusUnprocessableEntity, payRec.Code, payRec.Body.String())
	})

	t.Run("bad frequency is rejected", func(t *testing.T) {
		badBody := bytes.NewBufferString(`{
			"client_id": "client-1", "principal": "100", "fixed_installment": "30",
			"installment_count": 4, "frequency": "HOURLY", "start_date": "2025-01-01"
		}`)
		badReq := httptest.NewRequest("POST", "/api/loans", badBody)
		badReq.Header.Set("Authorization", token)
		badRec := httptest.NewRecorder()
		router.ServeHTTP(badRec, badReq)
		assert.Equal(t, http.StatusUnprocessableEntity, badRec.Code)
	})
}

func TestRouter_AdminOnlyRoutes(t *testing.T) {
	store := newMemStore()
	store.clients["client-1"] = model.Client{ID: "client-1", FirstName: "Ana", LastName: "Diaz"}
	router, jwtSvc := newTestServer(t, store)

	gestorToken, err := jwtSvc.GenerateToken("user-2", "gestor", model.RoleManager)
	require.NoError(t, err)

	t.Run("manager cannot delete a client", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/api/clients/client-1", nil)
		req.Header.Set("Authorization", "Bearer "+gestorToken)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin can delete a client", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/api/clients/client-1", nil)
		req.Header.Set("Authorization", bearerToken(t, jwtSvc))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	})
}
