package rest

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/model"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/pkg/auth"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth         *AuthHandler
	Clients      *ClientHandler
	Loans        *LoanHandler
	Payments     *PaymentHandler
	Installments *InstallmentHandler
	Dashboard    *DashboardHandler
	Health       *HealthHandler
	Metrics      http.Handler
}

// NewRouter mounts all routes. Everything under /api except the login
// endpoint requires a valid bearer token.
func NewRouter(h Handlers, jwtService *auth.JWTService, logger *slog.Logger) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", h.Health.Live).Methods(http.MethodGet)
	r.HandleFunc("/readyz", h.Health.Ready).Methods(http.MethodGet)
	if h.Metrics != nil {
		r.Handle("/metrics", h.Metrics).Methods(http.MethodGet)
	}

	r.HandleFunc("/api/auth/login", h.Auth.Login).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(mux.MiddlewareFunc(auth.Middleware(jwtService, []string{"/api/auth/login"})))

	// Destructive operations are reserved for administrators.
	admin := auth.RequireRole(model.RoleAdmin)

	api.HandleFunc("/clients", h.Clients.Create).Methods(http.MethodPost)
	api.HandleFunc("/clients", h.Clients.List).Methods(http.MethodGet)
	api.HandleFunc("/clients/{id}", h.Clients.Get).Methods(http.MethodGet)
	api.HandleFunc("/clients/{id}", h.Clients.Update).Methods(http.MethodPut)
	api.Handle("/clients/{id}", admin(http.HandlerFunc(h.Clients.Delete))).Methods(http.MethodDelete)

	api.HandleFunc("/loans", h.Loans.Issue).Methods(http.MethodPost)
	api.HandleFunc("/loans", h.Loans.List).Methods(http.MethodGet)
	api.HandleFunc("/loans/{id}", h.Loans.Get).Methods(http.MethodGet)
	api.Handle("/loans/{id}/cancel", admin(http.HandlerFunc(h.Loans.Cancel))).Methods(http.MethodPost)
	api.HandleFunc("/loans/{id}/balance", h.Loans.Balance).Methods(http.MethodGet)
	api.HandleFunc("/loans/{id}/next-installment", h.Loans.NextInstallment).Methods(http.MethodGet)
	api.HandleFunc("/loans/{id}/payments", h.Loans.Payments).Methods(http.MethodGet)

	api.HandleFunc("/payments", h.Payments.Register).Methods(http.MethodPost)
	api.HandleFunc("/payments", h.Payments.List).Methods(http.MethodGet)

	api.HandleFunc("/installments", h.Installments.List).Methods(http.MethodGet)

	api.HandleFunc("/dashboard", h.Dashboard.KPIs).Methods(http.MethodGet)

	logging := LoggingMiddleware(logger)
	return logging(r)
}
