package port

import (
	"context"
	"errors"
	"time"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/event"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/model"
)

// Repository sentinel errors.
var (
	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = errors.New("entity not found")
	// ErrConflict is returned when an optimistic version check fails because
	// of a concurrent modification. Callers may retry.
	ErrConflict = errors.New("concurrent modification conflict")
	// ErrDuplicateNationalID is returned when a client's national ID is
	// already registered.
	ErrDuplicateNationalID = errors.New("national ID already registered")
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// ClientRepository persists and retrieves clients.
type ClientRepository interface {
	Save(ctx context.Context, client model.Client) error
	FindByID(ctx context.Context, id string) (model.Client, error)
	FindByNationalID(ctx context.Context, nationalID string) (model.Client, error)
	List(ctx context.Context, page, pageSize int) ([]model.Client, int64, error)
	Delete(ctx context.Context, id string) error
}

// LoanFilter narrows loan listings.
type LoanFilter struct {
	Status   string
	ClientID string
	Page     int
	PageSize int
}

// LoanRepository persists and retrieves loans together with their
// installment sets.
type LoanRepository interface {
	// Save inserts a new loan with all its installments, or updates the
	// loan row (status) guarded by an optimistic version check.
	Save(ctx context.Context, loan model.Loan) error
	FindByID(ctx context.Context, id string) (model.Loan, error)
	List(ctx context.Context, filter LoanFilter) ([]model.Loan, int64, error)
	// HasOpenLoans reports whether the client owns any loan that is not
	// PAID or CANCELED.
	HasOpenLoans(ctx context.Context, clientID string) (bool, error)
}

// InstallmentFilter narrows the operative installment listing.
type InstallmentFilter struct {
	Status      string
	OverdueOnly bool
	DueOn       time.Time
	ClientID    string
	LoanID      string
	Page        int
	PageSize    int
}

// InstallmentRepository retrieves and updates individual installments.
type InstallmentRepository interface {
	FindByID(ctx context.Context, id string) (model.Installment, error)
	// Update writes balance and status guarded by an optimistic version
	// check; returns ErrConflict when the row changed underneath.
	Update(ctx context.Context, installment model.Installment) error
	List(ctx context.Context, filter InstallmentFilter) ([]model.Installment, int64, error)
}

// PaymentFilter narrows the general payment listing. Query matches the
// payment note and the owning client's name or national ID.
type PaymentFilter struct {
	Query    string
	Page     int
	PageSize int
}

// PaymentRepository persists and retrieves payment records.
type PaymentRepository interface {
	Save(ctx context.Context, payment model.Payment) error
	FindByLoanID(ctx context.Context, loanID string) ([]model.Payment, error)
	List(ctx context.Context, filter PaymentFilter) ([]model.Payment, int64, error)
}

// UserRepository retrieves back-office operator accounts.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (model.User, error)
}

// ReportingRepository runs the read-only dashboard aggregation.
type ReportingRepository interface {
	KPIs(ctx context.Context, now time.Time) (model.DashboardKPIs, error)
}

// ---------------------------------------------------------------------------
// Unit of work
// ---------------------------------------------------------------------------

// TxRepositories exposes repositories bound to one open transaction.
type TxRepositories interface {
	Clients() ClientRepository
	Loans() LoanRepository
	Installments() InstallmentRepository
	Payments() PaymentRepository
}

// UnitOfWork runs fn within a single atomic transaction. Every write made
// through the provided repositories commits together or not at all.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context, tx TxRepositories) error) error
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// Cache port
// ---------------------------------------------------------------------------

// KPICache stores short-lived dashboard aggregates.
type KPICache interface {
	Get(ctx context.Context) (model.DashboardKPIs, bool)
	Set(ctx context.Context, kpis model.DashboardKPIs, ttl time.Duration) error
}
