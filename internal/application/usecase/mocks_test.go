package usecase_test

import (
	"context"
	"time"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/event"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/model"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/port"
)

// ---------------------------------------------------------------------------
// Repository mocks
// ---------------------------------------------------------------------------

type mockClientRepository struct {
	saveFunc             func(ctx context.Context, client model.Client) error
	findByIDFunc         func(ctx context.Context, id string) (model.Client, error)
	findByNationalIDFunc func(ctx context.Context, nationalID string) (model.Client, error)
	listFunc             func(ctx context.Context, page, pageSize int) ([]model.Client, int64, error)
	deleteFunc           func(ctx context.Context, id string) error
	savedClients         []model.Client
	deletedIDs           []string
}

func (m *mockClientRepository) Save(ctx context.Context, client model.Client) error {
	m.savedClients = append(m.savedClients, client)
	if m.saveFunc != nil {
		return m.saveFunc(ctx, client)
	}
	return nil
}

func (m *mockClientRepository) FindByID(ctx context.Context, id string) (model.Client, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Client{}, port.ErrNotFound
}

func (m *mockClientRepository) FindByNationalID(ctx context.Context, nationalID string) (model.Client, error) {
	if m.findByNationalIDFunc != nil {
		return m.findByNationalIDFunc(ctx, nationalID)
	}
	return model.Client{}, port.ErrNotFound
}

func (m *mockClientRepository) List(ctx context.Context, page, pageSize int) ([]model.Client, int64, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, page, pageSize)
	}
	return nil, 0, nil
}

func (m *mockClientRepository) Delete(ctx context.Context, id string) error {
	m.deletedIDs = append(m.deletedIDs, id)
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockLoanRepository struct {
	saveFunc         func(ctx context.Context, loan model.Loan) error
	findByIDFunc     func(ctx context.Context, id string) (model.Loan, error)
	listFunc         func(ctx context.Context, filter port.LoanFilter) ([]model.Loan, int64, error)
	hasOpenLoansFunc func(ctx context.Context, clientID string) (bool, error)
	savedLoans       []model.Loan
}

func (m *mockLoanRepository) Save(ctx context.Context, loan model.Loan) error {
	m.savedLoans = append(m.savedLoans, loan)
	if m.saveFunc != nil {
		return m.saveFunc(ctx, loan)
	}
	return nil
}

func (m *mockLoanRepository) FindByID(ctx context.Context, id string) (model.Loan, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Loan{}, port.ErrNotFound
}

func (m *mockLoanRepository) List(ctx context.Context, filter port.LoanFilter) ([]model.Loan, int64, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockLoanRepository) HasOpenLoans(ctx context.Context, clientID string) (bool, error) {
	if m.hasOpenLoansFunc != nil {
		return m.hasOpenLoansFunc(ctx, clientID)
	}
	return false, nil
}

type mockInstallmentRepository struct {
	findByIDFunc        func(ctx context.Context, id string) (model.Installment, error)
	updateFunc          func(ctx context.Context, installment model.Installment) error
	listFunc            func(ctx context.Context, filter port.InstallmentFilter) ([]model.Installment, int64, error)
	updatedInstallments []model.Installment
}

func (m *mockInstallmentRepository) FindByID(ctx context.Context, id string) (model.Installment, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Installment{}, port.ErrNotFound
}

func (m *mockInstallmentRepository) Update(ctx context.Context, installment model.Installment) error {
	m.updatedInstallments = append(m.updatedInstallments, installment)
	if m.updateFunc != nil {
		return m.updateFunc(ctx, installment)
	}
	return nil
}

func (m *mockInstallmentRepository) List(ctx context.Context, filter port.InstallmentFilter) ([]model.Installment, int64, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, 0, nil
}

type mockPaymentRepository struct {
	saveFunc         func(ctx context.Context, payment model.Payment) error
	findByLoanIDFunc func(ctx context.Context, loanID string) ([]model.Payment, error)
	listFunc         func(ctx context.Context, filter port.PaymentFilter) ([]model.Payment, int64, error)
	savedPayments    []model.Payment
}

func (m *mockPaymentRepository) Save(ctx context.Context, payment model.Payment) error {
	m.savedPayments = append(m.savedPayments, payment)
	if m.saveFunc != nil {
		return m.saveFunc(ctx, payment)
	}
	return nil
}

func (m *mockPaymentRepository) FindByLoanID(ctx context.Context, loanID string) ([]model.Payment, error) {
	if m.findByLoanIDFunc != nil {
		return m.findByLoanIDFunc(ctx, loanID)
	}
	return nil, nil
}

func (m *mockPaymentRepository) List(ctx context.Context, filter port.PaymentFilter) ([]model.Payment, int64, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, 0, nil
}

type mockUserRepository struct {
	findByUsernameFunc func(ctx context.Context, username string) (model.User, error)
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (model.User, error) {
	if m.findByUsernameFunc != nil {
		return m.findByUsernameFunc(ctx, username)
	}
	return model.User{}, port.ErrNotFound
}

type mockReportingRepository struct {
	kpisFunc  func(ctx context.Context, now time.Time) (model.DashboardKPIs, error)
	kpisCalls int
}

func (m *mockReportingRepository) KPIs(ctx context.Context, now time.Time) (model.DashboardKPIs, error) {
	m.kpisCalls++
	if m.kpisFunc != nil {
		return m.kpisFunc(ctx, now)
	}
	return model.DashboardKPIs{}, nil
}

// ---------------------------------------------------------------------------
// Unit of work mock
// ---------------------------------------------------------------------------

// mockUnitOfWork hands the callback a fixed repository set. It also records
// whether the callback returned an error, to assert rollback paths.
type mockUnitOfWork struct {
	clients      *mockClientRepository
	loans        *mockLoanRepository
	installments *mockInstallmentRepository
	payments     *mockPaymentRepository
	executeErr   error
}

func newMockUnitOfWork() *mockUnitOfWork {
	return &mockUnitOfWork{
		clients:      &mockClientRepository{},
		loans:        &mockLoanRepository{},
		installments: &mockInstallmentRepository{},
		payments:     &mockPaymentRepository{},
	}
}

func (m *mockUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context, tx port.TxRepositories) error) error {
	if m.executeErr != nil {
		return m.executeErr
	}
	return fn(ctx, mockTxRepositories{m})
}

type mockTxRepositories struct {
	uow *mockUnitOfWork
}

func (t mockTxRepositories) Clients() port.ClientRepository           { return t.uow.clients }
func (t mockTxRepositories) Loans() port.LoanRepository               { return t.uow.loans }
func (t mockTxRepositories) Installments() port.InstallmentRepository { return t.uow.installments }
func (t mockTxRepositories) Payments() port.PaymentRepository         { return t.uow.payments }

// ---------------------------------------------------------------------------
// Event publisher and cache mocks
// ---------------------------------------------------------------------------

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	m.publishedEvents = append(m.publishedEvents, events...)
	if m.publishFunc != nil {
		return m.publishFunc(ctx, events...)
	}
	return nil
}

type mockKPICache struct {
	getFunc  func(ctx context.Context) (model.DashboardKPIs, bool)
	setFunc  func(ctx context.Context, kpis model.DashboardKPIs, ttl time.Duration) error
	setCalls []model.DashboardKPIs
}

func (m *mockKPICache) Get(ctx context.Context) (model.DashboardKPIs, bool) {
	if m.getFunc != nil {
		return m.getFunc(ctx)
	}
	return model.DashboardKPIs{}, false
}

func (m *mockKPICache) Set(ctx context.Context, kpis model.DashboardKPIs, ttl time.Duration) error {
	m.setCalls = append(m.setCalls, kpis)
	if m.setFunc != nil {
		return m.setFunc(ctx, kpis, ttl)
	}
	return nil
}
