package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/port"
	pgdb "github.com/mfrancoh5-ui/gestor-creditos-backend/pkg/postgres"
)

// UnitOfWork implements port.UnitOfWork over a pgx transaction. Every
// repository handed to the callback is bound to the same transaction, so the
// writes of one payment (installment, payment record, loan status) commit
// together or not at all.
type UnitOfWork struct {
	pool *pgxpool.Pool
}

// NewUnitOfWork creates a transaction runner over the pool.
func NewUnitOfWork(pool *pgxpool.Pool) *UnitOfWork {
	return &UnitOfWork{pool: pool}
}

// Execute runs fn inside a single database transaction.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context, tx port.TxRepositories) error) error {
	return pgdb.WithinTx(ctx, u.pool, func(tx pgx.Tx) error {
		return fn(ctx, txRepositories{tx: tx})
	})
}

// txRepositories binds the repository set to one open transaction.
type txRepositories struct {
	tx pgx.Tx
}

func (t txRepositories) Clients() port.ClientRepository           { return NewClientRepo(t.tx) }
func (t txRepositories) Loans() port.LoanRepository               { return NewLoanRepo(t.tx) }
func (t txRepositories) Installments() port.InstallmentRepository { return NewInstallmentRepo(t.tx) }
func (t txRepositories) Payments() port.PaymentRepository         { return NewPaymentRepo(t.tx) }
