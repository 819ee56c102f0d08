package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/model"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/port"
	pgdb "github.com/mfrancoh5-ui/gestor-creditos-backend/pkg/postgres"
)

// PaymentRepo implements port.PaymentRepository. Payments are append-only:
// there is no update or delete path.
type PaymentRepo struct {
	q pgdb.Querier
}

// NewPaymentRepo creates a PostgreSQL-backed payment repository.
func NewPaymentRepo(q pgdb.Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Save inserts a payment record.
func (r *PaymentRepo) Save(ctx context.Context, payment model.Payment) error {
	query := `
		INSERT INTO payments (id, installment_id, amount, note, paid_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.q.Exec(ctx, query,
		payment.ID, payment.InstallmentID, payment.Amount,
		payment.Note, payment.PaidAt, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save payment: %w", err)
	}
	return nil
}

// FindByLoanID returns every payment applied to any installment of the loan,
// most recent first.
func (r *PaymentRepo) FindByLoanID(ctx context.Context, loanID string) ([]model.Payment, error) {
	query := `
		SELECT p.id, p.installment_id, p.amount, p.note, p.paid_at, p.created_at
		FROM payments p
		JOIN installments i ON i.id = p.installment_id
		WHERE i.loan_id = $1
		ORDER BY p.paid_at DESC, p.created_at DESC
	`
	rows, err := r.q.Query(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("query loan payments: %w", err)
	}
	defer rows.Close()
	return collectPayments(rows)
}

// List returns a page of payments, most recent first. The query term matches
// the payment note and the owning client's name or national ID.
func (r *PaymentRepo) List(ctx context.Context, filter port.PaymentFilter) ([]model.Payment, int64, error) {
	from := `
		FROM payments p
		JOIN installments i ON i.id = p.installment_id
		JOIN loans l ON l.id = i.loan_id
		JOIN clients c ON c.id = l.client_id
	`
	cond := ""
	var args []any
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		cond = ` WHERE p.note ILIKE $1
			OR c.first_name ILIKE $1
			OR c.last_name ILIKE $1
			OR c.national_id ILIKE $1`
	}

	var total int64
	if err := r.q.QueryRow(ctx, `SELECT count(*)`+from+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count payments: %w", err)
	}

	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)
	query := `SELECT p.id, p.installment_id, p.amount, p.note, p.paid_at, p.created_at` +
		from + cond + fmt.Sprintf(
		" ORDER BY p.paid_at DESC, p.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args),
	)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()

	payments, err := collectPayments(rows)
	if err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

func collectPayments(rows pgx.Rows) ([]model.Payment, error) {
	var payments []model.Payment
	for rows.Next() {
		var p model.Payment
		err := rows.Scan(&p.ID, &p.InstallmentID, &p.Amount, &p.Note, &p.PaidAt, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
