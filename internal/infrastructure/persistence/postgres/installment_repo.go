package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/model"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/port"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/valueobject"
	pgdb "github.com/mfrancoh5-ui/gestor-creditos-backend/pkg/postgres"
)

// InstallmentRepo implements port.InstallmentRepository.
type InstallmentRepo struct {
	q pgdb.Querier
}

// NewInstallmentRepo creates a PostgreSQL-backed installment repository.
func NewInstallmentRepo(q pgdb.Querier) *InstallmentRepo {
	return &InstallmentRepo{q: q}
}

// FindByID retrieves a single installment.
func (r *InstallmentRepo) FindByID(ctx context.Context, id string) (model.Installment, error) {
	row := r.q.QueryRow(ctx, installmentSelect+` WHERE id = $1`, id)
	ins, err := scanInstallmentRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Installment{}, port.ErrNotFound
		}
		return model.Installment{}, err
	}
	return ins, nil
}

// Update writes the installment's balance and status guarded by an optimistic
// version check. A zero-row update means a concurrent writer won.
func (r *InstallmentRepo) Update(ctx context.Context, installment model.Installment) error {
	query := `
		UPDATE installments
		SET balance    = $1,
		    status     = $2,
		    version    = version + 1,
		    updated_at = $3
		WHERE id = $4 AND version = $5
	`
	tag, err := r.q.Exec(ctx, query,
		installment.Balance, installment.Status.String(), installment.UpdatedAt,
		installment.ID, installment.Version,
	)
	if err != nil {
		return fmt.Errorf("update installment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update installment %s: %w", installment.ID, port.ErrConflict)
	}
	return nil
}

// List returns a page of installments matching the filter plus the total
// count. This backs the operative collections view, so it orders by due date.
func (r *InstallmentRepo) List(ctx context.Context, filter port.InstallmentFilter) ([]model.Installment, int64, error) {
	var (
		where []string
		args  []any
	)
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, "i.status = $"+strconv.Itoa(len(args)))
	}
	if filter.OverdueOnly {
		where = append(where, "i.status <> 'PAID' AND i.due_date < now()")
	}
	if !filter.DueOn.IsZero() {
		args = append(args, filter.DueOn)
		where = append(where, "i.due_date::date = $"+strconv.Itoa(len(args))+"::date")
	}
	if filter.LoanID != "" {
		args = append(args, filter.LoanID)
		where = append(where, "i.loan_id = $"+strconv.Itoa(len(args)))
	}
	if filter.ClientID != "" {
		args = append(args, filter.ClientID)
		where = append(where, "l.client_id = $"+strconv.Itoa(len(args)))
	}
	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	from := ` FROM installments i JOIN loans l ON l.id = i.loan_id`

	var total int64
	if err := r.q.QueryRow(ctx, `SELECT count(*)`+from+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count installments: %w", err)
	}

	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)
	query := `
		SELECT i.id, i.loan_id, i.number, i.due_date, i.amount, i.balance,
		       i.status, i.version, i.created_at, i.updated_at` +
		from + cond + fmt.Sprintf(
		" ORDER BY i.due_date, i.number LIMIT $%d OFFSET $%d", len(args)-1, len(args),
	)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query installments: %w", err)
	}
	defer rows.Close()

	var installments []model.Installment
	for rows.Next() {
		ins, err := scanInstallmentRow(rows)
		if err != nil {
			return nil, 0, err
		}
		installments = append(installments, ins)
	}
	return installments, total, rows.Err()
}

// ---------------------------------------------------------------------------
// internal helpers
// ---------------------------------------------------------------------------

const installmentSelect = `
	SELECT id, loan_id, number, due_date, amount, balance, status,
	       version, created_at, updated_at
	FROM installments`

func scanInstallmentRow(s pgx.Row) (model.Installment, error) {
	var (
		ins       model.Installment
		statusStr string
	)
	err := s.Scan(
		&ins.ID, &ins.LoanID, &ins.Number, &ins.DueDate, &ins.Amount, &ins.Balance,
		&statusStr, &ins.Version, &ins.CreatedAt, &ins.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Installment{}, err
		}
		return model.Installment{}, fmt.Errorf("scan installment: %w", err)
	}
	ins.Status, err = valueobject.NewInstallmentStatus(statusStr)
	if err != nil {
		return model.Installment{}, fmt.Errorf("parse installment status: %w", err)
	}
	return ins, nil
}
