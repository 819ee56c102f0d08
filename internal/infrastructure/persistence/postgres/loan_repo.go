package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/model"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/port"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/valueobject"
	pgdb "github.com/mfrancoh5-ui/gestor-creditos-backend/pkg/postgres"
)

// LoanRepo implements port.LoanRepository.
type LoanRepo struct {
	q pgdb.Querier
}

// NewLoanRepo creates a PostgreSQL-backed loan repository. The querier may
// be a pool or an open transaction.
func NewLoanRepo(q pgdb.Querier) *LoanRepo {
	return &LoanRepo{q: q}
}

// Save persists a loan. On first save (version 1) the full installment set is
// inserted alongside the loan row. Later saves only touch the loan row,
// guarded by an optimistic version check.
func (r *LoanRepo) Save(ctx context.Context, loan model.Loan) error {
	loanQuery := `
		INSERT INTO loans (
			id, client_id, principal, fixed_installment, interest_rate_pct,
			total_interest, total_payable, frequency, installment_count,
			start_date, completion_date, status, version, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		ON CONFLICT (id) DO UPDATE SET
			status     = EXCLUDED.status,
			version    = loans.version + 1,
			updated_at = EXCLUDED.updated_at
		WHERE loans.version = $13
	`
	tag, err := r.q.Exec(ctx, loanQuery,
		loan.ID(), loan.ClientID(), loan.Principal(), loan.FixedInstallment(), loan.InterestRatePct(),
		loan.TotalInterest(), loan.TotalPayable(), loan.Frequency().String(), loan.InstallmentCount(),
		loan.StartDate(), loan.CompletionDate(), loan.Status().String(),
		loan.Version(), loan.CreatedAt(), loan.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save loan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("save loan %s: %w", loan.ID(), port.ErrConflict)
	}

	if loan.Version() == 1 {
		installmentQuery := `
			INSERT INTO installments (
				id, loan_id, number, due_date, amount, balance, status,
				version, created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
			ON CONFLICT (loan_id, number) DO NOTHING
		`
		for _, ins := range loan.Installments() {
			_, err := r.q.Exec(ctx, installmentQuery,
				ins.ID, ins.LoanID, ins.Number, ins.DueDate, ins.Amount, ins.Balance,
				ins.Status.String(), ins.Version, ins.CreatedAt, ins.UpdatedAt,
			)
			if err != nil {
				return fmt.Errorf("save installment %d: %w", ins.Number, err)
			}
		}
	}

	return nil
}

// FindByID retrieves a loan together with its full installment set.
func (r *LoanRepo) FindByID(ctx context.Context, id string) (model.Loan, error) {
	row := r.q.QueryRow(ctx, loanSelect+` WHERE id = $1`, id)
	head, err := scanLoanRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Loan{}, port.ErrNotFound
		}
		return model.Loan{}, err
	}

	installments, err := r.loadInstallments(ctx, id)
	if err != nil {
		return model.Loan{}, err
	}
	return head.reconstruct(installments), nil
}

// List returns a page of loans matching the filter, each with its installment
// set loaded, plus the total count.
func (r *LoanRepo) List(ctx context.Context, filter port.LoanFilter) ([]model.Loan, int64, error) {
	var (
		where []string
		args  []any
	)
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, "status = $"+strconv.Itoa(len(args)))
	}
	if filter.ClientID != "" {
		args = append(args, filter.ClientID)
		where = append(where, "client_id = $"+strconv.Itoa(len(args)))
	}
	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM loans`+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count loans: %w", err)
	}

	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)
	query := loanSelect + cond + fmt.Sprintf(
		" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args),
	)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query loans: %w", err)
	}
	defer rows.Close()

	var heads []loanHead
	for rows.Next() {
		head, err := scanLoanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		heads = append(heads, head)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	loans := make([]model.Loan, 0, len(heads))
	for _, head := range heads {
		installments, err := r.loadInstallments(ctx, head.id)
		if err != nil {
			return nil, 0, err
		}
		loans = append(loans, head.reconstruct(installments))
	}
	return loans, total, nil
}

// HasOpenLoans reports whether the client owns any loan that is not PAID or
// CANCELED.
func (r *LoanRepo) HasOpenLoans(ctx context.Context, clientID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM loans
			WHERE client_id = $1 AND status NOT IN ('PAID', 'CANCELED')
		)
	`
	var exists bool
	if err := r.q.QueryRow(ctx, query, clientID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check open loans: %w", err)
	}
	return exists, nil
}

// ---------------------------------------------------------------------------
// internal helpers
// ---------------------------------------------------------------------------

const loanSelect = `
	SELECT id, client_id, principal, fixed_installment, interest_rate_pct,
	       total_interest, total_payable, frequency, installment_count,
	       start_date, completion_date, status, version, created_at, updated_at
	FROM loans`

// loanHead is a loan row before its installments are attached.
type loanHead struct {
	id, clientID                  string
	principal, fixedInstallment   decimal.Decimal
	interestRatePct               decimal.Decimal
	totalInterest, totalPayable   decimal.Decimal
	frequency                     valueobject.Frequency
	installmentCount              int
	startDate, completionDate     time.Time
	status                        valueobject.LoanStatus
	version                       int
	createdAt, updatedAt          time.Time
}

func (h loanHead) reconstruct(installments []model.Installment) model.Loan {
	return model.ReconstructLoan(
		h.id, h.clientID,
		h.principal, h.fixedInstallment, h.interestRatePct, h.totalInterest, h.totalPayable,
		h.frequency, h.installmentCount, h.startDate, h.completionDate,
		h.status, installments, h.version, h.createdAt, h.updatedAt,
	)
}

func scanLoanRow(s pgx.Row) (loanHead, error) {
	var (
		h             loanHead
		frequencyStr  string
		statusStr     string
	)
	err := s.Scan(
		&h.id, &h.clientID, &h.principal, &h.fixedInstallment, &h.interestRatePct,
		&h.totalInterest, &h.totalPayable, &frequencyStr, &h.installmentCount,
		&h.startDate, &h.completionDate, &statusStr, &h.version, &h.createdAt, &h.updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return loanHead{}, err
		}
		return loanHead{}, fmt.Errorf("scan loan: %w", err)
	}

	h.frequency, err = valueobject.NewFrequency(frequencyStr)
	if err != nil {
		return loanHead{}, fmt.Errorf("parse loan frequency: %w", err)
	}
	h.status, err = valueobject.NewLoanStatus(statusStr)
	if err != nil {
		return loanHead{}, fmt.Errorf("parse loan status: %w", err)
	}
	return h, nil
}

func (r *LoanRepo) loadInstallments(ctx context.Context, loanID string) ([]model.Installment, error) {
	query := installmentSelect + `
		WHERE loan_id = $1
		ORDER BY number
	`
	rows, err := r.q.Query(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("query installments: %w", err)
	}
	defer rows.Close()

	var installments []model.Installment
	for rows.Next() {
		ins, err := scanInstallmentRow(rows)
		if err != nil {
			return nil, err
		}
		installments = append(installments, ins)
	}
	return installments, rows.Err()
}
