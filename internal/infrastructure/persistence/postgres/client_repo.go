package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/model"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/port"
	pgdb "github.com/mfrancoh5-ui/gestor-creditos-backend/pkg/postgres"
)

// uniqueViolation is the PostgreSQL error code for unique constraint breaches.
const uniqueViolation = "23505"

// ClientRepo implements port.ClientRepository.
type ClientRepo struct {
	q pgdb.Querier
}

// NewClientRepo creates a PostgreSQL-backed client repository. The querier
// may be a pool or an open transaction.
func NewClientRepo(q pgdb.Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Save upserts a client row.
func (r *ClientRepo) Save(ctx context.Context, client model.Client) error {
	query := `
		INSERT INTO clients (id, first_name, last_name, national_id, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			first_name  = EXCLUDED.first_name,
			last_name   = EXCLUDED.last_name,
			national_id = EXCLUDED.national_id,
			phone       = EXCLUDED.phone,
			address     = EXCLUDED.address,
			updated_at  = EXCLUDED.updated_at
	`
	_, err := r.q.Exec(ctx, query,
		client.ID, client.FirstName, client.LastName,
		client.NationalID, client.Phone, client.Address,
		client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return port.ErrDuplicateNationalID
		}
		return fmt.Errorf("save client: %w", err)
	}
	return nil
}

// FindByID retrieves a client by ID.
func (r *ClientRepo) FindByID(ctx context.Context, id string) (model.Client, error) {
	query := clientSelect + ` WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// FindByNationalID retrieves a client by national ID.
func (r *ClientRepo) FindByNationalID(ctx context.Context, nationalID string) (model.Client, error) {
	query := clientSelect + ` WHERE national_id = $1`
	return r.scanOne(ctx, query, nationalID)
}

// List returns a page of clients ordered by last name, plus the total count.
func (r *ClientRepo) List(ctx context.Context, page, pageSize int) ([]model.Client, int64, error) {
	var total int64
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM clients`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count clients: %w", err)
	}

	query := clientSelect + `
		ORDER BY last_name, first_name
		LIMIT $1 OFFSET $2
	`
	rows, err := r.q.Query(ctx, query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("query clients: %w", err)
	}
	defer rows.Close()

	var clients []model.Client
	for rows.Next() {
		c, err := scanClientRow(rows)
		if err != nil {
			return nil, 0, err
		}
		clients = append(clients, c)
	}
	return clients, total, rows.Err()
}

// Delete removes a client row. The open-loan guard runs in the use case
// before this is called.
func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return port.ErrNotFound
	}
	return nil
}

// ---------------------------------------------------------------------------
// internal helpers
// ---------------------------------------------------------------------------

const clientSelect = `
	SELECT id, first_name, last_name, COALESCE(national_id, ''), phone, address, created_at, updated_at
	FROM clients`

func (r *ClientRepo) scanOne(ctx context.Context, query string, args ...any) (model.Client, error) {
	row := r.q.QueryRow(ctx, query, args...)
	c, err := scanClientRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Client{}, port.ErrNotFound
		}
		return model.Client{}, err
	}
	return c, nil
}

func scanClientRow(s pgx.Row) (model.Client, error) {
	var c model.Client
	err := s.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.NationalID,
		&c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Client{}, err
		}
		return model.Client{}, fmt.Errorf("scan client: %w", err)
	}
	return c, nil
}
