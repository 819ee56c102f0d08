package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/model"
	pgdb "github.com/mfrancoh5-ui/gestor-creditos-backend/pkg/postgres"
)

// ReportingRepo implements port.ReportingRepository. It runs read-only
// aggregations; nothing here participates in the unit of work.
type ReportingRepo struct {
	q pgdb.Querier
}

// NewReportingRepo creates a PostgreSQL-backed reporting repository.
func NewReportingRepo(q pgdb.Querier) *ReportingRepo {
	return &ReportingRepo{q: q}
}

// KPIs computes the dashboard figures in a single round trip. "This month"
// is the calendar month containing now, in UTC.
func (r *ReportingRepo) KPIs(ctx context.Context, now time.Time) (model.DashboardKPIs, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	query := `
		SELECT
			(SELECT count(*) FROM clients),
			(SELECT count(*) FROM loans WHERE status IN ('ACTIVE', 'LATE')),
			(SELECT COALESCE(sum(balance), 0) FROM installments
			 WHERE status <> 'PAID' AND due_date < $1),
			(SELECT COALESCE(sum(amount), 0) FROM payments
			 WHERE paid_at >= $2 AND paid_at < $3),
			(SELECT count(*) FROM installments WHERE status <> 'PAID')
	`
	var kpis model.DashboardKPIs
	err := r.q.QueryRow(ctx, query, now, monthStart, monthEnd).Scan(
		&kpis.TotalClients,
		&kpis.ActiveLoans,
		&kpis.OverduePortfolio,
		&kpis.CollectedThisMonth,
		&kpis.PendingInstallments,
	)
	if err != nil {
		return model.DashboardKPIs{}, fmt.Errorf("query dashboard KPIs: %w", err)
	}
	return kpis, nil
}
