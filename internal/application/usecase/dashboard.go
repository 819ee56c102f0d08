package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/model"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/port"
)

// DashboardUseCase serves the back-office KPI panel. The aggregation query
// touches every table, so results are cached for a short TTL; the cache is
// best effort and a miss or cache failure falls through to the database.
type DashboardUseCase struct {
	reporting port.ReportingRepository
	cache     port.KPICache
	ttl       time.Duration
}

// NewDashboardUseCase wires dependencies. A nil cache disables caching.
func NewDashboardUseCase(reporting port.ReportingRepository, cache port.KPICache, ttl time.Duration) *DashboardUseCase {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &DashboardUseCase{reporting: reporting, cache: cache, ttl: ttl}
}

// Execute returns the current KPIs.
func (uc *DashboardUseCase) Execute(ctx context.Context) (model.DashboardKPIs, error) {
	if uc.cache != nil {
		if kpis, ok := uc.cache.Get(ctx); ok {
			return kpis, nil
		}
	}

	kpis, err := uc.reporting.KPIs(ctx, time.Now().UTC())
	if err != nil {
		return model.DashboardKPIs{}, fmt.Errorf("aggregate KPIs: %w", err)
	}

	if uc.cache != nil {
		_ = uc.cache.Set(ctx, kpis, uc.ttl)
	}
	return kpis, nil
}
