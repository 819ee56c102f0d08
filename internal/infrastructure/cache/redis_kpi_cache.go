package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/model"
)

const kpiKey = "dashboard:kpis"

// RedisKPICache implements port.KPICache over Redis. Cache failures are
// logged and treated as misses so the dashboard keeps working without Redis.
type RedisKPICache struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisKPICache creates a Redis-backed KPI cache.
func NewRedisKPICache(client *redis.Client, logger *slog.Logger) *RedisKPICache {
	return &RedisKPICache{client: client, logger: logger}
}

// Get returns the cached KPI snapshot, or false on miss or error.
func (c *RedisKPICache) Get(ctx context.Context) (model.DashboardKPIs, bool) {
	raw, err := c.client.Get(ctx, kpiKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("kpi cache read failed", "error", err)
		}
		return model.DashboardKPIs{}, false
	}
	var kpis model.DashboardKPIs
	if err := json.Unmarshal(raw, &kpis); err != nil {
		c.logger.Warn("kpi cache entry corrupt", "error", err)
		return model.DashboardKPIs{}, false
	}
	return kpis, true
}

// Set stores the KPI snapshot with the given TTL.
func (c *RedisKPICache) Set(ctx context.Context, kpis model.DashboardKPIs, ttl time.Duration) error {
	raw, err := json.Marshal(kpis)
	if err != nil {
		return fmt.Errorf("marshal KPIs: %w", err)
	}
	if err := c.client.Set(ctx, kpiKey, raw, ttl).Err(); err != nil {
		return fmt.Errorf("store KPIs: %w", err)
	}
	return nil
}
