package db

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// PoolUsage is a snapshot of the pool counters.
type PoolUsage struct {
	Open        int32  `json:"open"`
	Idle        int32  `json:"idle"`
	InUse       int32  `json:"in_use"`
	Max         int32  `json:"max"`
	Acquires    int64  `json:"acquires"`
	EmptyWaits  int64  `json:"empty_waits"`
	AcquireWait string `json:"acquire_wait"`
}

func usageOf(stat *pgxpool.Stat) *PoolUsage {
	return &PoolUsage{
		Open:        stat.TotalConns(),
		Idle:        stat.IdleConns(),
		InUse:       stat.AcquiredConns(),
		Max:         stat.MaxConns(),
		Acquires:    stat.AcquireCount(),
		EmptyWaits:  stat.EmptyAcquireCount(),
		AcquireWait: stat.AcquireDuration().String(),
	}
}

// StoreHealth is the body of the store health endpoint.
type StoreHealth struct {
	Status      string     `json:"status"`
	Schema      string     `json:"schema"`
	ForeignKeys bool       `json:"foreign_keys"`
	Error       string     `json:"error,omitempty"`
	Pool        *PoolUsage `json:"pool"`
}

// LivenessHandler answers as long as the process serves HTTP.
func LivenessHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
}

// HealthHandler checks that a pooled connection can be acquired, that it
// enforces foreign keys, and reports pool statistics.
func HealthHandler(pool *pgxpool.Pool, schema string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		h := StoreHealth{Status: "healthy", Schema: schema}
		if err := checkSession(ctx, pool); err != nil {
			h.Status = "unhealthy"
			h.Error = err.Error()
		} else {
			h.ForeignKeys = true
		}
		h.Pool = usageOf(pool.Stat())

		if h.Status != "healthy" {
			return c.JSON(http.StatusServiceUnavailable, h)
		}
		return c.JSON(http.StatusOK, h)
	}
}

func checkSession(ctx context.Context, pool *pgxpool.Pool) error {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()
	return EnforceForeignKeys(ctx, conn)
}
