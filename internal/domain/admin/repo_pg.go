package admin

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/platform/db"
	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/platform/store"
)

type queryable interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type dashboardRepoPG struct{ pool *pgxpool.Pool }

func NewDashboardRepoPG(pool *pgxpool.Pool) DashboardRepository {
	return &dashboardRepoPG{pool: pool}
}

func (r *dashboardRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

// One statement so the five counts come from a single snapshot.
const countsQuery = `SELECT
	(SELECT COUNT(*) FROM patients),
	(SELECT COUNT(*) FROM doctors),
	(SELECT COUNT(*) FROM appointments),
	(SELECT COUNT(*) FROM treatments),
	(SELECT COUNT(*) FROM billing)`

func (r *dashboardRepoPG) Counts(ctx context.Context) (*Counts, error) {
	var c Counts
	err := r.conn(ctx).QueryRow(ctx, countsQuery).
		Scan(&c.Patients, &c.Doctors, &c.Appointments, &c.Treatments, &c.Billing)
	if err != nil {
		return nil, store.Translate(err)
	}
	return &c, nil
}

func (r *dashboardRepoPG) AppointmentsOn(ctx context.Context, day time.Time) (int64, error) {
	var n int64
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM appointments WHERE appointment_date = $1::date`,
		day.Format(store.DateLayout)).Scan(&n)
	if err != nil {
		return 0, store.Translate(err)
	}
	return n, nil
}
