package admin

import (
	"context"
	"time"
)

type DashboardRepository interface {
	Counts(ctx context.Context) (*Counts, error)
	// AppointmentsOn counts appointments booked on the calendar day of day.
	AppointmentsOn(ctx context.Context, day time.Time) (int64, error)
}
