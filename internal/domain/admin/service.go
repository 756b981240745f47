package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/platform/store"
)

type Service struct {
	dashboard DashboardRepository
	now       func() time.Time
}

func NewService(dashboard DashboardRepository) *Service {
	return &Service{dashboard: dashboard, now: time.Now}
}

func (s *Service) Dashboard(ctx context.Context) (*Counts, error) {
	c, err := s.dashboard.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("count records: %w", err)
	}
	return c, nil
}

// Census combines the dashboard counts with the number of appointments on
// the server's current calendar day.
func (s *Service) Census(ctx context.Context) (*Census, error) {
	c, err := s.Dashboard(ctx)
	if err != nil {
		return nil, err
	}
	today := s.now()
	n, err := s.dashboard.AppointmentsOn(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("count today's appointments: %w", err)
	}
	return &Census{Counts: *c, Day: today.Format(store.DateLayout), AppointmentsToday: n}, nil
}
