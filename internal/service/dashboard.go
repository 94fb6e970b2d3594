package service

import (
	"context"
	"time"

	"github.com/saturnino-fabrica-de-software/presente/internal/domain"
)

type UserCounterInterface interface {
	Count(ctx context.Context) (int, error)
	List(ctx context.Context) ([]domain.User, error)
}

type AttendanceReaderInterface interface {
	ListToday(ctx context.Context, now time.Time) ([]domain.AttendanceEvent, error)
	ListAll(ctx context.Context) ([]domain.AttendanceEvent, error)
	Trend(ctx context.Context, days int) ([]domain.TrendPoint, error)
	DepartmentBreakdown(ctx context.Context, now time.Time) ([]domain.DepartmentCount, error)
}

// Summary are the headline dashboard numbers.
type Summary struct {
	TotalUsers    int     `json:"total_users"`
	PresentToday  int     `json:"present_today"`
	AttendancePct float64 `json:"attendance_pct"`
}

// DashboardService serves the read-only aggregate queries behind the
// dashboard and analytics views. It never mutates anything.
type DashboardService struct {
	users      UserCounterInterface
	attendance AttendanceReaderInterface
}

func NewDashboardService(users UserCounterInterface, attendance AttendanceReaderInterface) *DashboardService {
	return &DashboardService{
		users:      users,
		attendance: attendance,
	}
}

func (s *DashboardService) Summary(ctx context.Context, now time.Time) (*Summary, error) {
	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}

	today, err := s.attendance.ListToday(ctx, now)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		TotalUsers:   total,
		PresentToday: len(today),
	}
	if total > 0 {
		summary.AttendancePct = float64(len(today)) / float64(total) * 100
	}

	return summary, nil
}

func (s *DashboardService) Users(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *DashboardService) Records(ctx context.Context) ([]domain.AttendanceEvent, error) {
	return s.attendance.ListAll(ctx)
}

func (s *DashboardService) Trend(ctx context.Context, days int) ([]domain.TrendPoint, error) {
	return s.attendance.Trend(ctx, days)
}

func (s *DashboardService) DepartmentBreakdown(ctx context.Context, now time.Time) ([]domain.DepartmentCount, error) {
	return s.attendance.DepartmentBreakdown(ctx, now)
}
