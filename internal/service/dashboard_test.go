package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/presente/internal/domain"
)

type MockUserCounter struct {
	mock.Mock
}

func (m *MockUserCounter) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockUserCounter) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

type MockAttendanceReader struct {
	mock.Mock
}

func (m *MockAttendanceReader) ListToday(ctx context.Context, now time.Time) ([]domain.AttendanceEvent, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AttendanceEvent), args.Error(1)
}

func (m *MockAttendanceReader) ListAll(ctx context.Context) ([]domain.AttendanceEvent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AttendanceEvent), args.Error(1)
}

func (m *MockAttendanceReader) Trend(ctx context.Context, days int) ([]domain.TrendPoint, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrendPoint), args.Error(1)
}

func (m *MockAttendanceReader) DepartmentBreakdown(ctx context.Context, now time.Time) ([]domain.DepartmentCount, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DepartmentCount), args.Error(1)
}

var dashNow = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

func TestDashboardService_Summary(t *testing.T) {
	users := new(MockUserCounter)
	attendance := new(MockAttendanceReader)

	users.On("Count", mock.Anything).Return(10, nil)
	attendance.On("ListToday", mock.Anything, dashNow).Return([]domain.AttendanceEvent{
		{UserID: "A001"}, {UserID: "A002"}, {UserID: "A003"},
	}, nil)

	svc := NewDashboardService(users, attendance)
	summary, err := svc.Summary(context.Background(), dashNow)
	require.NoError(t, err)

	assert.Equal(t, 10, summary.TotalUsers)
	assert.Equal(t, 3, summary.PresentToday)
	assert.InDelta(t, 30.0, summary.AttendancePct, 1e-9)
}

func TestDashboardService_Summary_NoUsers(t *testing.T) {
	users := new(MockUserCounter)
	attendance := new(MockAttendanceReader)

	users.On("Count", mock.Anything).Return(0, nil)
	attendance.On("ListToday", mock.Anything, dashNow).Return([]domain.AttendanceEvent{}, nil)

	svc := NewDashboardService(users, attendance)
	summary, err := svc.Summary(context.Background(), dashNow)
	require.NoError(t, err)

	assert.Zero(t, summary.AttendancePct)
}

func TestDashboardService_Trend(t *testing.T) {
	users := new(MockUserCounter)
	attendance := new(MockAttendanceReader)

	attendance.On("Trend", mock.Anything, 7).Return([]domain.TrendPoint{
		{Date: "2024-01-01", Count: 3},
	}, nil)

	svc := NewDashboardService(users, attendance)
	trend, err := svc.Trend(context.Background(), 7)
	require.NoError(t, err)

	require.Len(t, trend, 1)
	assert.Equal(t, 3, trend[0].Count)
}

func TestDashboardService_DepartmentBreakdown(t *testing.T) {
	users := new(MockUserCounter)
	attendance := new(MockAttendanceReader)

	attendance.On("DepartmentBreakdown", mock.Anything, dashNow).Return([]domain.DepartmentCount{
		{Department: "Engineering", Count: 2},
	}, nil)

	svc := NewDashboardService(users, attendance)
	breakdown, err := svc.DepartmentBreakdown(context.Background(), dashNow)
	require.NoError(t, err)

	require.Len(t, breakdown, 1)
	assert.Equal(t, "Engineering", breakdown[0].Department)
}
