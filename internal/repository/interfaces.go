package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/saturnino-fabrica-de-software/presente/internal/domain"
)

// PgxPool is the database handle the repositories run on, compatible with
// pgxpool.Pool and pgxmock.
type PgxPool interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
}

// UserRepositoryInterface defines operations for enrolled-user data access
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// AttendanceRepositoryInterface defines operations on the attendance ledger
type AttendanceRepositoryInterface interface {
	TryRecord(ctx context.Context, identity domain.Identity, confidence float64, source string, now time.Time) (bool, error)
	ListToday(ctx context.Context, now time.Time) ([]domain.AttendanceEvent, error)
	ListAll(ctx context.Context) ([]domain.AttendanceEvent, error)
	Trend(ctx context.Context, days int) ([]domain.TrendPoint, error)
	DepartmentBreakdown(ctx context.Context, now time.Time) ([]domain.DepartmentCount, error)
	DeleteForUser(ctx context.Context, userID string) error
}

// RecognitionAuditRepositoryInterface defines operations for query audit logging
type RecognitionAuditRepositoryInterface interface {
	Create(ctx context.Context, audit *domain.RecognitionAudit) error
}
