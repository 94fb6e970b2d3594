package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/saturnino-fabrica-de-software/presente/internal/domain"
)

// AttendanceRepository is the durable attendance ledger. The
// UNIQUE(user_id, date) constraint is what makes TryRecord linearizable:
// racing inserts for the same identity and day resolve inside the
// database, never by a check-then-insert in this process.
type AttendanceRepository struct {
	pool PgxPool
}

func NewAttendanceRepository(pool PgxPool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// TryRecord inserts one attendance event for identity derived from now.
// It returns true when the event was written and false when the ledger
// already held an event for this identity today. The false case is an
// expected outcome callers branch on, not an error.
func (r *AttendanceRepository) TryRecord(ctx context.Context, identity domain.Identity, confidence float64, source string, now time.Time) (bool, error) {
	query := `
		INSERT INTO attendance (user_id, name, department, date, time, confidence, source)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		identity.ID,
		identity.Name,
		identity.Department,
		domain.EventDate(now),
		domain.EventTime(now),
		confidence,
		source,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("record attendance: %w", err)
	}

	return true, nil
}

// ListToday returns today's events in arbitrary order.
func (r *AttendanceRepository) ListToday(ctx context.Context, now time.Time) ([]domain.AttendanceEvent, error) {
	query := `
		SELECT id, user_id, name, department, date, time, confidence, source
		FROM attendance
		WHERE date = $1
	`

	return r.queryEvents(ctx, query, domain.EventDate(now))
}

// ListAll returns every event, most recent first.
func (r *AttendanceRepository) ListAll(ctx context.Context) ([]domain.AttendanceEvent, error) {
	query := `
		SELECT id, user_id, name, department, date, time, confidence, source
		FROM attendance
		ORDER BY date DESC, time DESC
	`

	return r.queryEvents(ctx, query)
}

func (r *AttendanceRepository) queryEvents(ctx context.Context, query string, args ...interface{}) ([]domain.AttendanceEvent, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attendance: %w", err)
	}
	defer rows.Close()

	var events []domain.AttendanceEvent
	for rows.Next() {
		var ev domain.AttendanceEvent
		if err := rows.Scan(
			&ev.ID,
			&ev.UserID,
			&ev.Name,
			&ev.Department,
			&ev.Date,
			&ev.Time,
			&ev.Confidence,
			&ev.Source,
		); err != nil {
			return nil, fmt.Errorf("scan attendance event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attendance: %w", err)
	}

	return events, nil
}

// Trend returns the distinct-identity count per date for the most recent
// days dates that have events, newest first.
func (r *AttendanceRepository) Trend(ctx context.Context, days int) ([]domain.TrendPoint, error) {
	query := `
		SELECT date, COUNT(DISTINCT user_id) AS count
		FROM attendance
		GROUP BY date
		ORDER BY date DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, days)
	if err != nil {
		return nil, fmt.Errorf("query attendance trend: %w", err)
	}
	defer rows.Close()

	var trend []domain.TrendPoint
	for rows.Next() {
		var p domain.TrendPoint
		if err := rows.Scan(&p.Date, &p.Count); err != nil {
			return nil, fmt.Errorf("scan trend point: %w", err)
		}
		trend = append(trend, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trend: %w", err)
	}

	return trend, nil
}

// DepartmentBreakdown returns today's distinct-identity count per department.
func (r *AttendanceRepository) DepartmentBreakdown(ctx context.Context, now time.Time) ([]domain.DepartmentCount, error) {
	query := `
		SELECT department, COUNT(DISTINCT user_id) AS count
		FROM attendance
		WHERE date = $1
		GROUP BY department
	`

	rows, err := r.pool.Query(ctx, query, domain.EventDate(now))
	if err != nil {
		return nil, fmt.Errorf("query department breakdown: %w", err)
	}
	defer rows.Close()

	var breakdown []domain.DepartmentCount
	for rows.Next() {
		var d domain.DepartmentCount
		if err := rows.Scan(&d.Department, &d.Count); err != nil {
			return nil, fmt.Errorf("scan department count: %w", err)
		}
		breakdown = append(breakdown, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate department breakdown: %w", err)
	}

	return breakdown, nil
}

// DeleteForUser removes every event for userID. Part of the identity
// cascade delete; events are never deleted any other way.
func (r *AttendanceRepository) DeleteForUser(ctx context.Context, userID string) error {
	query := `
		DELETE FROM attendance
		WHERE user_id = $1
	`

	if _, err := r.pool.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("delete attendance for user: %w", err)
	}

	return nil
}
