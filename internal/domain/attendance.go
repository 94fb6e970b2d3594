package domain

import "time"

// Layouts the ledger stores dates and times with. They match the strings
// the original deployment wrote, so existing rows keep sorting correctly.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// AttendanceEvent is one accepted recognition for a user on a calendar day.
// (UserID, Date) is unique: at most one event per identity per day.
type AttendanceEvent struct {
	ID         int64   `json:"id"`
	UserID     string  `json:"user_id"`
	Name       string  `json:"name"`
	Department string  `json:"department"`
	Date       string  `json:"date"`
	Time       string  `json:"time"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
}

// TrendPoint is one day of the attendance trend: how many distinct
// identities were recorded on that date.
type TrendPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// DepartmentCount is today's distinct-identity count for one department.
type DepartmentCount struct {
	Department string `json:"department"`
	Count      int    `json:"count"`
}

// EventDate formats now with the ledger's date layout.
func EventDate(now time.Time) string {
	return now.Format(DateLayout)
}

// EventTime formats now with the ledger's time layout.
func EventTime(now time.Time) string {
	return now.Format(TimeLayout)
}
