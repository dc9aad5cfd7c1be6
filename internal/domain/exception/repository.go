package exception

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, log *Log) error
	Update(ctx context.Context, log *Log) error
	GetByID(ctx context.Context, id string) (*Log, error)
	// GetByEmployeeDateKind is the duplicate guard lookup: at most one log
	// exists per (employee, date, kind).
	GetByEmployeeDateKind(ctx context.Context, employeeID string, date time.Time, kind Kind) (*Log, error)
	List(ctx context.Context, filter *Filter) ([]Log, int64, error)
	// CountByEmployee returns per-kind log counts for an employee within a
	// date range, for the stats breakdowns.
	CountByEmployee(ctx context.Context, employeeID string, start, end time.Time) (map[Kind]int, error)
}
