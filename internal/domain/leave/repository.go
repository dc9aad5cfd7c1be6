package leave

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, log *Log) error
	Update(ctx context.Context, log *Log) error
	GetByID(ctx context.Context, id string) (*Log, error)
	List(ctx context.Context, filter *Filter) ([]Log, int64, error)
	// HasOverlap reports whether the employee already has a pending or
	// approved leave intersecting [start, end]. excludeID skips one log,
	// for re-checks on the log itself.
	HasOverlap(ctx context.Context, employeeID string, start, end time.Time, excludeID string) (bool, error)
	// HasApprovedLeaveOn reports whether an approved leave covers the date.
	HasApprovedLeaveOn(ctx context.Context, employeeID string, date time.Time) (bool, error)
}
