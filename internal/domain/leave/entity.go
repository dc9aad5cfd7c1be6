package leave

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

var ValidStatuses = []string{
	string(StatusPending),
	string(StatusApproved),
	string(StatusRejected),
	string(StatusCancelled),
}

var ValidTypes = []string{"annual", "sick", "personal", "unpaid", "other"}

// Log is one leave request span. Terminal states are immutable except for
// the approved to cancelled edge.
type Log struct {
	ID         string
	EmployeeID string

	StartDate time.Time
	EndDate   time.Time
	DayCount  int

	Type   string
	Reason *string

	Status Status

	ReviewerID *string
	ReviewedAt *time.Time
	ReviewNote *string

	CreatedAt time.Time
	UpdatedAt time.Time

	EmployeeName *string
}
