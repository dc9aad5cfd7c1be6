package attendance

import "context"

type Service interface {
	CheckIn(ctx context.Context, req *CheckInRequest) (*AttendanceDayResponse, error)
	CheckOut(ctx context.Context, req *CheckOutRequest) (*AttendanceDayResponse, error)
	// BulkCheckout closes every open session on the resolved day for the
	// requested employees (or all employees when none are given). Failures
	// on one employee never abort the sweep.
	BulkCheckout(ctx context.Context, req *BulkCheckoutRequest) (*BulkCheckoutResult, error)
	// MarkAbsentees writes absent records for active employees who never
	// checked in on the given day and are not on approved leave.
	MarkAbsentees(ctx context.Context, date string) (int, error)
	List(ctx context.Context, filter *Filter) (*ListResponse, error)
	GetByID(ctx context.Context, id string) (*AttendanceDayResponse, error)
}
