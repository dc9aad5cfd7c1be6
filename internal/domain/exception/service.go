package exception

import "context"

type Service interface {
	List(ctx context.Context, filter *Filter) (*ListResponse, error)
	GetByID(ctx context.Context, id string) (*LogResponse, error)
	// SubmitReason attaches the employee's explanation to their own pending
	// log.
	SubmitReason(ctx context.Context, req *SubmitReasonRequest) (*LogResponse, error)
	// Review applies a reviewer action. The log update and any attendance
	// counter adjustment commit in one transaction.
	Review(ctx context.Context, req *ReviewRequest) (*LogResponse, error)
}
