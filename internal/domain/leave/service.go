package leave

import "context"

type Service interface {
	Create(ctx context.Context, req *CreateRequest) (*LogResponse, error)
	List(ctx context.Context, filter *Filter) (*ListResponse, error)
	GetByID(ctx context.Context, id string) (*LogResponse, error)
	// Review moves a log along one transition edge. Approval charges the
	// leave-day counters across the span; cancelling an approved leave
	// reverses them exactly. Log update and counter moves commit together.
	Review(ctx context.Context, req *ReviewRequest) (*LogResponse, error)
}
