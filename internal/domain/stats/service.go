package stats

import "context"

type Service interface {
	// PeriodStats rolls up committed attendance-day records over the
	// requested window.
	PeriodStats(ctx context.Context, req *PeriodRequest) (*PeriodStats, error)
	// MonthlyStats reads the maintained monthly counter summaries.
	MonthlyStats(ctx context.Context, req *MonthlyRequest) (*MonthlyResponse, error)
	// EmployeeSummary combines one employee's lifetime counters, recent
	// monthly counter rows, and exception log counts over the same window.
	EmployeeSummary(ctx context.Context, req *EmployeeSummaryRequest) (*EmployeeSummaryResponse, error)
}
