package stats

import (
	"context"
	"time"

	"github.com/orgdesk/orgdesk-backend-go/internal/domain/attendance"
	"github.com/orgdesk/orgdesk-backend-go/internal/domain/employee"
	"github.com/orgdesk/orgdesk-backend-go/internal/domain/exception"
	"github.com/orgdesk/orgdesk-backend-go/internal/domain/stats"
	"github.com/orgdesk/orgdesk-backend-go/internal/pkg/database"
	"github.com/orgdesk/orgdesk-backend-go/internal/pkg/validator"
)

const defaultSummaryMonths = 6

type StatsServiceImpl struct {
	db             *database.DB
	statsRepo      stats.Repository
	attendanceRepo attendance.Repository
	employeeRepo   employee.Repository
	exceptionRepo  exception.Repository

	now func() time.Time
}

func NewStatsService(
	db *database.DB,
	statsRepo stats.Repository,
	attendanceRepo attendance.Repository,
	employeeRepo employee.Repository,
	exceptionRepo exception.Repository,
) stats.Service {
	return &StatsServiceImpl{
		db:             db,
		statsRepo:      statsRepo,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		exceptionRepo:  exceptionRepo,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// PeriodStats implements stats.Service.
func (s *StatsServiceImpl) PeriodStats(ctx context.Context, req *stats.PeriodRequest) (*stats.PeriodStats, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	anchor := s.now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, validator.ValidationErrors{{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			}}
		}
		anchor = parsed
	}

	start, end := stats.Range(req.Period, anchor)

	records, err := s.statsRepo.ListDayRecords(ctx, start, end, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	return stats.Rollup(records, req.Period,
		start.Format("2006-01-02"), end.Format("2006-01-02"), req.Breakdown), nil
}

// MonthlyStats implements stats.Service.
func (s *StatsServiceImpl) MonthlyStats(ctx context.Context, req *stats.MonthlyRequest) (*stats.MonthlyResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	month := req.Month
	if month == "" {
		month = s.now().Format("2006-01")
	}

	employees, err := s.statsRepo.ListMonthlySummaries(ctx, month, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	return &stats.MonthlyResponse{
		Month:     month,
		Employees: employees,
	}, nil
}

// EmployeeSummary implements stats.Service.
func (s *StatsServiceImpl) EmployeeSummary(ctx context.Context, req *stats.EmployeeSummaryRequest) (*stats.EmployeeSummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	months := req.Months
	if months == 0 {
		months = defaultSummaryMonths
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	summary, err := s.attendanceRepo.GetSummary(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	// Anchor on the first of the current month so month arithmetic never
	// rolls past short months.
	anchor := s.now()
	anchor = time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)

	keys := make([]string, 0, months)
	for i := months - 1; i >= 0; i-- {
		keys = append(keys, anchor.AddDate(0, -i, 0).Format("2006-01"))
	}

	rows, err := s.attendanceRepo.GetMonthlySummaries(ctx, req.EmployeeID, keys)
	if err != nil {
		return nil, err
	}

	monthly := make([]stats.MonthlyEmployeeStats, 0, len(rows))
	for _, row := range rows {
		m := stats.MonthlyEmployeeStats{
			EmployeeID:   row.EmployeeID,
			EmployeeName: emp.FullName,
			Month:        row.Month,
			PresentDays:  row.TotalPresent,
			AbsentDays:   row.TotalAbsent,
			LateDays:     row.TotalLate,
			LeaveDays:    row.TotalLeave,
			HalfDays:     row.TotalHalf,
			RemoteDays:   row.TotalRemote,
		}
		total := m.PresentDays + m.AbsentDays + m.LeaveDays
		if total > 0 {
			m.Rate = float64(m.PresentDays) / float64(total) * 100
		}
		monthly = append(monthly, m)
	}

	windowStart := anchor.AddDate(0, -(months - 1), 0)
	windowEnd := anchor.AddDate(0, 1, -1)

	counts, err := s.exceptionRepo.CountByEmployee(ctx, req.EmployeeID, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}

	return &stats.EmployeeSummaryResponse{
		EmployeeID:   req.EmployeeID,
		EmployeeName: emp.FullName,
		Lifetime: stats.LifetimeStats{
			PresentDays: summary.PresentDays,
			AbsentDays:  summary.AbsentDays,
			LateDays:    summary.LateDays,
			LeaveDays:   summary.LeaveDays,
			HalfDays:    summary.HalfDays,
			RemoteDays:  summary.RemoteDays,
		},
		Months: monthly,
		Exceptions: stats.ExceptionCounts{
			Late:    counts[exception.KindLate],
			HalfDay: counts[exception.KindHalfDay],
		},
	}, nil
}
