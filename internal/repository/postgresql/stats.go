package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/orgdesk/orgdesk-backend-go/internal/domain/stats"
	"github.com/orgdesk/orgdesk-backend-go/internal/pkg/database"
)

type statsRepository struct {
	db *database.DB
}

func NewStatsRepository(db *database.DB) stats.Repository {
	return &statsRepository{db: db}
}

// ListDayRecords implements stats.Repository.
func (r *statsRepository) ListDayRecords(ctx context.Context, start, end time.Time, employeeID *string) ([]stats.DayRecord, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "a.date BETWEEN $1 AND $2"
	args := []interface{}{start, end}
	if employeeID != nil && *employeeID != "" {
		baseWhere += " AND a.employee_id = $3"
		args = append(args, *employeeID)
	}

	query := `
		SELECT a.employee_id, COALESCE(e.full_name, ''), a.date, a.status
		FROM attendance_days a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE ` + baseWhere + `
		ORDER BY a.date, a.employee_id
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query day records: %w", err)
	}
	defer rows.Close()

	var records []stats.DayRecord
	for rows.Next() {
		var rec stats.DayRecord
		if err := rows.Scan(&rec.EmployeeID, &rec.EmployeeName, &rec.Date, &rec.Status); err != nil {
			return nil, fmt.Errorf("failed to scan day record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// ListMonthlySummaries implements stats.Repository.
func (r *statsRepository) ListMonthlySummaries(ctx context.Context, month string, employeeID *string) ([]stats.MonthlyEmployeeStats, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "m.month = $1"
	args := []interface{}{month}
	if employeeID != nil && *employeeID != "" {
		baseWhere += " AND m.employee_id = $2"
		args = append(args, *employeeID)
	}

	query := `
		SELECT m.employee_id, COALESCE(e.full_name, ''), m.month,
			   m.present_days, m.absent_days, m.late_days, m.leave_days, m.half_days, m.remote_days
		FROM monthly_summaries m
		LEFT JOIN employees e ON e.id = m.employee_id
		WHERE ` + baseWhere + `
		ORDER BY e.full_name
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly summaries: %w", err)
	}
	defer rows.Close()

	var out []stats.MonthlyEmployeeStats
	for rows.Next() {
		var s stats.MonthlyEmployeeStats
		if err := rows.Scan(
			&s.EmployeeID, &s.EmployeeName, &s.Month,
			&s.PresentDays, &s.AbsentDays, &s.LateDays, &s.LeaveDays, &s.HalfDays, &s.RemoteDays,
		); err != nil {
			return nil, fmt.Errorf("failed to scan monthly summary: %w", err)
		}
		total := s.PresentDays + s.AbsentDays + s.LeaveDays
		if total > 0 {
			s.Rate = float64(s.PresentDays) / float64(total) * 100
		}
		out = append(out, s)
	}

	return out, nil
}
