package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/orgdesk/orgdesk-backend-go/internal/domain/attendance"
	"github.com/orgdesk/orgdesk-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.date, a.check_in, a.check_out,
	a.worked_minutes, a.late_minutes, a.status, a.mode,
	a.timezone_used, a.timezone_fallback, a.created_at, a.updated_at`

func scanAttendance(row pgx.Row, att *attendance.AttendanceDay, withName bool) error {
	dest := []interface{}{
		&att.ID, &att.EmployeeID, &att.Date, &att.CheckIn, &att.CheckOut,
		&att.WorkedMinutes, &att.LateMinutes, &att.Status, &att.Mode,
		&att.TimezoneUsed, &att.TimezoneFallback, &att.CreatedAt, &att.UpdatedAt,
	}
	if withName {
		dest = append(dest, &att.EmployeeName)
	}
	return row.Scan(dest...)
}

// Create implements attendance.Repository.
func (a *attendanceRepository) Create(ctx context.Context, day *attendance.AttendanceDay) error {
	q := GetQuerier(ctx, a.db)

	if day.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("generate attendance id: %w", err)
		}
		day.ID = id.String()
	}

	query := `
		INSERT INTO attendance_days (
			id, employee_id, date, check_in, check_out,
			worked_minutes, late_minutes, status, mode,
			timezone_used, timezone_fallback
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		day.ID,
		day.EmployeeID,
		day.Date,
		day.CheckIn,
		day.CheckOut,
		day.WorkedMinutes,
		day.LateMinutes,
		day.Status,
		day.Mode,
		day.TimezoneUsed,
		day.TimezoneFallback,
	).Scan(&day.CreatedAt, &day.UpdatedAt)

	if err != nil {
		// Concurrent check-ins race past the in-transaction guards; the
		// unique (employee_id, date) index decides the loser.
		if isUniqueViolation(err) {
			return attendance.ErrAlreadyOpen
		}
		return fmt.Errorf("failed to create attendance day: %w", err)
	}

	return nil
}

// Update implements attendance.Repository.
func (a *attendanceRepository) Update(ctx context.Context, day *attendance.AttendanceDay) error {
	q := GetQuerier(ctx, a.db)

	updates := make([]string, 0)
	args := make([]interface{}, 0)
	argIdx := 1

	if day.CheckIn != nil {
		updates = append(updates, fmt.Sprintf("check_in = $%d", argIdx))
		args = append(args, day.CheckIn)
		argIdx++
	}
	if day.CheckOut != nil {
		updates = append(updates, fmt.Sprintf("check_out = $%d", argIdx))
		args = append(args, day.CheckOut)
		argIdx++
	}
	if day.WorkedMinutes != nil {
		updates = append(updates, fmt.Sprintf("worked_minutes = $%d", argIdx))
		args = append(args, day.WorkedMinutes)
		argIdx++
	}
	if day.LateMinutes != nil {
		updates = append(updates, fmt.Sprintf("late_minutes = $%d", argIdx))
		args = append(args, day.LateMinutes)
		argIdx++
	}
	if day.Status != "" {
		updates = append(updates, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, day.Status)
		argIdx++
	}
	if day.Mode != nil {
		updates = append(updates, fmt.Sprintf("mode = $%d", argIdx))
		args = append(args, day.Mode)
		argIdx++
	}

	if len(updates) == 0 {
		return fmt.Errorf("no updatable fields provided for attendance update")
	}

	updates = append(updates, fmt.Sprintf("updated_at = $%d", argIdx))
	args = append(args, time.Now().UTC())
	argIdx++

	args = append(args, day.ID)

	query := "UPDATE attendance_days SET " + strings.Join(updates, ", ") +
		fmt.Sprintf(" WHERE id = $%d RETURNING id", argIdx)

	var updatedID string
	if err := q.QueryRow(ctx, query, args...).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to update attendance day: %w", err)
	}

	return nil
}

// GetByID implements attendance.Repository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (*attendance.AttendanceDay, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `,
			e.full_name AS employee_name
		FROM attendance_days a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1
	`

	var att attendance.AttendanceDay
	err := scanAttendance(q.QueryRow(ctx, query, id), &att, true)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, attendance.ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("failed to get attendance day by id: %w", err)
	}

	return &att, nil
}

// GetByEmployeeAndDate implements attendance.Repository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.AttendanceDay, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_days a
		WHERE a.employee_id = $1
		  AND a.date = $2
		LIMIT 1
	`

	var att attendance.AttendanceDay
	err := scanAttendance(q.QueryRow(ctx, query, employeeID, date), &att, false)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, attendance.ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("failed to get attendance day by employee and date: %w", err)
	}

	return &att, nil
}

// GetOpenSession implements attendance.Repository.
func (a *attendanceRepository) GetOpenSession(ctx context.Context, employeeID string, date time.Time) (*attendance.AttendanceDay, error) {
	q := GetQuerier(ctx, a.db)

	// Date window of one day either side covers night-shift sessions whose
	// attendance-day differs from the checkout calendar day.
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_days a
		WHERE a.employee_id = $1
		  AND a.check_in IS NOT NULL
		  AND a.check_out IS NULL
		  AND a.date BETWEEN $2 AND $3
		ORDER BY a.check_in DESC
		LIMIT 1
	`

	var att attendance.AttendanceDay
	err := scanAttendance(
		q.QueryRow(ctx, query, employeeID, date.AddDate(0, 0, -1), date.AddDate(0, 0, 1)),
		&att, false,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, attendance.ErrNoOpenSession
		}
		return nil, fmt.Errorf("failed to get open session: %w", err)
	}

	return &att, nil
}

// HasAnyOpenSession implements attendance.Repository.
func (a *attendanceRepository) HasAnyOpenSession(ctx context.Context, employeeID string) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM attendance_days
			WHERE employee_id = $1
			  AND check_in IS NOT NULL
			  AND check_out IS NULL
		)
	`

	var open bool
	if err := q.QueryRow(ctx, query, employeeID).Scan(&open); err != nil {
		return false, fmt.Errorf("failed to check for open session: %w", err)
	}

	return open, nil
}

// ListOpenSessions implements attendance.Repository.
func (a *attendanceRepository) ListOpenSessions(ctx context.Context, date time.Time, employeeIDs []string) ([]attendance.AttendanceDay, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "a.check_in IS NOT NULL AND a.check_out IS NULL AND a.date BETWEEN $1 AND $2"
	args := []interface{}{date.AddDate(0, 0, -1), date.AddDate(0, 0, 1)}
	if len(employeeIDs) > 0 {
		baseWhere += " AND a.employee_id = ANY($3)"
		args = append(args, employeeIDs)
	}

	query := `
		SELECT ` + attendanceColumns + `,
			e.full_name AS employee_name
		FROM attendance_days a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE ` + baseWhere + `
		ORDER BY a.employee_id
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query open sessions: %w", err)
	}
	defer rows.Close()

	var sessions []attendance.AttendanceDay
	for rows.Next() {
		var att attendance.AttendanceDay
		if err := scanAttendance(rows, &att, true); err != nil {
			return nil, fmt.Errorf("failed to scan open session: %w", err)
		}
		sessions = append(sessions, att)
	}

	return sessions, nil
}

// List implements attendance.Repository.
func (a *attendanceRepository) List(ctx context.Context, filter *attendance.Filter) ([]attendance.AttendanceDay, int64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		baseWhere += fmt.Sprintf(" AND e.full_name ILIKE $%d", argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM attendance_days a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance days: %w", err)
	}

	orderByField := "a.date"
	switch filter.SortBy {
	case "employee_name":
		orderByField = "e.full_name"
	case "check_in":
		orderByField = "a.check_in"
	case "check_out":
		orderByField = "a.check_out"
	case "status":
		orderByField = "a.status"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT `+attendanceColumns+`,
			e.full_name AS employee_name
		FROM attendance_days a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendance days: %w", err)
	}
	defer rows.Close()

	var days []attendance.AttendanceDay
	for rows.Next() {
		var att attendance.AttendanceDay
		if err := scanAttendance(rows, &att, true); err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance day: %w", err)
		}
		days = append(days, att)
	}

	return days, total, nil
}

// ListMissingForDate implements attendance.Repository.
func (a *attendanceRepository) ListMissingForDate(ctx context.Context, date time.Time) ([]string, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT e.id
		FROM employees e
		WHERE e.active = true
		  AND NOT EXISTS (
			SELECT 1 FROM attendance_days a
			WHERE a.employee_id = e.id AND a.date = $1
		  )
		  AND NOT EXISTS (
			SELECT 1 FROM leave_logs l
			WHERE l.employee_id = e.id
			  AND l.status = 'approved'
			  AND $1 BETWEEN l.start_date AND l.end_date
		  )
		ORDER BY e.id
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query missing employees: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// AdjustCounters implements attendance.Repository.
func (a *attendanceRepository) AdjustCounters(ctx context.Context, employeeID string, month string, delta attendance.CounterDelta) error {
	if delta.IsZero() {
		return nil
	}

	q := GetQuerier(ctx, a.db)

	lifetimeQuery := `
		INSERT INTO attendance_summaries (
			employee_id, present_days, absent_days, late_days, leave_days, half_days, remote_days
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (employee_id) DO UPDATE SET
			present_days = attendance_summaries.present_days + EXCLUDED.present_days,
			absent_days  = attendance_summaries.absent_days + EXCLUDED.absent_days,
			late_days    = attendance_summaries.late_days + EXCLUDED.late_days,
			leave_days   = attendance_summaries.leave_days + EXCLUDED.leave_days,
			half_days    = attendance_summaries.half_days + EXCLUDED.half_days,
			remote_days  = attendance_summaries.remote_days + EXCLUDED.remote_days,
			updated_at   = NOW()
	`
	if _, err := q.Exec(ctx, lifetimeQuery, employeeID,
		delta.Present, delta.Absent, delta.Late, delta.Leave, delta.Half, delta.Remote); err != nil {
		return fmt.Errorf("failed to adjust lifetime counters: %w", err)
	}

	monthlyQuery := `
		INSERT INTO monthly_summaries (
			employee_id, month, present_days, absent_days, late_days, leave_days, half_days, remote_days
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (employee_id, month) DO UPDATE SET
			present_days = monthly_summaries.present_days + EXCLUDED.present_days,
			absent_days  = monthly_summaries.absent_days + EXCLUDED.absent_days,
			late_days    = monthly_summaries.late_days + EXCLUDED.late_days,
			leave_days   = monthly_summaries.leave_days + EXCLUDED.leave_days,
			half_days    = monthly_summaries.half_days + EXCLUDED.half_days,
			remote_days  = monthly_summaries.remote_days + EXCLUDED.remote_days,
			updated_at   = NOW()
	`
	if _, err := q.Exec(ctx, monthlyQuery, employeeID, month,
		delta.Present, delta.Absent, delta.Late, delta.Leave, delta.Half, delta.Remote); err != nil {
		return fmt.Errorf("failed to adjust monthly counters: %w", err)
	}

	return nil
}

// GetSummary implements attendance.Repository.
func (a *attendanceRepository) GetSummary(ctx context.Context, employeeID string) (*attendance.Summary, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT employee_id, present_days, absent_days, late_days, leave_days, half_days, remote_days
		FROM attendance_summaries
		WHERE employee_id = $1
	`

	var s attendance.Summary
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&s.EmployeeID, &s.PresentDays, &s.AbsentDays, &s.LateDays,
		&s.LeaveDays, &s.HalfDays, &s.RemoteDays,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return &attendance.Summary{EmployeeID: employeeID}, nil
		}
		return nil, fmt.Errorf("failed to get attendance summary: %w", err)
	}

	return &s, nil
}

// GetMonthlySummaries implements attendance.Repository.
func (a *attendanceRepository) GetMonthlySummaries(ctx context.Context, employeeID string, months []string) ([]attendance.MonthlySummary, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT employee_id, month, present_days, absent_days, late_days, leave_days, half_days, remote_days
		FROM monthly_summaries
		WHERE employee_id = $1
		  AND month = ANY($2)
		ORDER BY month
	`

	rows, err := q.Query(ctx, query, employeeID, months)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly summaries: %w", err)
	}
	defer rows.Close()

	var summaries []attendance.MonthlySummary
	for rows.Next() {
		var s attendance.MonthlySummary
		if err := rows.Scan(
			&s.EmployeeID, &s.Month, &s.TotalPresent, &s.TotalAbsent, &s.TotalLate,
			&s.TotalLeave, &s.TotalHalf, &s.TotalRemote,
		); err != nil {
			return nil, fmt.Errorf("failed to scan monthly summary: %w", err)
		}
		summaries = append(summaries, s)
	}

	return summaries, nil
}

// IsHoliday implements attendance.Repository.
func (a *attendanceRepository) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT EXISTS (SELECT 1 FROM holidays WHERE date = $1)`

	var isHoliday bool
	if err := q.QueryRow(ctx, query, date).Scan(&isHoliday); err != nil {
		return false, fmt.Errorf("failed to check holiday: %w", err)
	}

	return isHoliday, nil
}
