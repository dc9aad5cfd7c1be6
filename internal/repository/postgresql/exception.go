package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/orgdesk/orgdesk-backend-go/internal/domain/exception"
	"github.com/orgdesk/orgdesk-backend-go/internal/pkg/database"
)

type exceptionRepository struct {
	db *database.DB
}

func NewExceptionRepository(db *database.DB) exception.Repository {
	return &exceptionRepository{db: db}
}

const exceptionColumns = `
	l.id, l.attendance_id, l.employee_id, l.date, l.kind,
	l.minutes_late, l.half_period, l.reason, l.action_taken, l.justified,
	l.reviewer_id, l.reviewed_at, l.review_note, l.created_at, l.updated_at`

func scanException(row pgx.Row, log *exception.Log, withName bool) error {
	dest := []interface{}{
		&log.ID, &log.AttendanceID, &log.EmployeeID, &log.Date, &log.Kind,
		&log.MinutesLate, &log.HalfPeriod, &log.Reason, &log.ActionTaken, &log.Justified,
		&log.ReviewerID, &log.ReviewedAt, &log.ReviewNote, &log.CreatedAt, &log.UpdatedAt,
	}
	if withName {
		dest = append(dest, &log.EmployeeName)
	}
	return row.Scan(dest...)
}

// Create implements exception.Repository.
func (r *exceptionRepository) Create(ctx context.Context, log *exception.Log) error {
	q := GetQuerier(ctx, r.db)

	if log.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("generate exception log id: %w", err)
		}
		log.ID = id.String()
	}

	query := `
		INSERT INTO exception_logs (
			id, attendance_id, employee_id, date, kind,
			minutes_late, half_period, reason, action_taken, justified
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		log.ID,
		log.AttendanceID,
		log.EmployeeID,
		log.Date,
		log.Kind,
		log.MinutesLate,
		log.HalfPeriod,
		log.Reason,
		log.ActionTaken,
		log.Justified,
	).Scan(&log.CreatedAt, &log.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return exception.ErrDuplicateLog
		}
		return fmt.Errorf("failed to create exception log: %w", err)
	}

	return nil
}

// Update implements exception.Repository.
func (r *exceptionRepository) Update(ctx context.Context, log *exception.Log) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE exception_logs SET
			minutes_late = $1,
			reason       = $2,
			action_taken = $3,
			justified    = $4,
			reviewer_id  = $5,
			reviewed_at  = $6,
			review_note  = $7,
			updated_at   = $8
		WHERE id = $9
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		log.MinutesLate,
		log.Reason,
		log.ActionTaken,
		log.Justified,
		log.ReviewerID,
		log.ReviewedAt,
		log.ReviewNote,
		time.Now().UTC(),
		log.ID,
	).Scan(&updatedID)

	if err != nil {
		if err == pgx.ErrNoRows {
			return exception.ErrLogNotFound
		}
		return fmt.Errorf("failed to update exception log: %w", err)
	}

	return nil
}

// GetByID implements exception.Repository.
func (r *exceptionRepository) GetByID(ctx context.Context, id string) (*exception.Log, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + exceptionColumns + `,
			e.full_name AS employee_name
		FROM exception_logs l
		LEFT JOIN employees e ON e.id = l.employee_id
		WHERE l.id = $1
	`

	var log exception.Log
	if err := scanException(q.QueryRow(ctx, query, id), &log, true); err != nil {
		if err == pgx.ErrNoRows {
			return nil, exception.ErrLogNotFound
		}
		return nil, fmt.Errorf("failed to get exception log by id: %w", err)
	}

	return &log, nil
}

// GetByEmployeeDateKind implements exception.Repository.
func (r *exceptionRepository) GetByEmployeeDateKind(ctx context.Context, employeeID string, date time.Time, kind exception.Kind) (*exception.Log, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + exceptionColumns + `
		FROM exception_logs l
		WHERE l.employee_id = $1
		  AND l.date = $2
		  AND l.kind = $3
		LIMIT 1
	`

	var log exception.Log
	if err := scanException(q.QueryRow(ctx, query, employeeID, date, kind), &log, false); err != nil {
		if err == pgx.ErrNoRows {
			return nil, exception.ErrLogNotFound
		}
		return nil, fmt.Errorf("failed to get exception log by employee, date and kind: %w", err)
	}

	return &log, nil
}

// List implements exception.Repository.
func (r *exceptionRepository) List(ctx context.Context, filter *exception.Filter) ([]exception.Log, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "l.kind = $1"
	args := []interface{}{filter.Kind}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND l.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND l.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND l.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.ActionTaken != nil && *filter.ActionTaken != "" {
		baseWhere += fmt.Sprintf(" AND l.action_taken = $%d", argIdx)
		args = append(args, *filter.ActionTaken)
		argIdx++
	}
	if filter.Justified != nil {
		baseWhere += fmt.Sprintf(" AND l.justified = $%d", argIdx)
		args = append(args, *filter.Justified)
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM exception_logs l
		WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count exception logs: %w", err)
	}

	orderByField := "l.date"
	switch filter.SortBy {
	case "employee_name":
		orderByField = "e.full_name"
	case "action_taken":
		orderByField = "l.action_taken"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT `+exceptionColumns+`,
			e.full_name AS employee_name
		FROM exception_logs l
		LEFT JOIN employees e ON e.id = l.employee_id
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
		return nil, 0, fmt.Errorf("failed to query exception logs: %w", err)
	}
	defer rows.Close()

	var logs []exception.Log
	for rows.Next() {
		var log exception.Log
		if err := scanException(rows, &log, true); err != nil {
			return nil, 0, fmt.Errorf("failed to scan exception log: %w", err)
		}
		logs = append(logs, log)
	}

	return logs, total, nil
}

// CountByEmployee implements exception.Repository.
func (r *exceptionRepository) CountByEmployee(ctx context.Context, employeeID string, start, end time.Time) (map[exception.Kind]int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT kind, COUNT(*)
		FROM exception_logs
		WHERE employee_id = $1
		  AND date BETWEEN $2 AND $3
		GROUP BY kind
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to count exception logs by employee: %w", err)
	}
	defer rows.Close()

	counts := make(map[exception.Kind]int)
	for rows.Next() {
		var kind exception.Kind
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, fmt.Errorf("failed to scan exception count: %w", err)
		}
		counts[kind] = count
	}

	return counts, nil
}
