package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/orgdesk/orgdesk-backend-go/internal/domain/leave"
	"github.com/orgdesk/orgdesk-backend-go/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.Repository {
	return &leaveRepository{db: db}
}

const leaveColumns = `
	l.id, l.employee_id, l.start_date, l.end_date, l.day_count,
	l.type, l.reason, l.status, l.reviewer_id, l.reviewed_at, l.review_note,
	l.created_at, l.updated_at`

func scanLeave(row pgx.Row, log *leave.Log, withName bool) error {
	dest := []interface{}{
		&log.ID, &log.EmployeeID, &log.StartDate, &log.EndDate, &log.DayCount,
		&log.Type, &log.Reason, &log.Status, &log.ReviewerID, &log.ReviewedAt, &log.ReviewNote,
		&log.CreatedAt, &log.UpdatedAt,
	}
	if withName {
		dest = append(dest, &log.EmployeeName)
	}
	return row.Scan(dest...)
}

// Create implements leave.Repository.
func (r *leaveRepository) Create(ctx context.Context, log *leave.Log) error {
	q := GetQuerier(ctx, r.db)

	if log.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("generate leave log id: %w", err)
		}
		log.ID = id.String()
	}

	query := `
		INSERT INTO leave_logs (
			id, employee_id, start_date, end_date, day_count, type, reason, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		log.ID,
		log.EmployeeID,
		log.StartDate,
		log.EndDate,
		log.DayCount,
		log.Type,
		log.Reason,
		log.Status,
	).Scan(&log.CreatedAt, &log.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create leave log: %w", err)
	}

	return nil
}

// Update implements leave.Repository.
func (r *leaveRepository) Update(ctx context.Context, log *leave.Log) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_logs SET
			status      = $1,
			reviewer_id = $2,
			reviewed_at = $3,
			review_note = $4,
			updated_at  = $5
		WHERE id = $6
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		log.Status,
		log.ReviewerID,
		log.ReviewedAt,
		log.ReviewNote,
		time.Now().UTC(),
		log.ID,
	).Scan(&updatedID)

	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.ErrLeaveNotFound
		}
		return fmt.Errorf("failed to update leave log: %w", err)
	}

	return nil
}

// GetByID implements leave.Repository.
func (r *leaveRepository) GetByID(ctx context.Context, id string) (*leave.Log, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `,
			e.full_name AS employee_name
		FROM leave_logs l
		LEFT JOIN employees e ON e.id = l.employee_id
		WHERE l.id = $1
	`

	var log leave.Log
	if err := scanLeave(q.QueryRow(ctx, query, id), &log, true); err != nil {
		if err == pgx.ErrNoRows {
			return nil, leave.ErrLeaveNotFound
		}
		return nil, fmt.Errorf("failed to get leave log by id: %w", err)
	}

	return &log, nil
}

// List implements leave.Repository.
func (r *leaveRepository) List(ctx context.Context, filter *leave.Filter) ([]leave.Log, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND l.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND l.end_date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND l.start_date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND l.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Type != nil && *filter.Type != "" {
		baseWhere += fmt.Sprintf(" AND l.type = $%d", argIdx)
		args = append(args, *filter.Type)
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM leave_logs l
		WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave logs: %w", err)
	}

	orderByField := "l.start_date"
	switch filter.SortBy {
	case "employee_name":
		orderByField = "e.full_name"
	case "status":
		orderByField = "l.status"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT `+leaveColumns+`,
			e.full_name AS employee_name
		FROM leave_logs l
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
		return nil, 0, fmt.Errorf("failed to query leave logs: %w", err)
	}
	defer rows.Close()

	var logs []leave.Log
	for rows.Next() {
		var log leave.Log
		if err := scanLeave(rows, &log, true); err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave log: %w", err)
		}
		logs = append(logs, log)
	}

	return logs, total, nil
}

// HasOverlap implements leave.Repository.
func (r *leaveRepository) HasOverlap(ctx context.Context, employeeID string, start, end time.Time, excludeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_logs
			WHERE employee_id = $1
			  AND status IN ('pending', 'approved')
			  AND start_date <= $3
			  AND end_date >= $2
			  AND ($4 = '' OR id != $4)
		)
	`

	var overlaps bool
	if err := q.QueryRow(ctx, query, employeeID, start, end, excludeID).Scan(&overlaps); err != nil {
		return false, fmt.Errorf("failed to check leave overlap: %w", err)
	}

	return overlaps, nil
}

// HasApprovedLeaveOn implements leave.Repository.
func (r *leaveRepository) HasApprovedLeaveOn(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_logs
			WHERE employee_id = $1
			  AND status = 'approved'
			  AND $2 BETWEEN start_date AND end_date
		)
	`

	var covered bool
	if err := q.QueryRow(ctx, query, employeeID, date).Scan(&covered); err != nil {
		return false, fmt.Errorf("failed to check approved leave: %w", err)
	}

	return covered, nil
}
