package leave

import (
	"context"
	"time"

	"github.com/orgdesk/orgdesk-backend-go/internal/domain/attendance"
	"github.com/orgdesk/orgdesk-backend-go/internal/domain/employee"
	"github.com/orgdesk/orgdesk-backend-go/internal/domain/leave"
	"github.com/orgdesk/orgdesk-backend-go/internal/pkg/database"
	"github.com/orgdesk/orgdesk-backend-go/internal/repository/postgresql"
)

type LeaveServiceImpl struct {
	db             *database.DB
	leaveRepo      leave.Repository
	attendanceRepo attendance.Repository
	employeeRepo   employee.Repository

	now func() time.Time
}

func NewLeaveService(
	db *database.DB,
	leaveRepo leave.Repository,
	attendanceRepo attendance.Repository,
	employeeRepo employee.Repository,
) leave.Service {
	return &LeaveServiceImpl{
		db:             db,
		leaveRepo:      leaveRepo,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Create implements leave.Service.
func (s *LeaveServiceImpl) Create(ctx context.Context, req *leave.CreateRequest) (*leave.LogResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return nil, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	var log *leave.Log
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		// Overlap check inside the transaction so two concurrent requests
		// for the same span cannot both pass it.
		overlaps, err := s.leaveRepo.HasOverlap(txCtx, req.EmployeeID, start, end, "")
		if err != nil {
			return err
		}
		if overlaps {
			return leave.ErrOverlappingLeave
		}

		log = &leave.Log{
			EmployeeID: req.EmployeeID,
			StartDate:  start,
			EndDate:    end,
			DayCount:   leave.DayCount(start, end),
			Type:       req.Type,
			Reason:     req.Reason,
			Status:     leave.StatusPending,
		}
		return s.leaveRepo.Create(txCtx, log)
	})
	if err != nil {
		return nil, err
	}

	return toResponse(log), nil
}

// List implements leave.Service.
func (s *LeaveServiceImpl) List(ctx context.Context, filter *leave.Filter) (*leave.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	logs, total, err := s.leaveRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &leave.ListResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int((total + int64(filter.Limit) - 1) / int64(filter.Limit)),
		Logs:       make([]leave.LogResponse, 0, len(logs)),
	}
	for i := range logs {
		resp.Logs = append(resp.Logs, *toResponse(&logs[i]))
	}

	return resp, nil
}

// GetByID implements leave.Service.
func (s *LeaveServiceImpl) GetByID(ctx context.Context, id string) (*leave.LogResponse, error) {
	log, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(log), nil
}

// Review implements leave.Service. Approval charges the leave-day counters
// month by month across the span; cancelling an approved leave applies the
// exact negation, so approve followed by cancel is counter-neutral.
func (s *LeaveServiceImpl) Review(ctx context.Context, req *leave.ReviewRequest) (*leave.LogResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var log *leave.Log
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		var err error
		log, err = s.leaveRepo.GetByID(txCtx, req.LeaveID)
		if err != nil {
			return err
		}

		if err := leave.CanTransition(log.Status, req.Status); err != nil {
			return err
		}

		switch {
		case req.Status == leave.StatusApproved:
			if err := s.moveCounters(txCtx, log, false); err != nil {
				return err
			}
		case req.Status == leave.StatusCancelled && log.Status == leave.StatusApproved:
			if err := s.moveCounters(txCtx, log, true); err != nil {
				return err
			}
		}

		log.Status = req.Status
		reviewedAt := s.now()
		log.ReviewerID = &req.ReviewerID
		log.ReviewedAt = &reviewedAt
		if req.Note != nil {
			log.ReviewNote = req.Note
		}

		return s.leaveRepo.Update(txCtx, log)
	})
	if err != nil {
		return nil, err
	}

	return toResponse(log), nil
}

// moveCounters charges or reverses the leave-day counters for the span,
// clipped per calendar month.
func (s *LeaveServiceImpl) moveCounters(ctx context.Context, log *leave.Log, reverse bool) error {
	for _, span := range leave.MonthSpans(log.StartDate, log.EndDate) {
		delta := attendance.CounterDelta{Leave: span.Days}
		if reverse {
			delta = delta.Negate()
		}
		if err := s.attendanceRepo.AdjustCounters(ctx, log.EmployeeID, span.Month, delta); err != nil {
			return err
		}
	}
	return nil
}

func toResponse(log *leave.Log) *leave.LogResponse {
	resp := &leave.LogResponse{
		ID:         log.ID,
		EmployeeID: log.EmployeeID,
		StartDate:  log.StartDate.Format("2006-01-02"),
		EndDate:    log.EndDate.Format("2006-01-02"),
		DayCount:   log.DayCount,
		Type:       log.Type,
		Reason:     log.Reason,
		Status:     string(log.Status),
		ReviewerID: log.ReviewerID,
		ReviewNote: log.ReviewNote,
		CreatedAt:  log.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  log.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if log.EmployeeName != nil {
		resp.EmployeeName = *log.EmployeeName
	}
	if log.ReviewedAt != nil {
		reviewed := log.ReviewedAt.UTC().Format(time.RFC3339)
		resp.ReviewedAt = &reviewed
	}
	return resp
}
