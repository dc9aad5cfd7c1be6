package exception

import (
	"context"
	"fmt"
	"time"

	"github.com/orgdesk/orgdesk-backend-go/internal/domain/attendance"
	"github.com/orgdesk/orgdesk-backend-go/internal/domain/exception"
	"github.com/orgdesk/orgdesk-backend-go/internal/pkg/database"
	"github.com/orgdesk/orgdesk-backend-go/internal/repository/postgresql"
)

type ExceptionServiceImpl struct {
	db             *database.DB
	exceptionRepo  exception.Repository
	attendanceRepo attendance.Repository

	now func() time.Time
}

func NewExceptionService(
	db *database.DB,
	exceptionRepo exception.Repository,
	attendanceRepo attendance.Repository,
) exception.Service {
	return &ExceptionServiceImpl{
		db:             db,
		exceptionRepo:  exceptionRepo,
		attendanceRepo: attendanceRepo,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// List implements exception.Service.
func (s *ExceptionServiceImpl) List(ctx context.Context, filter *exception.Filter) (*exception.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	logs, total, err := s.exceptionRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &exception.ListResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int((total + int64(filter.Limit) - 1) / int64(filter.Limit)),
		Logs:       make([]exception.LogResponse, 0, len(logs)),
	}
	for i := range logs {
		resp.Logs = append(resp.Logs, *toResponse(&logs[i]))
	}

	return resp, nil
}

// GetByID implements exception.Service.
func (s *ExceptionServiceImpl) GetByID(ctx context.Context, id string) (*exception.LogResponse, error) {
	log, err := s.exceptionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(log), nil
}

// SubmitReason implements exception.Service.
func (s *ExceptionServiceImpl) SubmitReason(ctx context.Context, req *exception.SubmitReasonRequest) (*exception.LogResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var log *exception.Log
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		var err error
		log, err = s.exceptionRepo.GetByID(txCtx, req.LogID)
		if err != nil {
			return err
		}

		if log.EmployeeID != req.EmployeeID {
			return fmt.Errorf("log %s does not belong to employee %s: %w",
				log.ID, req.EmployeeID, exception.ErrLogNotFound)
		}
		if !log.Pending() {
			return fmt.Errorf("log %s is already %s: %w",
				log.ID, log.ActionTaken, exception.ErrInvalidTransition)
		}

		log.Reason = &req.Reason
		return s.exceptionRepo.Update(txCtx, log)
	})
	if err != nil {
		return nil, err
	}

	return toResponse(log), nil
}

// Review implements exception.Service. The transition check, the log update
// and any counter adjustment happen inside one transaction so a stale
// reviewer loses cleanly with ErrInvalidTransition.
func (s *ExceptionServiceImpl) Review(ctx context.Context, req *exception.ReviewRequest) (*exception.LogResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var log *exception.Log
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		var err error
		log, err = s.exceptionRepo.GetByID(txCtx, req.LogID)
		if err != nil {
			return err
		}
		if log.Kind != req.Kind {
			return exception.ErrLogNotFound
		}

		if err := exception.CanReview(log, req.Action); err != nil {
			return err
		}

		switch req.Action {
		case exception.ReviewApprove:
			if err := s.applyApproval(txCtx, log, req); err != nil {
				return err
			}
		case exception.ReviewMarkJustified:
			log.Justified = true
		}

		log.ActionTaken = exception.NextAction(log.ActionTaken, req.Action)
		reviewedAt := s.now()
		log.ReviewerID = &req.ReviewerID
		log.ReviewedAt = &reviewedAt
		if req.Note != nil {
			log.ReviewNote = req.Note
		}

		return s.exceptionRepo.Update(txCtx, log)
	})
	if err != nil {
		return nil, err
	}

	return toResponse(log), nil
}

// applyApproval carries the kind-specific side effects of an approve action
// onto the attendance day and its counters.
func (s *ExceptionServiceImpl) applyApproval(ctx context.Context, log *exception.Log, req *exception.ReviewRequest) error {
	day, err := s.attendanceRepo.GetByID(ctx, log.AttendanceID)
	if err != nil {
		return err
	}
	month := attendance.MonthKey(day.Date)

	switch log.Kind {
	case exception.KindLate:
		// An approved late excuses the charge: the late counter is
		// released while the day keeps its factual late status. A reject
		// leaves the counter charged.
		if req.AdjustMinutes != nil {
			log.MinutesLate = req.AdjustMinutes
			day.LateMinutes = req.AdjustMinutes
			if err := s.attendanceRepo.Update(ctx, day); err != nil {
				return err
			}
		}
		if day.Status == attendance.StatusLate {
			delta := attendance.CounterDelta{Late: -1}
			if err := s.attendanceRepo.AdjustCounters(ctx, day.EmployeeID, month, delta); err != nil {
				return err
			}
		}
		return nil

	case exception.KindHalfDay:
		if req.AdjustStatus == nil {
			return nil // approval without reclassification keeps the day as is
		}
		target := attendance.Status(*req.AdjustStatus)
		if target == day.Status {
			return nil
		}
		delta := attendance.TransitionDelta(day.Status, target)
		if err := s.attendanceRepo.AdjustCounters(ctx, day.EmployeeID, month, delta); err != nil {
			return err
		}
		day.Status = target
		return s.attendanceRepo.Update(ctx, day)
	}

	return nil
}

func toResponse(log *exception.Log) *exception.LogResponse {
	resp := &exception.LogResponse{
		ID:           log.ID,
		AttendanceID: log.AttendanceID,
		EmployeeID:   log.EmployeeID,
		Date:         log.Date.Format("2006-01-02"),
		Kind:         string(log.Kind),
		MinutesLate:  log.MinutesLate,
		HalfPeriod:   log.HalfPeriod,
		Reason:       log.Reason,
		ActionTaken:  string(log.ActionTaken),
		Justified:    log.Justified,
		ReviewerID:   log.ReviewerID,
		ReviewNote:   log.ReviewNote,
		CreatedAt:    log.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    log.UpdatedAt.UTC().Format(time.RFC3339),
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
