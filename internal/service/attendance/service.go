package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/orgdesk/orgdesk-backend-go/internal/domain/attendance"
	"github.com/orgdesk/orgdesk-backend-go/internal/domain/employee"
	"github.com/orgdesk/orgdesk-backend-go/internal/domain/exception"
	"github.com/orgdesk/orgdesk-backend-go/internal/domain/leave"
	"github.com/orgdesk/orgdesk-backend-go/internal/pkg/database"
	"github.com/orgdesk/orgdesk-backend-go/internal/pkg/validator"
	"github.com/orgdesk/orgdesk-backend-go/internal/repository/postgresql"
)

type AttendanceServiceImpl struct {
	db             *database.DB
	attendanceRepo attendance.Repository
	employeeRepo   employee.Repository
	exceptionRepo  exception.Repository
	leaveRepo      leave.Repository

	defaultPolicy attendance.ShiftPolicy
	defaultZone   string

	// now is the clock source, swappable in tests.
	now func() time.Time
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.Repository,
	employeeRepo employee.Repository,
	exceptionRepo exception.Repository,
	leaveRepo leave.Repository,
	defaultPolicy attendance.ShiftPolicy,
	defaultZone string,
) attendance.Service {
	return &AttendanceServiceImpl{
		db:             db,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		exceptionRepo:  exceptionRepo,
		leaveRepo:      leaveRepo,
		defaultPolicy:  defaultPolicy,
		defaultZone:    defaultZone,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// policyFor builds the employee's shift policy, falling back to the company
// default for any clock the directory does not carry.
func (a *AttendanceServiceImpl) policyFor(emp *employee.Employee) attendance.ShiftPolicy {
	policy := a.defaultPolicy
	if emp.ShiftStart != "" {
		if start, err := attendance.ParseClock(emp.ShiftStart); err == nil {
			policy.Start = start
		}
	}
	if emp.ShiftEnd != "" {
		if end, err := attendance.ParseClock(emp.ShiftEnd); err == nil {
			policy.End = end
		}
	}
	return policy
}

func (a *AttendanceServiceImpl) eventTime(raw string) (time.Time, error) {
	if raw == "" {
		return a.now(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, validator.ValidationErrors{{
			Field:   "timestamp",
			Message: "timestamp must be an RFC3339 instant",
		}}
	}
	return t.UTC(), nil
}

func employeeZone(emp *employee.Employee) string {
	if emp.Timezone != nil {
		return *emp.Timezone
	}
	return ""
}

// CheckIn implements attendance.Service.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req *attendance.CheckInRequest) (*attendance.AttendanceDayResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	event, err := a.eventTime(req.Timestamp)
	if err != nil {
		return nil, err
	}

	emp, err := a.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	policy := a.policyFor(emp)
	resolved, err := attendance.ResolveAttendanceDay(
		event, employeeZone(emp), req.Timezone, req.OffsetMinutes, a.defaultZone, policy,
	)
	if err != nil {
		return nil, err
	}

	var day *attendance.AttendanceDay
	err = postgresql.WithTransaction(ctx, a.db, func(txCtx context.Context) error {
		// Uniqueness check inside the transaction so two concurrent
		// check-ins cannot both pass it. Unwindowed: a stale session the
		// nightly sweep missed still blocks new check-ins.
		if open, err := a.attendanceRepo.HasAnyOpenSession(txCtx, emp.ID); err != nil {
			return err
		} else if open {
			return attendance.ErrAlreadyOpen
		}

		if existing, err := a.attendanceRepo.GetByEmployeeAndDate(txCtx, emp.ID, resolved.Date); err == nil && existing != nil {
			if existing.SessionOpen() {
				return attendance.ErrAlreadyOpen
			}
			return attendance.ErrAlreadyClosed
		} else if err != nil && !errors.Is(err, attendance.ErrAttendanceNotFound) {
			return err
		}

		class := attendance.ClassifyArrival(resolved.Local, resolved.Date, policy)
		status := class.Status
		if status == attendance.StatusPresent && req.Mode != nil && *req.Mode == "remote" {
			status = attendance.StatusRemote
		}

		minutesLate := class.MinutesLate
		day = &attendance.AttendanceDay{
			EmployeeID:       emp.ID,
			Date:             resolved.Date,
			CheckIn:          &event,
			LateMinutes:      &minutesLate,
			Status:           status,
			Mode:             req.Mode,
			TimezoneUsed:     resolved.Zone,
			TimezoneFallback: resolved.FallbackApplied,
		}
		if err := a.attendanceRepo.Create(txCtx, day); err != nil {
			return err
		}

		month := attendance.MonthKey(resolved.Date)
		if err := a.attendanceRepo.AdjustCounters(txCtx, emp.ID, month, attendance.DeltaFor(status)); err != nil {
			return err
		}

		if class.RequiresReview {
			if err := a.openExceptionLog(txCtx, day, class, policy); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	day.EmployeeName = &emp.FullName
	return toResponse(day), nil
}

// openExceptionLog creates the pending review log for a late or half-day
// arrival, at most once per (employee, date, kind).
func (a *AttendanceServiceImpl) openExceptionLog(ctx context.Context, day *attendance.AttendanceDay, class attendance.ArrivalClass, policy attendance.ShiftPolicy) error {
	kind := exception.KindLate
	if class.Status == attendance.StatusHalfDay {
		kind = exception.KindHalfDay
	}

	_, err := a.exceptionRepo.GetByEmployeeDateKind(ctx, day.EmployeeID, day.Date, kind)
	if err == nil {
		return nil // already logged for this day and kind
	}
	if !errors.Is(err, exception.ErrLogNotFound) {
		return err
	}

	log := &exception.Log{
		AttendanceID: day.ID,
		EmployeeID:   day.EmployeeID,
		Date:         day.Date,
		Kind:         kind,
		ActionTaken:  exception.ActionPending,
	}
	if kind == exception.KindLate {
		minutes := class.MinutesLate
		log.MinutesLate = &minutes
	} else {
		period := string(attendance.DeriveHalfPeriod(class.MinutesLate, policy))
		log.HalfPeriod = &period
	}

	if err := a.exceptionRepo.Create(ctx, log); err != nil {
		// A concurrent writer beat us; the guard already holds.
		if errors.Is(err, exception.ErrDuplicateLog) {
			return nil
		}
		return err
	}
	return nil
}

// CheckOut implements attendance.Service.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req *attendance.CheckOutRequest) (*attendance.AttendanceDayResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	event, err := a.eventTime(req.Timestamp)
	if err != nil {
		return nil, err
	}

	emp, err := a.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	policy := a.policyFor(emp)
	resolved, err := attendance.ResolveAttendanceDay(
		event, employeeZone(emp), req.Timezone, req.OffsetMinutes, a.defaultZone, policy,
	)
	if err != nil {
		return nil, err
	}

	var day *attendance.AttendanceDay
	err = postgresql.WithTransaction(ctx, a.db, func(txCtx context.Context) error {
		day, err = a.closeSession(txCtx, emp, resolved.Date, event, policy)
		return err
	})
	if err != nil {
		return nil, err
	}

	day.EmployeeName = &emp.FullName
	return toResponse(day), nil
}

// closeSession stamps the check-out, recomputes the status from the worked
// duration and moves the counters for any status change. Runs inside the
// caller's transaction.
func (a *AttendanceServiceImpl) closeSession(ctx context.Context, emp *employee.Employee, date time.Time, event time.Time, policy attendance.ShiftPolicy) (*attendance.AttendanceDay, error) {
	day, err := a.attendanceRepo.GetOpenSession(ctx, emp.ID, date)
	if err != nil {
		if errors.Is(err, attendance.ErrNoOpenSession) {
			// A closed record on the day means double checkout, which is
			// its own error so accidental resubmission surfaces.
			if existing, lookupErr := a.attendanceRepo.GetByEmployeeAndDate(ctx, emp.ID, date); lookupErr == nil && existing != nil && !existing.SessionOpen() {
				return nil, attendance.ErrAlreadyClosed
			}
			return nil, attendance.ErrNoOpenSession
		}
		return nil, err
	}

	if event.Before(*day.CheckIn) {
		return nil, validator.ValidationErrors{{
			Field:   "timestamp",
			Message: "check-out must not be before check-in",
		}}
	}

	worked := int(event.Sub(*day.CheckIn).Minutes())
	newStatus := attendance.ClassifyClosedSession(day.Status, worked, policy)

	if newStatus != day.Status {
		month := attendance.MonthKey(day.Date)
		delta := attendance.TransitionDelta(day.Status, newStatus)
		if err := a.attendanceRepo.AdjustCounters(ctx, emp.ID, month, delta); err != nil {
			return nil, err
		}

		if newStatus == attendance.StatusHalfDay {
			minutes := 0
			if day.LateMinutes != nil {
				minutes = *day.LateMinutes
			}
			class := attendance.ArrivalClass{Status: newStatus, MinutesLate: minutes, RequiresReview: true}
			if err := a.openExceptionLog(ctx, day, class, policy); err != nil {
				return nil, err
			}
		}
	}

	day.CheckOut = &event
	day.WorkedMinutes = &worked
	day.Status = newStatus
	if err := a.attendanceRepo.Update(ctx, day); err != nil {
		return nil, err
	}

	return day, nil
}

// BulkCheckout implements attendance.Service.
func (a *AttendanceServiceImpl) BulkCheckout(ctx context.Context, req *attendance.BulkCheckoutRequest) (*attendance.BulkCheckoutResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	checkout := a.now()
	if req.Checkout != "" {
		parsed, err := time.Parse(time.RFC3339, req.Checkout)
		if err != nil {
			return nil, validator.ValidationErrors{{
				Field:   "checkout",
				Message: "checkout must be an RFC3339 instant",
			}}
		}
		checkout = parsed.UTC()
	}

	var date time.Time
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, validator.ValidationErrors{{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			}}
		}
		date = parsed
	} else {
		resolved, err := attendance.ResolveAttendanceDay(
			checkout, "", req.Timezone, req.OffsetMinutes, a.defaultZone, a.defaultPolicy,
		)
		if err != nil {
			return nil, err
		}
		date = resolved.Date
	}

	result := &attendance.BulkCheckoutResult{Date: date.Format("2006-01-02")}

	if len(req.EmployeeIDs) > 0 {
		for _, id := range req.EmployeeIDs {
			result.Results = append(result.Results, a.closeOne(ctx, id, date, checkout))
		}
	} else {
		sessions, err := a.attendanceRepo.ListOpenSessions(ctx, date, nil)
		if err != nil {
			return nil, err
		}
		for _, s := range sessions {
			result.Results = append(result.Results, a.closeOne(ctx, s.EmployeeID, date, checkout))
		}
	}

	for _, r := range result.Results {
		switch r.Outcome {
		case attendance.OutcomeClosed:
			result.Closed++
		case attendance.OutcomeError:
			result.Errors++
		default:
			result.Skipped++
		}
	}

	return result, nil
}

// closeOne closes one employee's session in its own transaction. Per-target
// failures become outcomes, never errors: one missing session must not abort
// the sweep for the rest.
func (a *AttendanceServiceImpl) closeOne(ctx context.Context, employeeID string, date time.Time, checkout time.Time) attendance.EmployeeOutcome {
	outcome := attendance.EmployeeOutcome{EmployeeID: employeeID}

	emp, err := a.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		outcome.Outcome = attendance.OutcomeError
		outcome.Detail = err.Error()
		return outcome
	}
	outcome.EmployeeName = emp.FullName

	policy := a.policyFor(emp)
	err = postgresql.WithTransaction(ctx, a.db, func(txCtx context.Context) error {
		_, err := a.closeSession(txCtx, emp, date, checkout, policy)
		return err
	})

	switch {
	case err == nil:
		outcome.Outcome = attendance.OutcomeClosed
	case errors.Is(err, attendance.ErrAlreadyClosed):
		outcome.Outcome = attendance.OutcomeAlreadyClosed
		outcome.Detail = "session already closed"
	case errors.Is(err, attendance.ErrNoOpenSession):
		outcome.Outcome = attendance.OutcomeNoOpenSession
		outcome.Detail = "no open session"
	default:
		outcome.Outcome = attendance.OutcomeError
		outcome.Detail = err.Error()
	}

	return outcome
}

// MarkAbsentees implements attendance.Service.
func (a *AttendanceServiceImpl) MarkAbsentees(ctx context.Context, date string) (int, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, validator.ValidationErrors{{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		}}
	}

	if isHoliday, err := a.attendanceRepo.IsHoliday(ctx, day); err != nil {
		return 0, err
	} else if isHoliday {
		return 0, nil
	}

	missing, err := a.attendanceRepo.ListMissingForDate(ctx, day)
	if err != nil {
		return 0, err
	}

	marked := 0
	for _, employeeID := range missing {
		id := employeeID
		err := postgresql.WithTransaction(ctx, a.db, func(txCtx context.Context) error {
			rec := &attendance.AttendanceDay{
				EmployeeID:   id,
				Date:         day,
				Status:       attendance.StatusAbsent,
				TimezoneUsed: a.defaultZone,
			}
			if err := a.attendanceRepo.Create(txCtx, rec); err != nil {
				return err
			}
			return a.attendanceRepo.AdjustCounters(txCtx, id, attendance.MonthKey(day),
				attendance.DeltaFor(attendance.StatusAbsent))
		})
		if err != nil {
			// Localized to this record: another writer may have created the
			// row between listing and insert.
			continue
		}
		marked++
	}

	leaveMarked, err := a.markLeaveDays(ctx, day)
	if err != nil {
		return marked, err
	}

	return marked + leaveMarked, nil
}

// markLeaveDays writes status=leave records for active employees whose
// approved leave covers the day and who have no attendance row yet. Leave
// counters were already charged at approval, so none move here.
func (a *AttendanceServiceImpl) markLeaveDays(ctx context.Context, day time.Time) (int, error) {
	active, err := a.employeeRepo.ListActive(ctx)
	if err != nil {
		return 0, err
	}

	marked := 0
	for _, emp := range active {
		if _, err := a.attendanceRepo.GetByEmployeeAndDate(ctx, emp.ID, day); err == nil {
			continue
		} else if !errors.Is(err, attendance.ErrAttendanceNotFound) {
			return marked, err
		}

		onLeave, err := a.leaveRepo.HasApprovedLeaveOn(ctx, emp.ID, day)
		if err != nil {
			return marked, err
		}
		if !onLeave {
			continue
		}

		rec := &attendance.AttendanceDay{
			EmployeeID:   emp.ID,
			Date:         day,
			Status:       attendance.StatusLeave,
			TimezoneUsed: a.defaultZone,
		}
		if err := a.attendanceRepo.Create(ctx, rec); err != nil {
			continue
		}
		marked++
	}

	return marked, nil
}

// List implements attendance.Service.
func (a *AttendanceServiceImpl) List(ctx context.Context, filter *attendance.Filter) (*attendance.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	days, total, err := a.attendanceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &attendance.ListResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int((total + int64(filter.Limit) - 1) / int64(filter.Limit)),
		Days:       make([]attendance.AttendanceDayResponse, 0, len(days)),
	}
	for i := range days {
		resp.Days = append(resp.Days, *toResponse(&days[i]))
	}

	return resp, nil
}

// GetByID implements attendance.Service.
func (a *AttendanceServiceImpl) GetByID(ctx context.Context, id string) (*attendance.AttendanceDayResponse, error) {
	day, err := a.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(day), nil
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.UTC().Format(time.RFC3339)
	return &formatted
}

func toResponse(day *attendance.AttendanceDay) *attendance.AttendanceDayResponse {
	resp := &attendance.AttendanceDayResponse{
		ID:               day.ID,
		EmployeeID:       day.EmployeeID,
		Date:             day.Date.Format("2006-01-02"),
		CheckIn:          timePtrToString(day.CheckIn),
		CheckOut:         timePtrToString(day.CheckOut),
		WorkedMinutes:    day.WorkedMinutes,
		LateMinutes:      day.LateMinutes,
		Status:           string(day.Status),
		Mode:             day.Mode,
		TimezoneUsed:     day.TimezoneUsed,
		TimezoneFallback: day.TimezoneFallback,
		CreatedAt:        day.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:        day.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if day.EmployeeName != nil {
		resp.EmployeeName = *day.EmployeeName
	}
	return resp
}
