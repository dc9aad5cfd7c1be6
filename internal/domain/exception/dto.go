package exception

import (
	"strings"

	"github.com/orgdesk/orgdesk-backend-go/internal/pkg/validator"
)

type Filter struct {
	Kind        Kind    `json:"kind"`
	EmployeeID  *string `json:"employee_id,omitempty"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
	ActionTaken *string `json:"action_taken,omitempty"`
	Justified   *bool   `json:"justified,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`

	SortBy    string `json:"sort_by"`    // date, employee_name, action_taken
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(string(f.Kind), ValidKinds) {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be one of: late, half_day",
		})
	}

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.ActionTaken != nil && !validator.IsInSlice(*f.ActionTaken, ValidActions) {
		errs = append(errs, validator.ValidationError{
			Field:   "action_taken",
			Message: "action_taken must be one of: pending, approved, rejected",
		})
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.SortBy != "" {
		if !validator.IsInSlice(f.SortBy, []string{"date", "employee_name", "action_taken"}) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: date, employee_name, action_taken",
			})
		}
	} else {
		f.SortBy = "date"
	}

	if f.SortOrder != "" {
		if !validator.IsInSlice(strings.ToLower(f.SortOrder), []string{"asc", "desc"}) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "desc"
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ReviewRequest is a reviewer's disposition of one log.
type ReviewRequest struct {
	LogID      string `json:"-"`
	Kind       Kind   `json:"-"`
	ReviewerID string `json:"-"` // from auth claims

	Action ReviewAction `json:"action"`
	Note   *string      `json:"note,omitempty"`

	// AdjustMinutes lets a late-log approval override the recorded
	// minutes-late magnitude.
	AdjustMinutes *int `json:"adjust_minutes,omitempty"`

	// AdjustStatus lets a half-day approval reclassify the attendance day
	// as present, absent or half_day.
	AdjustStatus *string `json:"adjust_status,omitempty"`
}

func (r *ReviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LogID) {
		errs = append(errs, validator.ValidationError{
			Field:   "log_id",
			Message: "log id is required",
		})
	} else if !validator.IsValidUUID(r.LogID) {
		errs = append(errs, validator.ValidationError{
			Field:   "log_id",
			Message: "log id must be a valid UUID",
		})
	}

	if validator.IsEmpty(r.ReviewerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "reviewer_id",
			Message: "reviewer id is required",
		})
	}

	if !validator.IsInSlice(string(r.Action), ValidReviewActions) {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action must be one of: approve, reject, mark_justified",
		})
	}

	if r.Action == ReviewMarkJustified && r.Kind != KindLate {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "mark_justified only applies to late logs",
		})
	}

	if r.AdjustMinutes != nil {
		if r.Kind != KindLate {
			errs = append(errs, validator.ValidationError{
				Field:   "adjust_minutes",
				Message: "adjust_minutes only applies to late logs",
			})
		} else if *r.AdjustMinutes < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "adjust_minutes",
				Message: "adjust_minutes must not be negative",
			})
		}
	}

	if r.AdjustStatus != nil {
		if r.Kind != KindHalfDay {
			errs = append(errs, validator.ValidationError{
				Field:   "adjust_status",
				Message: "adjust_status only applies to half-day logs",
			})
		} else if !validator.IsInSlice(*r.AdjustStatus, []string{"present", "absent", "half_day"}) {
			errs = append(errs, validator.ValidationError{
				Field:   "adjust_status",
				Message: "adjust_status must be one of: present, absent, half_day",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// SubmitReasonRequest attaches the employee's explanation to a pending log.
type SubmitReasonRequest struct {
	LogID      string `json:"-"`
	EmployeeID string `json:"-"` // from auth claims
	Reason     string `json:"reason"`
}

func (r *SubmitReasonRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LogID) {
		errs = append(errs, validator.ValidationError{
			Field:   "log_id",
			Message: "log id is required",
		})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LogResponse struct {
	ID           string  `json:"id"`
	AttendanceID string  `json:"attendance_id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	Date         string  `json:"date"`
	Kind         string  `json:"kind"`
	MinutesLate  *int    `json:"minutes_late,omitempty"`
	HalfPeriod   *string `json:"half_period,omitempty"`
	Reason       *string `json:"reason,omitempty"`
	ActionTaken  string  `json:"action_taken"`
	Justified    bool    `json:"justified"`
	ReviewerID   *string `json:"reviewer_id,omitempty"`
	ReviewedAt   *string `json:"reviewed_at,omitempty"`
	ReviewNote   *string `json:"review_note,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

type ListResponse struct {
	TotalCount int64         `json:"total_count"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"total_pages"`
	Logs       []LogResponse `json:"logs"`
}
