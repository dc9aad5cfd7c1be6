package attendance

import (
	"strings"

	"github.com/orgdesk/orgdesk-backend-go/internal/pkg/validator"
)

// ========================================
// CHECK-IN / CHECK-OUT DTOs
// ========================================

type CheckInRequest struct {
	EmployeeID string `json:"employee_id"`
	// Timestamp is the RFC3339 event instant; empty means "now".
	Timestamp     string  `json:"timestamp,omitempty"`
	Mode          *string `json:"mode,omitempty"` // onsite, remote
	Timezone      string  `json:"timezone,omitempty"`
	OffsetMinutes *int    `json:"offset_minutes,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.Timestamp != "" {
		if _, valid := validator.IsValidDateTime(r.Timestamp); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "timestamp",
				Message: "timestamp must be an RFC3339 instant",
			})
		}
	}

	if r.Mode != nil && !validator.IsInSlice(*r.Mode, []string{"onsite", "remote"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "mode",
			Message: "mode must be one of: onsite, remote",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	EmployeeID    string `json:"employee_id"`
	Timestamp     string `json:"timestamp,omitempty"`
	Timezone      string `json:"timezone,omitempty"`
	OffsetMinutes *int   `json:"offset_minutes,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.Timestamp != "" {
		if _, valid := validator.IsValidDateTime(r.Timestamp); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "timestamp",
				Message: "timestamp must be an RFC3339 instant",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceDayResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	EmployeeName     string  `json:"employee_name,omitempty"`
	Date             string  `json:"date"`
	CheckIn          *string `json:"check_in,omitempty"`
	CheckOut         *string `json:"check_out,omitempty"`
	WorkedMinutes    *int    `json:"worked_minutes,omitempty"`
	LateMinutes      *int    `json:"late_minutes,omitempty"`
	Status           string  `json:"status"`
	Mode             *string `json:"mode,omitempty"`
	TimezoneUsed     string  `json:"timezone_used,omitempty"`
	TimezoneFallback bool    `json:"timezone_fallback,omitempty"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

// ========================================
// LIST DTOs
// ========================================

type Filter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Search     *string `json:"search,omitempty"` // employee name, free text
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`
	Status     *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`

	SortBy    string `json:"sort_by"`    // date, employee_name, check_in, check_out, status
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

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

	if f.Status != nil && !validator.IsInSlice(*f.Status, ValidStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: present, absent, late, half_day, leave, remote",
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
		validSortFields := []string{"date", "employee_name", "check_in", "check_out", "status"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: date, employee_name, check_in, check_out, status",
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

type ListResponse struct {
	TotalCount int64                   `json:"total_count"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
	TotalPages int                     `json:"total_pages"`
	Days       []AttendanceDayResponse `json:"days"`
}

// ========================================
// BULK CHECKOUT DTOs
// ========================================

type BulkCheckoutRequest struct {
	// Date is the attendance-day to sweep (YYYY-MM-DD). Empty resolves
	// "today" from the checkout instant and the client zone info.
	Date        string   `json:"date,omitempty"`
	EmployeeIDs []string `json:"employee_ids,omitempty"`
	Reason      *string  `json:"reason,omitempty"`
	// Checkout is the RFC3339 closure instant; empty means "now".
	Checkout      string `json:"checkout,omitempty"`
	Timezone      string `json:"timezone,omitempty"`
	OffsetMinutes *int   `json:"offset_minutes,omitempty"`
}

func (r *BulkCheckoutRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Date != "" {
		if _, valid := validator.IsValidDate(r.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if r.Checkout != "" {
		if _, valid := validator.IsValidDateTime(r.Checkout); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "checkout",
				Message: "checkout must be an RFC3339 instant",
			})
		}
	}

	for _, id := range r.EmployeeIDs {
		if validator.IsEmpty(id) {
			errs = append(errs, validator.ValidationError{
				Field:   "employee_ids",
				Message: "employee_ids must not contain empty ids",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Per-employee outcome kinds for one bulk checkout sweep.
const (
	OutcomeClosed        = "closed"
	OutcomeAlreadyClosed = "already_closed"
	OutcomeNoOpenSession = "no_open_session"
	OutcomeError         = "error"
)

type EmployeeOutcome struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	Outcome      string `json:"outcome"`
	Detail       string `json:"detail,omitempty"`
}

// BulkCheckoutResult is ephemeral: it describes one sweep invocation and is
// never persisted as its own entity.
type BulkCheckoutResult struct {
	Date    string            `json:"date"`
	Closed  int               `json:"closed"`
	Skipped int               `json:"skipped"`
	Errors  int               `json:"errors"`
	Results []EmployeeOutcome `json:"results"`
}
