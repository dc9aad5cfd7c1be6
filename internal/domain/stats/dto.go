package stats

import (
	"github.com/orgdesk/orgdesk-backend-go/internal/pkg/validator"
)

type PeriodRequest struct {
	Period Period `json:"period"`
	// Date anchors the period window (YYYY-MM-DD); empty means today.
	Date       string  `json:"date,omitempty"`
	EmployeeID *string `json:"employee_id,omitempty"`
	Breakdown  bool    `json:"breakdown,omitempty"`
}

func (r *PeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(string(r.Period), ValidPeriods) {
		errs = append(errs, validator.ValidationError{
			Field:   "period",
			Message: "period must be one of: daily, weekly, monthly, yearly",
		})
	}

	if r.Date != "" {
		if _, valid := validator.IsValidDate(r.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MonthlyRequest struct {
	// Month in YYYY-MM form; empty means the current month.
	Month      string  `json:"month,omitempty"`
	EmployeeID *string `json:"employee_id,omitempty"`
}

func (r *MonthlyRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month != "" {
		if _, valid := validator.IsValidDate(r.Month + "-01"); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be in YYYY-MM format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// MonthlyEmployeeStats is one employee's counter row for a month, read from
// the maintained monthly summaries rather than recomputed by rescan.
type MonthlyEmployeeStats struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	Month        string  `json:"month"`
	PresentDays  int     `json:"present_days"`
	AbsentDays   int     `json:"absent_days"`
	LateDays     int     `json:"late_days"`
	LeaveDays    int     `json:"leave_days"`
	HalfDays     int     `json:"half_days"`
	RemoteDays   int     `json:"remote_days"`
	Rate         float64 `json:"attendance_rate"`
}

type MonthlyResponse struct {
	Month     string                 `json:"month"`
	Employees []MonthlyEmployeeStats `json:"employees"`
}

type EmployeeSummaryRequest struct {
	EmployeeID string `json:"employee_id"`
	// Months is how many trailing months of counter rows to include,
	// current month inclusive. Zero means the default window.
	Months int `json:"months,omitempty"`
}

func (r *EmployeeSummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	} else if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	if r.Months < 0 || r.Months > 24 {
		errs = append(errs, validator.ValidationError{
			Field:   "months",
			Message: "months must be between 1 and 24",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// LifetimeStats mirrors the employee's all-time counter row.
type LifetimeStats struct {
	PresentDays int `json:"present_days"`
	AbsentDays  int `json:"absent_days"`
	LateDays    int `json:"late_days"`
	LeaveDays   int `json:"leave_days"`
	HalfDays    int `json:"half_days"`
	RemoteDays  int `json:"remote_days"`
}

// ExceptionCounts groups exception log totals by kind over the summary
// window.
type ExceptionCounts struct {
	Late    int `json:"late"`
	HalfDay int `json:"half_day"`
}

type EmployeeSummaryResponse struct {
	EmployeeID   string                 `json:"employee_id"`
	EmployeeName string                 `json:"employee_name"`
	Lifetime     LifetimeStats          `json:"lifetime"`
	Months       []MonthlyEmployeeStats `json:"months"`
	Exceptions   ExceptionCounts        `json:"exceptions"`
}
