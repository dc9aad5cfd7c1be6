package response

import (
	"errors"
	"net/http"

	"github.com/orgdesk/orgdesk-backend-go/internal/domain/attendance"
	"github.com/orgdesk/orgdesk-backend-go/internal/domain/employee"
	"github.com/orgdesk/orgdesk-backend-go/internal/domain/exception"
	"github.com/orgdesk/orgdesk-backend-go/internal/domain/leave"
	"github.com/orgdesk/orgdesk-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance session errors
	case errors.Is(err, attendance.ErrAlreadyOpen):
		Conflict(w, CodeSessionAlreadyOpen, "A session is already open for this employee")
	case errors.Is(err, attendance.ErrNoOpenSession):
		Conflict(w, CodeNoOpenSession, "No open session for this employee")
	case errors.Is(err, attendance.ErrAlreadyClosed):
		Conflict(w, CodeSessionAlreadyClosed, "Session is already closed")
	case errors.Is(err, attendance.ErrInvalidTimezone):
		BadRequest(w, "Unresolvable timezone or offset", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance day not found")

	// Exception log errors
	case errors.Is(err, exception.ErrLogNotFound):
		NotFound(w, "Exception log not found")
	case errors.Is(err, exception.ErrDuplicateLog):
		Conflict(w, CodeDuplicateLog, "Exception log already exists for this day")
	case errors.Is(err, exception.ErrInvalidTransition):
		Conflict(w, CodeInvalidTransition, err.Error())
	case errors.Is(err, exception.ErrReviewerRequired):
		BadRequest(w, "Reviewer id is required", nil)

	// Leave errors
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave log not found")
	case errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, CodeOverlappingLeave, "Leave span overlaps an existing request")
	case errors.Is(err, leave.ErrInvalidTransition):
		Conflict(w, CodeInvalidTransition, err.Error())

	// Employee directory errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
