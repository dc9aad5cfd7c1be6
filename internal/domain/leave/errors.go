package leave

import "errors"

var (
	ErrLeaveNotFound     = errors.New("leave log not found")
	ErrOverlappingLeave  = errors.New("leave span overlaps an existing request")
	ErrInvalidTransition = errors.New("invalid leave status transition")
)
