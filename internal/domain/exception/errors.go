package exception

import "errors"

var (
	ErrLogNotFound       = errors.New("exception log not found")
	ErrDuplicateLog      = errors.New("exception log already exists for this employee, date and kind")
	ErrInvalidTransition = errors.New("invalid exception log transition")
	ErrReviewerRequired  = errors.New("reviewer id is required")
)
