package exception

import "fmt"

// ReviewAction is a reviewer-submitted action on a log. Approve and reject
// move ActionTaken; mark_justified flips the justified flag on late logs
// without touching ActionTaken.
type ReviewAction string

const (
	ReviewApprove       ReviewAction = "approve"
	ReviewReject        ReviewAction = "reject"
	ReviewMarkJustified ReviewAction = "mark_justified"
)

var ValidReviewActions = []string{
	string(ReviewApprove),
	string(ReviewReject),
	string(ReviewMarkJustified),
}

// CanReview checks whether the requested action is a legal move for the
// log's current state. Approve and reject require a pending log. Marking a
// late log justified is allowed in any action state but only once.
func CanReview(log *Log, action ReviewAction) error {
	switch action {
	case ReviewApprove, ReviewReject:
		if log.ActionTaken != ActionPending {
			return fmt.Errorf("log %s is already %s: %w", log.ID, log.ActionTaken, ErrInvalidTransition)
		}
		return nil
	case ReviewMarkJustified:
		if log.Kind != KindLate {
			return fmt.Errorf("mark_justified only applies to late logs: %w", ErrInvalidTransition)
		}
		if log.Justified {
			return fmt.Errorf("log %s is already justified: %w", log.ID, ErrInvalidTransition)
		}
		return nil
	default:
		return fmt.Errorf("unknown action %q: %w", action, ErrInvalidTransition)
	}
}

// NextAction maps a review action to the resulting ActionTaken state.
// mark_justified keeps the current state.
func NextAction(current Action, action ReviewAction) Action {
	switch action {
	case ReviewApprove:
		return ActionApproved
	case ReviewReject:
		return ActionRejected
	default:
		return current
	}
}
