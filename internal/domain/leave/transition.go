package leave

import "fmt"

// transitions is the legal edge set: pending fans out to every decision,
// approved can still be cancelled, rejected and cancelled are terminal.
var transitions = map[Status][]Status{
	StatusPending:   {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved:  {StatusCancelled},
	StatusRejected:  {},
	StatusCancelled: {},
}

// CanTransition checks one edge against the transition table.
func CanTransition(from, to Status) error {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return fmt.Errorf("cannot move leave from %s to %s: %w", from, to, ErrInvalidTransition)
}
