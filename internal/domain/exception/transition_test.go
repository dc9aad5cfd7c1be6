package exception

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func pendingLateLog() *Log {
	minutes := 30
	return &Log{
		ID:          "0190f3f1-0000-7000-8000-000000000001",
		Kind:        KindLate,
		MinutesLate: &minutes,
		ActionTaken: ActionPending,
	}
}

func TestCanReview_PendingAcceptsDecision(t *testing.T) {
	log := pendingLateLog()

	assert.NoError(t, CanReview(log, ReviewApprove))
	assert.NoError(t, CanReview(log, ReviewReject))
}

func TestCanReview_DecidedLogRejectsSecondDecision(t *testing.T) {
	cases := []struct {
		state  Action
		action ReviewAction
	}{
		{ActionApproved, ReviewApprove},
		{ActionApproved, ReviewReject},
		{ActionRejected, ReviewApprove},
		{ActionRejected, ReviewReject},
	}
	for _, c := range cases {
		log := pendingLateLog()
		log.ActionTaken = c.state

		err := CanReview(log, c.action)
		assert.True(t, errors.Is(err, ErrInvalidTransition), "%s on %s", c.action, c.state)
		// Failed checks never move the state.
		assert.Equal(t, c.state, log.ActionTaken)
	}
}

func TestCanReview_MarkJustified(t *testing.T) {
	// Allowed on a pending late log.
	log := pendingLateLog()
	assert.NoError(t, CanReview(log, ReviewMarkJustified))

	// Allowed after a decision too.
	log.ActionTaken = ActionRejected
	assert.NoError(t, CanReview(log, ReviewMarkJustified))

	// Never twice.
	log.Justified = true
	err := CanReview(log, ReviewMarkJustified)
	assert.True(t, errors.Is(err, ErrInvalidTransition))

	// Never on a half-day log.
	half := &Log{ID: "x", Kind: KindHalfDay, ActionTaken: ActionPending}
	err = CanReview(half, ReviewMarkJustified)
	assert.True(t, errors.Is(err, ErrInvalidTransition))
}

func TestCanReview_UnknownAction(t *testing.T) {
	err := CanReview(pendingLateLog(), ReviewAction("escalate"))
	assert.True(t, errors.Is(err, ErrInvalidTransition))
}

func TestNextAction(t *testing.T) {
	assert.Equal(t, ActionApproved, NextAction(ActionPending, ReviewApprove))
	assert.Equal(t, ActionRejected, NextAction(ActionPending, ReviewReject))
	// mark_justified keeps whatever state the log is in.
	assert.Equal(t, ActionPending, NextAction(ActionPending, ReviewMarkJustified))
	assert.Equal(t, ActionRejected, NextAction(ActionRejected, ReviewMarkJustified))
}

func TestReviewRequestValidate(t *testing.T) {
	valid := &ReviewRequest{
		LogID:      "0190f3f1-0000-7000-8000-000000000001",
		Kind:       KindLate,
		ReviewerID: "0190f3f1-0000-7000-8000-000000000002",
		Action:     ReviewApprove,
	}
	assert.NoError(t, valid.Validate())

	missingReviewer := *valid
	missingReviewer.ReviewerID = ""
	assert.Error(t, missingReviewer.Validate())

	badAction := *valid
	badAction.Action = "escalate"
	assert.Error(t, badAction.Validate())

	justifyHalf := *valid
	justifyHalf.Kind = KindHalfDay
	justifyHalf.Action = ReviewMarkJustified
	assert.Error(t, justifyHalf.Validate())

	adjustOnHalf := *valid
	adjustOnHalf.Kind = KindHalfDay
	status := "leave"
	adjustOnHalf.AdjustStatus = &status
	assert.Error(t, adjustOnHalf.Validate())

	goodAdjust := *valid
	goodAdjust.Kind = KindHalfDay
	present := "present"
	goodAdjust.AdjustStatus = &present
	assert.NoError(t, goodAdjust.Validate())

	negativeMinutes := *valid
	minutes := -5
	negativeMinutes.AdjustMinutes = &minutes
	assert.Error(t, negativeMinutes.Validate())
}
