package domain

import "realgo/internal/shared/apperrors"

// Action is a requested trip status transition.
type Action string

const (
	ActionAccept   Action = "accept"
	ActionReject   Action = "reject"
	ActionOnboard  Action = "onboard"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
)

type transition struct {
	from   map[string]bool
	target string
}

var transitions = map[Action]transition{
	ActionAccept:   {from: map[string]bool{StatusRequested: true}, target: StatusAccepted},
	ActionReject:   {from: map[string]bool{StatusRequested: true}, target: StatusRejected},
	ActionOnboard:  {from: map[string]bool{StatusAccepted: true}, target: StatusOnboard},
	ActionComplete: {from: map[string]bool{StatusOnboard: true}, target: StatusCompleted},
	ActionCancel:   {from: map[string]bool{StatusRequested: true, StatusAccepted: true}, target: StatusCancelled},
}

// ParseAction maps an URL action segment to a known transition.
func ParseAction(s string) (Action, error) {
	a := Action(s)
	if _, ok := transitions[a]; !ok {
		return "", apperrors.Validation("unknown trip action %q", s)
	}
	return a, nil
}

// Apply returns the status an action leads to from the current one, or an
// InvalidStateTransition error when the action is not allowed there.
func Apply(current string, action Action) (string, error) {
	t, ok := transitions[action]
	if !ok {
		return "", apperrors.Validation("unknown trip action %q", string(action))
	}
	if !t.from[current] {
		return "", apperrors.InvalidTransition(current, string(action))
	}
	return t.target, nil
}

// ReleasesSeats reports whether performing action from the given status gives
// the booked seats back to the shift. Rejecting always releases; cancelling
// only before a driver accepted (after acceptance the capacity stays
// committed and the shift owner reconciles by closing the shift).
func ReleasesSeats(current string, action Action) bool {
	switch action {
	case ActionReject:
		return true
	case ActionCancel:
		return current == StatusRequested
	}
	return false
}
