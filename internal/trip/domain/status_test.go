package domain

import (
	"errors"
	"testing"

	"realgo/internal/shared/apperrors"
)

func TestApplyAllowedTransitions(t *testing.T) {
	cases := []struct {
		from   string
		action Action
		want   string
	}{
		{StatusRequested, ActionAccept, StatusAccepted},
		{StatusRequested, ActionReject, StatusRejected},
		{StatusRequested, ActionCancel, StatusCancelled},
		{StatusAccepted, ActionOnboard, StatusOnboard},
		{StatusAccepted, ActionCancel, StatusCancelled},
		{StatusOnboard, ActionComplete, StatusCompleted},
	}

	for _, c := range cases {
		got, err := Apply(c.from, c.action)
		if err != nil {
			t.Errorf("Apply(%s, %s): unexpected error %v", c.from, c.action, err)
			continue
		}
		if got != c.want {
			t.Errorf("Apply(%s, %s) = %s, want %s", c.from, c.action, got, c.want)
		}
	}
}

func TestApplyRejectsIllegalTransitions(t *testing.T) {
	cases := []struct {
		from   string
		action Action
	}{
		{StatusRequested, ActionOnboard}, // onboard before accept
		{StatusRequested, ActionComplete},
		{StatusAccepted, ActionAccept},
		{StatusAccepted, ActionReject},
		{StatusAccepted, ActionComplete},
		{StatusOnboard, ActionCancel},
		{StatusOnboard, ActionAccept},
	}

	for _, c := range cases {
		if _, err := Apply(c.from, c.action); !errors.Is(err, apperrors.ErrInvalidTransition) {
			t.Errorf("Apply(%s, %s): want ErrInvalidTransition, got %v", c.from, c.action, err)
		}
	}
}

func TestTerminalStatesRejectEverything(t *testing.T) {
	terminals := []string{StatusRejected, StatusCompleted, StatusCancelled}
	actions := []Action{ActionAccept, ActionReject, ActionOnboard, ActionComplete, ActionCancel}

	for _, status := range terminals {
		for _, action := range actions {
			if _, err := Apply(status, action); !errors.Is(err, apperrors.ErrInvalidTransition) {
				t.Errorf("Apply(%s, %s): want ErrInvalidTransition, got %v", status, action, err)
			}
		}
	}
}

func TestReleasesSeats(t *testing.T) {
	cases := []struct {
		from   string
		action Action
		want   bool
	}{
		{StatusRequested, ActionReject, true},
		{StatusRequested, ActionCancel, true},
		{StatusAccepted, ActionCancel, false}, // capacity stays committed after acceptance
		{StatusRequested, ActionAccept, false},
		{StatusOnboard, ActionComplete, false},
	}

	for _, c := range cases {
		if got := ReleasesSeats(c.from, c.action); got != c.want {
			t.Errorf("ReleasesSeats(%s, %s) = %v, want %v", c.from, c.action, got, c.want)
		}
	}
}

func TestParseAction(t *testing.T) {
	if _, err := ParseAction("accept"); err != nil {
		t.Fatalf("ParseAction(accept): %v", err)
	}
	if _, err := ParseAction("teleport"); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("ParseAction(teleport): want ErrValidation, got %v", err)
	}
}
