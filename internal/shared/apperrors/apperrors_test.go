package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("seats_requested must be between 1 and 10"), http.StatusBadRequest},
		{NotFound("route"), http.StatusNotFound},
		{Conflict("no units available"), http.StatusConflict},
		{InvalidTransition("completed", "cancel"), http.StatusConflict},
		{Forbidden("only drivers can accept trips"), http.StatusForbidden},
		{ErrUnauthorized, http.StatusUnauthorized},
		{Internal(errors.New("connection reset")), http.StatusInternalServerError},
		{errors.New("something else"), http.StatusInternalServerError},
	}

	for _, c := range cases {
		if got := Status(c.err); got != c.want {
			t.Errorf("Status(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestSentinelsSurviveWrapping(t *testing.T) {
	err := fmt.Errorf("create trip: %w", Conflict("no units available"))
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("wrapped conflict lost its sentinel: %v", err)
	}
	if Status(err) != http.StatusConflict {
		t.Fatalf("Status(wrapped) = %d, want 409", Status(err))
	}
}

func TestConstructorMessages(t *testing.T) {
	err := NotFound("trip")
	if got := err.Error(); got != "not found: trip" {
		t.Errorf("NotFound message = %q", got)
	}

	err = InvalidTransition("requested", "complete")
	if got := err.Error(); got != `invalid state transition: cannot complete a trip in status "requested"` {
		t.Errorf("InvalidTransition message = %q", got)
	}
}
