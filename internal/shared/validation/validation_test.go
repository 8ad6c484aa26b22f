package validation

import (
	"errors"
	"testing"

	"realgo/internal/shared/apperrors"
)

func TestValidateUUID(t *testing.T) {
	if err := ValidateUUID("11111111-1111-1111-1111-111111111111", "route_id"); err != nil {
		t.Fatalf("valid uuid rejected: %v", err)
	}
	for _, bad := range []string{"", "not-a-uuid", "11111111-1111-1111-1111"} {
		if err := ValidateUUID(bad, "route_id"); !errors.Is(err, apperrors.ErrValidation) {
			t.Errorf("ValidateUUID(%q): want ErrValidation, got %v", bad, err)
		}
	}
}

func TestValidatePaymentMethod(t *testing.T) {
	for _, ok := range []string{"cash", "yape", "plin"} {
		if err := ValidatePaymentMethod(ok); err != nil {
			t.Errorf("ValidatePaymentMethod(%q): %v", ok, err)
		}
	}
	for _, bad := range []string{"", "card", "CASH"} {
		if err := ValidatePaymentMethod(bad); !errors.Is(err, apperrors.ErrValidation) {
			t.Errorf("ValidatePaymentMethod(%q): want ErrValidation, got %v", bad, err)
		}
	}
}

func TestValidateSeatsRequested(t *testing.T) {
	for _, ok := range []int{MinSeatsPerTrip, 5, MaxSeatsPerTrip} {
		if err := ValidateSeatsRequested(ok); err != nil {
			t.Errorf("ValidateSeatsRequested(%d): %v", ok, err)
		}
	}
	for _, bad := range []int{0, -1, MaxSeatsPerTrip + 1} {
		if err := ValidateSeatsRequested(bad); !errors.Is(err, apperrors.ErrValidation) {
			t.Errorf("ValidateSeatsRequested(%d): want ErrValidation, got %v", bad, err)
		}
	}
}

func TestValidateSeatCapacity(t *testing.T) {
	if err := ValidateSeatCapacity(MaxVehicleSeats, "seat_capacity"); err != nil {
		t.Fatalf("capacity %d rejected: %v", MaxVehicleSeats, err)
	}
	if err := ValidateSeatCapacity(MaxVehicleSeats+1, "seat_capacity"); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("capacity %d: want ErrValidation, got %v", MaxVehicleSeats+1, err)
	}
}

func TestValidateStringNotEmpty(t *testing.T) {
	if err := ValidateStringNotEmpty("hola", "body"); err != nil {
		t.Fatalf("non-empty string rejected: %v", err)
	}
	for _, bad := range []string{"", "   ", "\t\n"} {
		if err := ValidateStringNotEmpty(bad, "body"); !errors.Is(err, apperrors.ErrValidation) {
			t.Errorf("ValidateStringNotEmpty(%q): want ErrValidation, got %v", bad, err)
		}
	}
}

func TestValidateRole(t *testing.T) {
	for _, ok := range []string{"passenger", "driver", "admin"} {
		if err := ValidateRole(ok); err != nil {
			t.Errorf("ValidateRole(%q): %v", ok, err)
		}
	}
	if err := ValidateRole("superuser"); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("ValidateRole(superuser): want ErrValidation, got %v", err)
	}
}
