package validation

import (
	"fmt"
	"strings"

	"realgo/internal/shared/apperrors"

	"github.com/google/uuid"
)

var validPaymentMethods = []string{"cash", "yape", "plin"}

const (
	MinSeatsPerTrip = 1
	MaxSeatsPerTrip = 10

	MinVehicleSeats = 1
	MaxVehicleSeats = 20
)

// ValidateUUID validates that a string is a valid UUID
func ValidateUUID(id, fieldName string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.Validation("%s is not a valid UUID", fieldName)
	}
	return nil
}

// ValidatePaymentMethod validates that a payment method is one of the allowed values
func ValidatePaymentMethod(method string) error {
	for _, m := range validPaymentMethods {
		if method == m {
			return nil
		}
	}
	return apperrors.Validation("invalid payment_method: must be one of %s", strings.Join(validPaymentMethods, ", "))
}

// ValidateSeatsRequested validates the number of seats booked on a single trip
func ValidateSeatsRequested(seats int) error {
	if seats < MinSeatsPerTrip || seats > MaxSeatsPerTrip {
		return apperrors.Validation("seats_requested must be between %d and %d", MinSeatsPerTrip, MaxSeatsPerTrip)
	}
	return nil
}

// ValidateSeatCapacity validates a vehicle or shift seat capacity
func ValidateSeatCapacity(seats int, fieldName string) error {
	if seats < MinVehicleSeats || seats > MaxVehicleSeats {
		return apperrors.Validation("%s must be between %d and %d", fieldName, MinVehicleSeats, MaxVehicleSeats)
	}
	return nil
}

// ValidateStringNotEmpty validates that a string is not empty
func ValidateStringNotEmpty(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return apperrors.Validation("%s cannot be empty", fieldName)
	}
	return nil
}

// ValidateRole validates that a role is one of the recognized values
func ValidateRole(role string) error {
	switch role {
	case "passenger", "driver", "admin":
		return nil
	}
	return apperrors.Validation(fmt.Sprintf("invalid role: %q", role))
}
