package domain

import "time"

// TripStatusEvent is published to the trip topic exchange on every lifecycle
// change, routing key trip.status.<status>. Consumers are external; this
// service never subscribes.
type TripStatusEvent struct {
	TripID         string    `json:"trip_id"`
	RouteID        string    `json:"route_id"`
	ShiftID        *string   `json:"shift_id,omitempty"`
	PassengerID    string    `json:"passenger_id"`
	DriverID       *string   `json:"driver_id,omitempty"`
	Status         string    `json:"status"`
	SeatsRequested int       `json:"seats_requested"`
	PriceCents     int       `json:"price_cents"`
	Currency       string    `json:"currency"`
	OccurredAt     time.Time `json:"occurred_at"`
}
