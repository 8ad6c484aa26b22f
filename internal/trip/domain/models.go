package domain

import "time"

// Trip statuses. rejected, completed and cancelled are terminal.
const (
	StatusRequested = "requested"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
	StatusOnboard   = "onboard"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Trip is the central transactional entity. Price and currency are computed
// once at creation and never change.
type Trip struct {
	ID             string    `json:"id"`
	RouteID        string    `json:"route_id"`
	ShiftID        *string   `json:"shift_id,omitempty"`
	PassengerID    string    `json:"passenger_id"`
	DriverID       *string   `json:"driver_id,omitempty"`
	PickupStopID   *string   `json:"pickup_stop_id,omitempty"`
	DropoffStopID  *string   `json:"dropoff_stop_id,omitempty"`
	SeatsRequested int       `json:"seats_requested"`
	Status         string    `json:"status"`
	PaymentMethod  string    `json:"payment_method"`
	PriceCents     int       `json:"price_cents"`
	Currency       string    `json:"currency"`
	PickupNote     string    `json:"pickup_note,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type CreateTripInput struct {
	RouteID        string  `json:"route_id"`
	PickupStopID   *string `json:"pickup_stop_id,omitempty"`
	DropoffStopID  *string `json:"dropoff_stop_id,omitempty"`
	SeatsRequested int     `json:"seats_requested"`
	PaymentMethod  string  `json:"payment_method"`
	PickupNote     string  `json:"pickup_note,omitempty"`
}

// BookingRoute is the slice of a route needed to price a trip.
type BookingRoute struct {
	ID             string
	BasePriceCents int
	Currency       string
}

// Message belongs to exactly one trip; append-only except for the read flag.
type Message struct {
	ID        string    `json:"id"`
	TripID    string    `json:"trip_id"`
	SenderID  string    `json:"sender_id"`
	Body      string    `json:"body"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
