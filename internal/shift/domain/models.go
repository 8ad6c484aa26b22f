package domain

import "time"

const (
	StatusOpen      = "open"
	StatusClosed    = "closed"
	StatusCompleted = "completed"
)

// Shift is one driver's active window on one route. AvailableSeats is the
// contended counter: trip creation decrements it, reject and early cancel
// give seats back. 0 <= AvailableSeats <= TotalSeats always holds.
type Shift struct {
	ID             string     `json:"id"`
	DriverID       string     `json:"driver_id"`
	RouteID        string     `json:"route_id"`
	VehicleID      *string    `json:"vehicle_id,omitempty"`
	Status         string     `json:"status"`
	TotalSeats     int        `json:"total_seats"`
	AvailableSeats int        `json:"available_seats"`
	CreatedAt      time.Time  `json:"created_at"`
	ClosedAt       *time.Time `json:"closed_at,omitempty"`
}

type OpenShiftInput struct {
	RouteID    string  `json:"route_id"`
	VehicleID  *string `json:"vehicle_id,omitempty"`
	TotalSeats int     `json:"total_seats"`
}
