package domain

import (
	"context"
	"time"
)

// TransitionUpdate describes one status change and its storage side effects.
// The repository applies it conditionally on FromStatus so a concurrent
// change surfaces as an invalid transition instead of a lost update.
type TransitionUpdate struct {
	TripID      string
	FromStatus  string
	ToStatus    string
	Action      Action
	SetDriverID string // non-empty on accept

	ReleaseSeats bool
	ShiftID      string
	Seats        int

	IncrementDriverTrips bool
	DriverID             string
}

type TripRepository interface {
	GetBookingRoute(ctx context.Context, routeID string) (*BookingRoute, error)
	StopBelongsToRoute(ctx context.Context, stopID, routeID string) (bool, error)
	// CreateTrip atomically picks the earliest open shift on the route with
	// enough seats, decrements its counter and inserts the trip.
	CreateTrip(ctx context.Context, trip Trip) (*Trip, error)
	GetTripByID(ctx context.Context, tripID string) (*Trip, error)
	ShiftOwner(ctx context.Context, shiftID string) (string, error)
	ApplyTransition(ctx context.Context, update TransitionUpdate) (*Trip, error)

	CreateMessage(ctx context.Context, msg Message) (*Message, error)
	ListMessages(ctx context.Context, tripID string, since *time.Time) ([]Message, error)
	MarkMessagesRead(ctx context.Context, tripID, readerID string) (int64, error)
}

type Publisher interface {
	Publish(ctx context.Context, exchange, routingKey string, event interface{}) error
}
