package app

import (
	"context"
	"time"

	"realgo/internal/shared/apperrors"
	"realgo/internal/shared/mq"
	"realgo/internal/shared/util"
	"realgo/internal/shared/validation"
	"realgo/internal/trip/domain"
)

type TripService struct {
	repo   domain.TripRepository
	pub    domain.Publisher
	logger *util.Logger
}

func NewTripService(repo domain.TripRepository, pub domain.Publisher, logger *util.Logger) *TripService {
	return &TripService{repo: repo, pub: pub, logger: logger}
}

// CreateTrip books seats on the given route. Validation happens up front;
// shift selection and the seat decrement are one storage transaction, so two
// concurrent bookings can never oversell a shift.
func (s *TripService) CreateTrip(ctx context.Context, passengerID string, input domain.CreateTripInput) (*domain.Trip, error) {
	instance := "TripService.CreateTrip"

	if err := validation.ValidateUUID(input.RouteID, "route_id"); err != nil {
		return nil, err
	}
	if err := validation.ValidatePaymentMethod(input.PaymentMethod); err != nil {
		return nil, err
	}
	if err := validation.ValidateSeatsRequested(input.SeatsRequested); err != nil {
		return nil, err
	}
	if input.PickupStopID != nil && input.DropoffStopID != nil && *input.PickupStopID == *input.DropoffStopID {
		return nil, apperrors.Validation("pickup_stop_id and dropoff_stop_id must be different")
	}

	route, err := s.repo.GetBookingRoute(ctx, input.RouteID)
	if err != nil {
		return nil, err
	}

	for _, stop := range []*string{input.PickupStopID, input.DropoffStopID} {
		if stop == nil {
			continue
		}
		if err := validation.ValidateUUID(*stop, "stop_id"); err != nil {
			return nil, err
		}
		owns, err := s.repo.StopBelongsToRoute(ctx, *stop, input.RouteID)
		if err != nil {
			return nil, err
		}
		if !owns {
			return nil, apperrors.Validation("stop %s does not belong to the route", *stop)
		}
	}

	trip := domain.Trip{
		ID:             util.NewID(),
		RouteID:        route.ID,
		PassengerID:    passengerID,
		PickupStopID:   input.PickupStopID,
		DropoffStopID:  input.DropoffStopID,
		SeatsRequested: input.SeatsRequested,
		PaymentMethod:  input.PaymentMethod,
		PriceCents:     route.BasePriceCents * input.SeatsRequested,
		Currency:       route.Currency,
		PickupNote:     input.PickupNote,
	}

	created, err := s.repo.CreateTrip(ctx, trip)
	if err != nil {
		return nil, err
	}

	s.logger.OK(instance, "trip created: "+created.ID)
	s.publishStatus(ctx, created)

	return created, nil
}

func (s *TripService) GetTrip(ctx context.Context, tripID, actorID, role string) (*domain.Trip, error) {
	if err := validation.ValidateUUID(tripID, "trip_id"); err != nil {
		return nil, err
	}

	trip, err := s.repo.GetTripByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if role != "admin" && !isParticipant(trip, actorID) {
		return nil, apperrors.Forbidden("trip belongs to other users")
	}

	return trip, nil
}

// Transition drives the trip state machine. The capability check runs before
// anything else: driver actions require the matching driver, cancel requires
// the trip's passenger.
func (s *TripService) Transition(ctx context.Context, tripID, actorID, role string, action domain.Action) (*domain.Trip, error) {
	instance := "TripService.Transition"

	if err := validation.ValidateUUID(tripID, "trip_id"); err != nil {
		return nil, err
	}

	trip, err := s.repo.GetTripByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(ctx, trip, actorID, role, action); err != nil {
		return nil, err
	}

	target, err := domain.Apply(trip.Status, action)
	if err != nil {
		return nil, err
	}

	update := domain.TransitionUpdate{
		TripID:     trip.ID,
		FromStatus: trip.Status,
		ToStatus:   target,
		Action:     action,
	}
	if action == domain.ActionAccept {
		update.SetDriverID = actorID
	}
	if trip.ShiftID != nil && domain.ReleasesSeats(trip.Status, action) {
		update.ReleaseSeats = true
		update.ShiftID = *trip.ShiftID
		update.Seats = trip.SeatsRequested
	}
	if action == domain.ActionComplete {
		update.IncrementDriverTrips = true
		update.DriverID = actorID
	}

	updated, err := s.repo.ApplyTransition(ctx, update)
	if err != nil {
		return nil, err
	}

	s.logger.OK(instance, "trip "+updated.ID+" -> "+updated.Status)
	s.publishStatus(ctx, updated)

	return updated, nil
}

func (s *TripService) authorize(ctx context.Context, trip *domain.Trip, actorID, role string, action domain.Action) error {
	switch action {
	case domain.ActionAccept, domain.ActionReject:
		if role != "driver" {
			return apperrors.Forbidden("only drivers can %s trips", string(action))
		}
		if trip.ShiftID == nil {
			return apperrors.Forbidden("trip has no shift assigned")
		}
		owner, err := s.repo.ShiftOwner(ctx, *trip.ShiftID)
		if err != nil {
			return err
		}
		if owner != actorID {
			return apperrors.Forbidden("trip is assigned to another driver's shift")
		}
	case domain.ActionOnboard, domain.ActionComplete:
		if role != "driver" {
			return apperrors.Forbidden("only drivers can %s trips", string(action))
		}
		if trip.DriverID == nil || *trip.DriverID != actorID {
			return apperrors.Forbidden("trip is assigned to another driver")
		}
	case domain.ActionCancel:
		if trip.PassengerID != actorID {
			return apperrors.Forbidden("only the trip's passenger can cancel")
		}
	}
	return nil
}

func (s *TripService) publishStatus(ctx context.Context, trip *domain.Trip) {
	event := domain.TripStatusEvent{
		TripID:         trip.ID,
		RouteID:        trip.RouteID,
		ShiftID:        trip.ShiftID,
		PassengerID:    trip.PassengerID,
		DriverID:       trip.DriverID,
		Status:         trip.Status,
		SeatsRequested: trip.SeatsRequested,
		PriceCents:     trip.PriceCents,
		Currency:       trip.Currency,
		OccurredAt:     time.Now().UTC(),
	}

	// Best-effort: the booking already committed, a lost event must not
	// fail the request.
	if err := s.pub.Publish(ctx, mq.TripTopicExchange, "trip.status."+trip.Status, event); err != nil {
		s.logger.Warn("TripService.publishStatus", "failed to publish trip event: "+err.Error())
	}
}
