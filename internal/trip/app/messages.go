package app

import (
	"context"
	"time"

	"realgo/internal/shared/apperrors"
	"realgo/internal/shared/util"
	"realgo/internal/shared/validation"
	"realgo/internal/trip/domain"
)

// SendMessage appends to the trip's chat log. Only the trip's passenger and
// assigned driver may write.
func (s *TripService) SendMessage(ctx context.Context, tripID, senderID, body string) (*domain.Message, error) {
	if err := validation.ValidateUUID(tripID, "trip_id"); err != nil {
		return nil, err
	}
	if err := validation.ValidateStringNotEmpty(body, "body"); err != nil {
		return nil, err
	}

	trip, err := s.repo.GetTripByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if !isParticipant(trip, senderID) {
		return nil, apperrors.Forbidden("only trip participants can send messages")
	}

	return s.repo.CreateMessage(ctx, domain.Message{
		ID:       util.NewID(),
		TripID:   tripID,
		SenderID: senderID,
		Body:     body,
	})
}

// ListMessages returns the trip's messages oldest first. since filters to
// messages created strictly after it; the client polls with its last seen
// timestamp.
func (s *TripService) ListMessages(ctx context.Context, tripID, actorID, role string, since *time.Time) ([]domain.Message, error) {
	if err := validation.ValidateUUID(tripID, "trip_id"); err != nil {
		return nil, err
	}

	trip, err := s.repo.GetTripByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if role != "admin" && !isParticipant(trip, actorID) {
		return nil, apperrors.Forbidden("only trip participants can read messages")
	}

	return s.repo.ListMessages(ctx, tripID, since)
}

// MarkMessagesRead flips the read flag on messages sent by the other party.
func (s *TripService) MarkMessagesRead(ctx context.Context, tripID, actorID string) (int64, error) {
	if err := validation.ValidateUUID(tripID, "trip_id"); err != nil {
		return 0, err
	}

	trip, err := s.repo.GetTripByID(ctx, tripID)
	if err != nil {
		return 0, err
	}
	if !isParticipant(trip, actorID) {
		return 0, apperrors.Forbidden("only trip participants can mark messages read")
	}

	return s.repo.MarkMessagesRead(ctx, tripID, actorID)
}

func isParticipant(trip *domain.Trip, userID string) bool {
	if trip.PassengerID == userID {
		return true
	}
	return trip.DriverID != nil && *trip.DriverID == userID
}
