package app

import (
	"context"

	"realgo/internal/shared/apperrors"
	"realgo/internal/shared/util"
	"realgo/internal/shared/validation"
	"realgo/internal/user/domain"
)

type UserService struct {
	repo   domain.UserRepository
	logger *util.Logger
}

func NewUserService(repo domain.UserRepository, logger *util.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// SyncUser creates or refreshes the local user row for the authenticated
// subject. The role comes from the token; an empty role claim defaults to
// passenger. Existing users keep whatever role they were created with.
func (s *UserService) SyncUser(ctx context.Context, subject, role string, input domain.SyncUserInput) (*domain.User, error) {
	if role == "" {
		role = "passenger"
	}
	if err := validation.ValidateRole(role); err != nil {
		return nil, err
	}
	if err := validation.ValidateStringNotEmpty(input.FullName, "full_name"); err != nil {
		return nil, err
	}
	if err := validation.ValidateStringNotEmpty(input.PhoneE164, "phone_e164"); err != nil {
		return nil, err
	}

	user, err := s.repo.Upsert(ctx, domain.User{
		ID:        subject,
		Role:      role,
		FullName:  input.FullName,
		PhoneE164: input.PhoneE164,
		Email:     input.Email,
	})
	if err != nil {
		s.logger.Error("UserService.SyncUser", "failed to upsert user", err)
		return nil, err
	}

	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.GetByID(ctx, userID)
}

// RegisterVehicle is driver-scoped: the capability check happens here, before
// anything touches storage.
func (s *UserService) RegisterVehicle(ctx context.Context, driverID, role string, input domain.RegisterVehicleInput) (*domain.Vehicle, error) {
	if role != "driver" {
		return nil, apperrors.Forbidden("only drivers can register vehicles")
	}
	if err := validation.ValidateStringNotEmpty(input.Plate, "plate"); err != nil {
		return nil, err
	}
	if err := validation.ValidateSeatCapacity(input.SeatCapacity, "seat_capacity"); err != nil {
		return nil, err
	}

	vehicle, err := s.repo.CreateVehicle(ctx, domain.Vehicle{
		ID:           util.NewID(),
		DriverID:     driverID,
		Plate:        input.Plate,
		Model:        input.Model,
		SeatCapacity: input.SeatCapacity,
	})
	if err != nil {
		s.logger.Error("UserService.RegisterVehicle", "failed to create vehicle", err)
		return nil, err
	}

	return vehicle, nil
}

func (s *UserService) ListVehicles(ctx context.Context, driverID, role string) ([]domain.Vehicle, error) {
	if role != "driver" {
		return nil, apperrors.Forbidden("only drivers have vehicles")
	}
	return s.repo.ListVehiclesByDriver(ctx, driverID)
}
