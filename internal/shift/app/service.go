package app

import (
	"context"

	"realgo/internal/shared/apperrors"
	"realgo/internal/shared/util"
	"realgo/internal/shared/validation"
	"realgo/internal/shift/domain"
)

type ShiftService struct {
	repo   domain.ShiftRepository
	logger *util.Logger
}

func NewShiftService(repo domain.ShiftRepository, logger *util.Logger) *ShiftService {
	return &ShiftService{repo: repo, logger: logger}
}

// OpenShift puts a driver on a route with a seat budget. When a vehicle is
// given it must belong to the driver and the seat budget must fit in it.
func (s *ShiftService) OpenShift(ctx context.Context, driverID, role string, input domain.OpenShiftInput) (*domain.Shift, error) {
	if role != "driver" {
		return nil, apperrors.Forbidden("only drivers can open shifts")
	}
	if err := validation.ValidateUUID(input.RouteID, "route_id"); err != nil {
		return nil, err
	}
	if err := validation.ValidateSeatCapacity(input.TotalSeats, "total_seats"); err != nil {
		return nil, err
	}

	exists, err := s.repo.RouteExists(ctx, input.RouteID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NotFound("route")
	}

	if input.VehicleID != nil {
		if err := validation.ValidateUUID(*input.VehicleID, "vehicle_id"); err != nil {
			return nil, err
		}
		capacity, err := s.repo.VehicleSeatCapacity(ctx, *input.VehicleID, driverID)
		if err != nil {
			return nil, err
		}
		if input.TotalSeats > capacity {
			return nil, apperrors.Validation("total_seats exceeds vehicle capacity of %d", capacity)
		}
	}

	shift, err := s.repo.CreateShift(ctx, domain.Shift{
		ID:         util.NewID(),
		DriverID:   driverID,
		RouteID:    input.RouteID,
		VehicleID:  input.VehicleID,
		TotalSeats: input.TotalSeats,
	})
	if err != nil {
		s.logger.Error("ShiftService.OpenShift", "failed to create shift", err)
		return nil, err
	}

	s.logger.OK("ShiftService.OpenShift", "shift opened: "+shift.ID)
	return shift, nil
}

func (s *ShiftService) CloseShift(ctx context.Context, shiftID, driverID, role string) (*domain.Shift, error) {
	if role != "driver" {
		return nil, apperrors.Forbidden("only drivers can close shifts")
	}
	if err := validation.ValidateUUID(shiftID, "shift_id"); err != nil {
		return nil, err
	}
	return s.repo.CloseShift(ctx, shiftID, driverID)
}

func (s *ShiftService) ListOpenShifts(ctx context.Context, routeID string) ([]domain.Shift, error) {
	if err := validation.ValidateUUID(routeID, "route_id"); err != nil {
		return nil, err
	}
	return s.repo.ListOpenByRoute(ctx, routeID)
}
