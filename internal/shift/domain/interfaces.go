package domain

import "context"

type ShiftRepository interface {
	CreateShift(ctx context.Context, shift Shift) (*Shift, error)
	CloseShift(ctx context.Context, shiftID, driverID string) (*Shift, error)
	ListOpenByRoute(ctx context.Context, routeID string) ([]Shift, error)
	RouteExists(ctx context.Context, routeID string) (bool, error)
	VehicleSeatCapacity(ctx context.Context, vehicleID, driverID string) (int, error)
}
