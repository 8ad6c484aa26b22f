package domain

import "context"

type UserRepository interface {
	Upsert(ctx context.Context, user User) (*User, error)
	GetByID(ctx context.Context, userID string) (*User, error)
	CreateVehicle(ctx context.Context, vehicle Vehicle) (*Vehicle, error)
	ListVehiclesByDriver(ctx context.Context, driverID string) ([]Vehicle, error)
}
