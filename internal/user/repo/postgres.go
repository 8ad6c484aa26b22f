package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"realgo/internal/shared/apperrors"
	shareddb "realgo/internal/shared/db"
	"realgo/internal/user/domain"
)

type UserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{db: db}
}

// Upsert inserts the user on first sync and refreshes contact fields on later
// ones. The role column is deliberately absent from the UPDATE: roles are
// immutable after creation. Driver users also get their drivers row here.
func (r *UserRepo) Upsert(ctx context.Context, user domain.User) (*domain.User, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		INSERT INTO app.users (id, role, full_name, phone_e164, email, is_active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		ON CONFLICT (id) DO UPDATE
		SET full_name = EXCLUDED.full_name,
		    phone_e164 = EXCLUDED.phone_e164,
		    email = EXCLUDED.email
		RETURNING id, role, full_name, phone_e164, email, is_active, created_at
	`, user.ID, user.Role, user.FullName, user.PhoneE164, user.Email)

	var out domain.User
	if err := row.Scan(&out.ID, &out.Role, &out.FullName, &out.PhoneE164, &out.Email, &out.IsActive, &out.CreatedAt); err != nil {
		return nil, shareddb.Translate(err, "user")
	}

	if out.Role == "driver" {
		_, err = tx.Exec(ctx, `
			INSERT INTO app.drivers (user_id) VALUES ($1)
			ON CONFLICT (user_id) DO NOTHING
		`, out.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to create driver row: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &out, nil
}

func (r *UserRepo) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, role, full_name, phone_e164, email, is_active, created_at
		FROM app.users
		WHERE id = $1
	`, userID)

	var out domain.User
	err := row.Scan(&out.ID, &out.Role, &out.FullName, &out.PhoneE164, &out.Email, &out.IsActive, &out.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("user")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &out, nil
}

func (r *UserRepo) CreateVehicle(ctx context.Context, vehicle domain.Vehicle) (*domain.Vehicle, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO app.vehicles (id, driver_id, plate, model, seat_capacity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, driver_id, plate, model, seat_capacity, created_at
	`, vehicle.ID, vehicle.DriverID, vehicle.Plate, vehicle.Model, vehicle.SeatCapacity)

	var out domain.Vehicle
	if err := row.Scan(&out.ID, &out.DriverID, &out.Plate, &out.Model, &out.SeatCapacity, &out.CreatedAt); err != nil {
		return nil, shareddb.Translate(err, "vehicle")
	}

	return &out, nil
}

func (r *UserRepo) ListVehiclesByDriver(ctx context.Context, driverID string) ([]domain.Vehicle, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, driver_id, plate, model, seat_capacity, created_at
		FROM app.vehicles
		WHERE driver_id = $1
		ORDER BY created_at
	`, driverID)
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicles: %w", err)
	}
	defer rows.Close()

	vehicles := []domain.Vehicle{}
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.ID, &v.DriverID, &v.Plate, &v.Model, &v.SeatCapacity, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}

	return vehicles, rows.Err()
}
