package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"realgo/internal/shared/apperrors"
	shareddb "realgo/internal/shared/db"
	"realgo/internal/shift/domain"
)

type ShiftRepo struct {
	db *pgxpool.Pool
}

func NewShiftRepo(db *pgxpool.Pool) *ShiftRepo {
	return &ShiftRepo{db: db}
}

func (r *ShiftRepo) CreateShift(ctx context.Context, shift domain.Shift) (*domain.Shift, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO app.driver_shifts (id, driver_id, route_id, vehicle_id, status, total_seats, available_seats)
		VALUES ($1, $2, $3, $4, 'open', $5, $5)
		RETURNING id, driver_id, route_id, vehicle_id, status, total_seats, available_seats, created_at, closed_at
	`, shift.ID, shift.DriverID, shift.RouteID, shift.VehicleID, shift.TotalSeats)

	var out domain.Shift
	err := row.Scan(&out.ID, &out.DriverID, &out.RouteID, &out.VehicleID, &out.Status,
		&out.TotalSeats, &out.AvailableSeats, &out.CreatedAt, &out.ClosedAt)
	if err != nil {
		return nil, shareddb.Translate(err, "shift")
	}

	return &out, nil
}

// CloseShift locks the row, verifies ownership and state, then closes it.
func (r *ShiftRepo) CloseShift(ctx context.Context, shiftID, driverID string) (*domain.Shift, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var ownerID, status string
	err = tx.QueryRow(ctx, `
		SELECT driver_id, status FROM app.driver_shifts
		WHERE id = $1
		FOR UPDATE
	`, shiftID).Scan(&ownerID, &status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("shift")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock shift: %w", err)
	}

	if ownerID != driverID {
		return nil, apperrors.Forbidden("shift belongs to another driver")
	}
	if status != domain.StatusOpen {
		return nil, fmt.Errorf("%w: cannot close a shift in status %q", apperrors.ErrInvalidTransition, status)
	}

	row := tx.QueryRow(ctx, `
		UPDATE app.driver_shifts
		SET status = 'closed', closed_at = NOW()
		WHERE id = $1
		RETURNING id, driver_id, route_id, vehicle_id, status, total_seats, available_seats, created_at, closed_at
	`, shiftID)

	var out domain.Shift
	err = row.Scan(&out.ID, &out.DriverID, &out.RouteID, &out.VehicleID, &out.Status,
		&out.TotalSeats, &out.AvailableSeats, &out.CreatedAt, &out.ClosedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to close shift: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &out, nil
}

// ListOpenByRoute returns open shifts in allocation order: the first entry is
// the one createTrip would pick next.
func (r *ShiftRepo) ListOpenByRoute(ctx context.Context, routeID string) ([]domain.Shift, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, driver_id, route_id, vehicle_id, status, total_seats, available_seats, created_at, closed_at
		FROM app.driver_shifts
		WHERE route_id = $1 AND status = 'open'
		ORDER BY created_at, id
	`, routeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	shifts := []domain.Shift{}
	for rows.Next() {
		var s domain.Shift
		err := rows.Scan(&s.ID, &s.DriverID, &s.RouteID, &s.VehicleID, &s.Status,
			&s.TotalSeats, &s.AvailableSeats, &s.CreatedAt, &s.ClosedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}

	return shifts, rows.Err()
}

func (r *ShiftRepo) RouteExists(ctx context.Context, routeID string) (bool, error) {
	var one int
	err := r.db.QueryRow(ctx, `
		SELECT 1 FROM app.routes WHERE id = $1 AND is_active = TRUE
	`, routeID).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check route: %w", err)
	}
	return true, nil
}

func (r *ShiftRepo) VehicleSeatCapacity(ctx context.Context, vehicleID, driverID string) (int, error) {
	var capacity int
	err := r.db.QueryRow(ctx, `
		SELECT seat_capacity FROM app.vehicles WHERE id = $1 AND driver_id = $2
	`, vehicleID, driverID).Scan(&capacity)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, apperrors.NotFound("vehicle")
	}
	if err != nil {
		return 0, fmt.Errorf("failed to check vehicle: %w", err)
	}
	return capacity, nil
}
