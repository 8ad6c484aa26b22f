package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"realgo/internal/shared/apperrors"
	shareddb "realgo/internal/shared/db"
	"realgo/internal/trip/domain"
)

type TripRepo struct {
	db *pgxpool.Pool
}

func NewTripRepo(db *pgxpool.Pool) *TripRepo {
	return &TripRepo{db: db}
}

const tripColumns = `id, route_id, shift_id, passenger_id, driver_id, pickup_stop_id, dropoff_stop_id,
	seats_requested, status, payment_method, price_cents, currency, pickup_note, created_at, updated_at`

func scanTrip(row pgx.Row) (*domain.Trip, error) {
	var t domain.Trip
	err := row.Scan(&t.ID, &t.RouteID, &t.ShiftID, &t.PassengerID, &t.DriverID,
		&t.PickupStopID, &t.DropoffStopID, &t.SeatsRequested, &t.Status,
		&t.PaymentMethod, &t.PriceCents, &t.Currency, &t.PickupNote,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TripRepo) GetBookingRoute(ctx context.Context, routeID string) (*domain.BookingRoute, error) {
	var rt domain.BookingRoute
	err := r.db.QueryRow(ctx, `
		SELECT id, base_price_cents, currency
		FROM app.routes
		WHERE id = $1 AND is_active = TRUE
	`, routeID).Scan(&rt.ID, &rt.BasePriceCents, &rt.Currency)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("route")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get route: %w", err)
	}
	return &rt, nil
}

func (r *TripRepo) StopBelongsToRoute(ctx context.Context, stopID, routeID string) (bool, error) {
	var one int
	err := r.db.QueryRow(ctx, `
		SELECT 1 FROM app.route_stops WHERE id = $1 AND route_id = $2
	`, stopID, routeID).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check stop: %w", err)
	}
	return true, nil
}

// CreateTrip runs the seat allocation in one transaction: lock the earliest
// open shift on the route with enough seats, decrement its counter, insert
// the trip. SKIP LOCKED sends a concurrent booking to the next shift or, if
// none remains, to a Conflict, so a shift can never be oversold.
func (r *TripRepo) CreateTrip(ctx context.Context, trip domain.Trip) (*domain.Trip, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var shiftID string
	err = tx.QueryRow(ctx, `
		SELECT id FROM app.driver_shifts
		WHERE route_id = $1 AND status = 'open' AND available_seats >= $2
		ORDER BY created_at, id
		LIMIT 1
		FOR UPDATE SKIP LOCKED
	`, trip.RouteID, trip.SeatsRequested).Scan(&shiftID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.Conflict("no units available")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select shift: %w", err)
	}

	tag, err := tx.Exec(ctx, `
		UPDATE app.driver_shifts
		SET available_seats = available_seats - $2
		WHERE id = $1 AND available_seats >= $2
	`, shiftID, trip.SeatsRequested)
	if err != nil {
		return nil, fmt.Errorf("failed to decrement seats: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return nil, apperrors.Conflict("no units available")
	}

	row := tx.QueryRow(ctx, `
		INSERT INTO app.trips (
			id, route_id, shift_id, passenger_id,
			pickup_stop_id, dropoff_stop_id,
			seats_requested, status, payment_method,
			price_cents, currency, pickup_note
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'requested', $8, $9, $10, $11)
		RETURNING `+tripColumns,
		trip.ID, trip.RouteID, shiftID, trip.PassengerID,
		trip.PickupStopID, trip.DropoffStopID,
		trip.SeatsRequested, trip.PaymentMethod,
		trip.PriceCents, trip.Currency, trip.PickupNote)

	created, err := scanTrip(row)
	if err != nil {
		return nil, shareddb.Translate(err, "trip")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit failed: %w", err)
	}

	return created, nil
}

func (r *TripRepo) GetTripByID(ctx context.Context, tripID string) (*domain.Trip, error) {
	row := r.db.QueryRow(ctx, `SELECT `+tripColumns+` FROM app.trips WHERE id = $1`, tripID)

	trip, err := scanTrip(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("trip")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	return trip, nil
}

func (r *TripRepo) ShiftOwner(ctx context.Context, shiftID string) (string, error) {
	var driverID string
	err := r.db.QueryRow(ctx, `
		SELECT driver_id FROM app.driver_shifts WHERE id = $1
	`, shiftID).Scan(&driverID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", apperrors.NotFound("shift")
	}
	if err != nil {
		return "", fmt.Errorf("failed to get shift owner: %w", err)
	}
	return driverID, nil
}

// ApplyTransition updates the trip status conditionally on the expected
// source status, then performs the side effects in the same transaction.
// A concurrent status change makes the conditional UPDATE miss, which is
// reported as an invalid transition from the actual current status.
func (r *TripRepo) ApplyTransition(ctx context.Context, update domain.TransitionUpdate) (*domain.Trip, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var row pgx.Row
	if update.SetDriverID != "" {
		row = tx.QueryRow(ctx, `
			UPDATE app.trips
			SET status = $1, driver_id = $2, updated_at = NOW()
			WHERE id = $3 AND status = $4
			RETURNING `+tripColumns,
			update.ToStatus, update.SetDriverID, update.TripID, update.FromStatus)
	} else {
		row = tx.QueryRow(ctx, `
			UPDATE app.trips
			SET status = $1, updated_at = NOW()
			WHERE id = $2 AND status = $3
			RETURNING `+tripColumns,
			update.ToStatus, update.TripID, update.FromStatus)
	}

	trip, err := scanTrip(row)
	if errors.Is(err, pgx.ErrNoRows) {
		current, cerr := r.currentStatus(ctx, tx, update.TripID)
		if cerr != nil {
			return nil, cerr
		}
		return nil, apperrors.InvalidTransition(current, string(update.Action))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update trip: %w", err)
	}

	if update.ReleaseSeats {
		// Clamped so the invariant holds even against hand-edited rows.
		_, err = tx.Exec(ctx, `
			UPDATE app.driver_shifts
			SET available_seats = LEAST(total_seats, available_seats + $2)
			WHERE id = $1
		`, update.ShiftID, update.Seats)
		if err != nil {
			return nil, fmt.Errorf("failed to release seats: %w", err)
		}
	}

	if update.IncrementDriverTrips {
		_, err = tx.Exec(ctx, `
			UPDATE app.drivers SET total_trips = total_trips + 1 WHERE user_id = $1
		`, update.DriverID)
		if err != nil {
			return nil, fmt.Errorf("failed to update driver counter: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit failed: %w", err)
	}

	return trip, nil
}

func (r *TripRepo) currentStatus(ctx context.Context, tx pgx.Tx, tripID string) (string, error) {
	var status string
	err := tx.QueryRow(ctx, `SELECT status FROM app.trips WHERE id = $1`, tripID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", apperrors.NotFound("trip")
	}
	if err != nil {
		return "", fmt.Errorf("failed to read trip status: %w", err)
	}
	return status, nil
}

func (r *TripRepo) CreateMessage(ctx context.Context, msg domain.Message) (*domain.Message, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO app.messages (id, trip_id, sender_id, body)
		VALUES ($1, $2, $3, $4)
		RETURNING id, trip_id, sender_id, body, is_read, created_at
	`, msg.ID, msg.TripID, msg.SenderID, msg.Body)

	var out domain.Message
	if err := row.Scan(&out.ID, &out.TripID, &out.SenderID, &out.Body, &out.IsRead, &out.CreatedAt); err != nil {
		return nil, shareddb.Translate(err, "message")
	}
	return &out, nil
}

func (r *TripRepo) ListMessages(ctx context.Context, tripID string, since *time.Time) ([]domain.Message, error) {
	query := `
		SELECT id, trip_id, sender_id, body, is_read, created_at
		FROM app.messages
		WHERE trip_id = $1`
	args := []interface{}{tripID}
	if since != nil {
		query += ` AND created_at > $2`
		args = append(args, *since)
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	messages := []domain.Message{}
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.TripID, &m.SenderID, &m.Body, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}

func (r *TripRepo) MarkMessagesRead(ctx context.Context, tripID, readerID string) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE app.messages
		SET is_read = TRUE
		WHERE trip_id = $1 AND sender_id <> $2 AND is_read = FALSE
	`, tripID, readerID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark messages read: %w", err)
	}
	return tag.RowsAffected(), nil
}
