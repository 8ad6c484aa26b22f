package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"realgo/internal/route/domain"
	"realgo/internal/shared/apperrors"
)

type RouteRepo struct {
	db *pgxpool.Pool
}

func NewRouteRepo(db *pgxpool.Pool) *RouteRepo {
	return &RouteRepo{db: db}
}

func (r *RouteRepo) ListActive(ctx context.Context) ([]domain.RouteSummary, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, origin_name, destination_name, base_price_cents, currency
		FROM app.routes
		WHERE is_active = TRUE
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query routes: %w", err)
	}
	defer rows.Close()

	routes := []domain.RouteSummary{}
	for rows.Next() {
		var rt domain.RouteSummary
		if err := rows.Scan(&rt.ID, &rt.Name, &rt.OriginName, &rt.DestinationName, &rt.BasePriceCents, &rt.Currency); err != nil {
			return nil, fmt.Errorf("failed to scan route: %w", err)
		}
		routes = append(routes, rt)
	}

	return routes, rows.Err()
}

func (r *RouteRepo) GetActiveByID(ctx context.Context, routeID string) (*domain.RouteSummary, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name, origin_name, destination_name, base_price_cents, currency
		FROM app.routes
		WHERE id = $1 AND is_active = TRUE
	`, routeID)

	var rt domain.RouteSummary
	err := row.Scan(&rt.ID, &rt.Name, &rt.OriginName, &rt.DestinationName, &rt.BasePriceCents, &rt.Currency)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("route")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get route: %w", err)
	}

	return &rt, nil
}

func (r *RouteRepo) ListStops(ctx context.Context, routeID string) ([]domain.RouteStop, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, route_id, stop_order, name, lat, lon
		FROM app.route_stops
		WHERE route_id = $1 AND is_active = TRUE
		ORDER BY stop_order
	`, routeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query route stops: %w", err)
	}
	defer rows.Close()

	stops := []domain.RouteStop{}
	for rows.Next() {
		var st domain.RouteStop
		if err := rows.Scan(&st.ID, &st.RouteID, &st.StopOrder, &st.Name, &st.Lat, &st.Lon); err != nil {
			return nil, fmt.Errorf("failed to scan route stop: %w", err)
		}
		stops = append(stops, st)
	}

	return stops, rows.Err()
}
