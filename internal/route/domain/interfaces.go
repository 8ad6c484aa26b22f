package domain

import "context"

type RouteRepository interface {
	ListActive(ctx context.Context) ([]RouteSummary, error)
	GetActiveByID(ctx context.Context, routeID string) (*RouteSummary, error)
	ListStops(ctx context.Context, routeID string) ([]RouteStop, error)
}
