package app

import (
	"context"

	"realgo/internal/route/domain"
	"realgo/internal/shared/util"
	"realgo/internal/shared/validation"
)

type RouteService struct {
	repo   domain.RouteRepository
	logger *util.Logger
}

func NewRouteService(repo domain.RouteRepository, logger *util.Logger) *RouteService {
	return &RouteService{repo: repo, logger: logger}
}

func (s *RouteService) ListRoutes(ctx context.Context) ([]domain.RouteSummary, error) {
	return s.repo.ListActive(ctx)
}

func (s *RouteService) GetRouteDetail(ctx context.Context, routeID string) (*domain.RouteDetail, error) {
	if err := validation.ValidateUUID(routeID, "route_id"); err != nil {
		return nil, err
	}

	route, err := s.repo.GetActiveByID(ctx, routeID)
	if err != nil {
		return nil, err
	}

	stops, err := s.repo.ListStops(ctx, routeID)
	if err != nil {
		return nil, err
	}

	return &domain.RouteDetail{Route: *route, Stops: stops}, nil
}
