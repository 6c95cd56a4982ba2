package service

import (
	"fmt"

	"github.com/tripline/vehicle-location-go/internal/models"
	"github.com/tripline/vehicle-location-go/internal/repository"
)

// RouteService handles read access to routes and their positions
type RouteService struct {
	routeRepo    *repository.RouteRepository
	positionRepo *repository.PositionRepository
}

// NewRouteService creates a new route service
func NewRouteService(routeRepo *repository.RouteRepository, positionRepo *repository.PositionRepository) *RouteService {
	return &RouteService{routeRepo: routeRepo, positionRepo: positionRepo}
}

// ListByAssignment retrieves all routes of an assignment, newest first
func (s *RouteService) ListByAssignment(assignmentID int64) ([]models.Route, error) {
	return s.routeRepo.ListByAssignment(assignmentID)
}

// Get retrieves a route by ID
func (s *RouteService) Get(id int64) (*models.Route, error) {
	route, err := s.routeRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get route: %w", err)
	}
	if route == nil {
		return nil, ErrNotFound
	}
	return route, nil
}

// Positions retrieves a route's samples in timestamp order
func (s *RouteService) Positions(routeID int64) ([]models.Position, error) {
	if _, err := s.Get(routeID); err != nil {
		return nil, err
	}
	return s.positionRepo.ListByRoute(routeID)
}
