package service

import (
	"fmt"
	"time"

	"github.com/tripline/vehicle-location-go/internal/models"
	"github.com/tripline/vehicle-location-go/internal/repository"
)

// AssignmentService handles business logic for user-vehicle assignments
type AssignmentService struct {
	assignmentRepo *repository.AssignmentRepository
	vehicleRepo    *repository.VehicleRepository
}

// NewAssignmentService creates a new assignment service
func NewAssignmentService(assignmentRepo *repository.AssignmentRepository, vehicleRepo *repository.VehicleRepository) *AssignmentService {
	return &AssignmentService{assignmentRepo: assignmentRepo, vehicleRepo: vehicleRepo}
}

// Assign binds a vehicle to a user from now on. A vehicle has at most one
// active assignment at any instant, so an open one is ended first.
func (s *AssignmentService) Assign(userID, vehicleID int64) (*models.Assignment, error) {
	vehicle, err := s.vehicleRepo.GetByID(vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up vehicle: %w", err)
	}
	if vehicle == nil || vehicle.Status == models.VehicleStatusDeleted {
		return nil, ErrVehicleNotFound
	}

	now := time.Now().UTC()
	current, err := s.assignmentRepo.ActiveByVehicle(vehicleID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to look up active assignment: %w", err)
	}
	if current != nil {
		if err := s.assignmentRepo.End(current.ID, now); err != nil {
			return nil, err
		}
	}

	a := &models.Assignment{
		UserID:    userID,
		VehicleID: vehicleID,
		StartDate: now,
	}
	a.ID, err = s.assignmentRepo.Create(a)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// End closes an assignment now
func (s *AssignmentService) End(id int64) error {
	a, err := s.assignmentRepo.GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to look up assignment: %w", err)
	}
	if a == nil {
		return ErrNotFound
	}
	return s.assignmentRepo.End(id, time.Now().UTC())
}

// ListByUser retrieves a user's assignments, newest first
func (s *AssignmentService) ListByUser(userID int64) ([]models.Assignment, error) {
	return s.assignmentRepo.ListByUser(userID)
}

// Get retrieves an assignment by ID
func (s *AssignmentService) Get(id int64) (*models.Assignment, error) {
	a, err := s.assignmentRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up assignment: %w", err)
	}
	if a == nil {
		return nil, ErrNotFound
	}
	return a, nil
}
