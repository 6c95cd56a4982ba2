package service

import (
	"fmt"
	"time"

	"github.com/tripline/vehicle-location-go/internal/models"
	"github.com/tripline/vehicle-location-go/internal/repository"
)

// VehicleService handles business logic for vehicle management
type VehicleService struct {
	vehicleRepo *repository.VehicleRepository
}

// NewVehicleService creates a new vehicle service
func NewVehicleService(vehicleRepo *repository.VehicleRepository) *VehicleService {
	return &VehicleService{vehicleRepo: vehicleRepo}
}

// VehicleInput carries the client-settable vehicle fields
type VehicleInput struct {
	Name                    string `json:"name" binding:"required"`
	IMEI                    string `json:"imei" binding:"required"`
	Color                   string `json:"color"`
	PositionCheckFreq       int    `json:"position_check_freq"`
	MinDistanceDelta        int    `json:"min_distance_delta"`
	MaxIdleMinutes          int    `json:"max_idle_minutes"`
	ManualRouteStartEnabled bool   `json:"manual_route_start_enabled"`
}

// Create registers a new vehicle with defaulted tunables
func (s *VehicleService) Create(in VehicleInput) (*models.Vehicle, error) {
	v := &models.Vehicle{
		Name:                    in.Name,
		IMEI:                    in.IMEI,
		Status:                  models.VehicleStatusRegistered,
		Color:                   in.Color,
		PositionCheckFreq:       in.PositionCheckFreq,
		MinDistanceDelta:        in.MinDistanceDelta,
		MaxIdleMinutes:          in.MaxIdleMinutes,
		ManualRouteStartEnabled: in.ManualRouteStartEnabled,
		CreatedAt:               time.Now().UTC(),
	}
	if v.Color == "" {
		v.Color = "#FF0000"
	}
	if v.PositionCheckFreq <= 0 {
		v.PositionCheckFreq = 15
	}
	if v.MinDistanceDelta <= 0 {
		v.MinDistanceDelta = 3
	}
	if v.MaxIdleMinutes <= 0 {
		v.MaxIdleMinutes = 15
	}

	var err error
	v.ID, err = s.vehicleRepo.Create(v)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Get retrieves a vehicle by ID
func (s *VehicleService) Get(id int64) (*models.Vehicle, error) {
	v, err := s.vehicleRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	if v == nil || v.Status == models.VehicleStatusDeleted {
		return nil, ErrNotFound
	}
	return v, nil
}

// List retrieves all non-deleted vehicles
func (s *VehicleService) List() ([]models.Vehicle, error) {
	return s.vehicleRepo.List()
}

// VehicleUpdate carries optional field updates; nil fields stay unchanged
type VehicleUpdate struct {
	Name                    *string               `json:"name"`
	Status                  *models.VehicleStatus `json:"status"`
	Color                   *string               `json:"color"`
	PositionCheckFreq       *int                  `json:"position_check_freq"`
	MinDistanceDelta        *int                  `json:"min_distance_delta"`
	MaxIdleMinutes          *int                  `json:"max_idle_minutes"`
	ManualRouteStartEnabled *bool                 `json:"manual_route_start_enabled"`
}

// Update applies the provided field changes to a vehicle
func (s *VehicleService) Update(id int64, upd VehicleUpdate) (*models.Vehicle, error) {
	v, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		v.Name = *upd.Name
	}
	if upd.Status != nil {
		v.Status = *upd.Status
	}
	if upd.Color != nil {
		v.Color = *upd.Color
	}
	if upd.PositionCheckFreq != nil {
		v.PositionCheckFreq = *upd.PositionCheckFreq
	}
	if upd.MinDistanceDelta != nil {
		v.MinDistanceDelta = *upd.MinDistanceDelta
	}
	if upd.MaxIdleMinutes != nil {
		v.MaxIdleMinutes = *upd.MaxIdleMinutes
	}
	if upd.ManualRouteStartEnabled != nil {
		v.ManualRouteStartEnabled = *upd.ManualRouteStartEnabled
	}

	if err := s.vehicleRepo.Update(v); err != nil {
		return nil, err
	}
	return v, nil
}

// Delete soft-deletes a vehicle; its routes remain readable
func (s *VehicleService) Delete(id int64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.vehicleRepo.MarkDeleted(id)
}
