package service

import (
	"fmt"

	"github.com/tripline/vehicle-location-go/internal/auth"
	"github.com/tripline/vehicle-location-go/internal/models"
	"github.com/tripline/vehicle-location-go/internal/repository"
)

// TokenService rotates and verifies device session tokens
type TokenService struct {
	vehicleRepo *repository.VehicleRepository
}

// NewTokenService creates a new token service
func NewTokenService(vehicleRepo *repository.VehicleRepository) *TokenService {
	return &TokenService{vehicleRepo: vehicleRepo}
}

// DeviceConfig is handed back to the device along with its fresh token
type DeviceConfig struct {
	Token             string `json:"token"`
	PositionCheckFreq int    `json:"position_check_freq"`
	MinDistanceDelta  int    `json:"min_distance_delta"`
	MaxIdleMinutes    int    `json:"max_idle_minutes"`
	ManualStart       bool   `json:"manual_start"`
}

// RequestToken rotates the vehicle's token and returns it with the
// vehicle's reporting parameters. Only registered or active vehicles
// may request tokens.
func (s *TokenService) RequestToken(imei string) (*DeviceConfig, error) {
	vehicle, err := s.vehicleRepo.GetByIMEI(imei,
		models.VehicleStatusActive, models.VehicleStatusRegistered)
	if err != nil {
		return nil, fmt.Errorf("failed to look up vehicle: %w", err)
	}
	if vehicle == nil {
		return nil, ErrVehicleNotFound
	}

	token, err := auth.NewDeviceToken()
	if err != nil {
		return nil, err
	}
	if err := s.vehicleRepo.UpdateToken(vehicle.ID, token); err != nil {
		return nil, err
	}

	return &DeviceConfig{
		Token:             token,
		PositionCheckFreq: vehicle.PositionCheckFreq,
		MinDistanceDelta:  vehicle.MinDistanceDelta,
		MaxIdleMinutes:    vehicle.MaxIdleMinutes,
		ManualStart:       vehicle.ManualRouteStartEnabled,
	}, nil
}

// VerifyToken checks that the imei/token pair identifies a vehicle
func (s *TokenService) VerifyToken(imei, token string) error {
	vehicle, err := s.vehicleRepo.GetByIMEIAndToken(imei, token)
	if err != nil {
		return fmt.Errorf("failed to look up vehicle: %w", err)
	}
	if vehicle == nil {
		return ErrVehicleNotFound
	}
	return nil
}
