package models

import "time"

// VehicleStatus represents the lifecycle state of a vehicle
type VehicleStatus string

// Vehicle status values
const (
	VehicleStatusRegistered VehicleStatus = "registered"
	VehicleStatusActive     VehicleStatus = "active"
	VehicleStatusInactive   VehicleStatus = "inactive"
	VehicleStatusDeleted    VehicleStatus = "deleted"
)

// Vehicle represents a GPS tracking device and its reporting parameters
type Vehicle struct {
	ID     int64         `json:"id" db:"id"`
	Name   string        `json:"name" db:"name"`
	Token  *string       `json:"token,omitempty" db:"token"`
	IMEI   string        `json:"imei" db:"imei"`
	Status VehicleStatus `json:"status" db:"status"`
	Color  string        `json:"color" db:"color"`

	// Segmentation tunables handed to the device on token issuance
	PositionCheckFreq int `json:"position_check_freq" db:"position_check_freq"` // expected upload interval, seconds
	MinDistanceDelta  int `json:"min_distance_delta" db:"min_distance_delta"`   // reserved, not used by the segmenter
	MaxIdleMinutes    int `json:"max_idle_minutes" db:"max_idle_minutes"`       // idle gap that ends a route

	ManualRouteStartEnabled bool      `json:"manual_route_start_enabled" db:"manual_route_start_enabled"`
	CreatedAt               time.Time `json:"created_at" db:"created_at"`
}

// CanReportLocation reports whether the vehicle may post positions
func (v *Vehicle) CanReportLocation() bool {
	return v.Status == VehicleStatusActive || v.Status == VehicleStatusRegistered
}
