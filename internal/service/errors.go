package service

import "errors"

// Sentinel errors mapped onto HTTP statuses by the handlers
var (
	ErrVehicleNotFound     = errors.New("vehicle not found")
	ErrReportingNotAllowed = errors.New("location reporting is not allowed for this vehicle")
	ErrInvalidCoordinates  = errors.New("invalid coordinates")
	ErrVehicleNotAssigned  = errors.New("vehicle is not assigned")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUsernameTaken       = errors.New("username is already taken")
	ErrNotFound            = errors.New("not found")
)
