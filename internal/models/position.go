package models

import (
	"time"

	"github.com/tripline/vehicle-location-go/internal/spatial"
)

// Position represents one GPS fix belonging to a route
type Position struct {
	ID        int64         `json:"id" db:"id"`
	RouteID   int64         `json:"route_id" db:"route_id"`
	Timestamp time.Time     `json:"timestamp" db:"timestamp"`
	Location  spatial.Point `json:"location" db:"location"`
	SpeedKmh  float64       `json:"speed" db:"speed"`
}
