package models

import (
	"time"

	"github.com/tripline/vehicle-location-go/internal/spatial"
)

// Route represents one trip of an assignment: a maximal run of position
// samples bounded by idle gaps longer than the vehicle's threshold.
// A route is open while EndTime is nil; closing is a one-way transition.
type Route struct {
	ID           int64      `json:"id" db:"id"`
	AssignmentID int64      `json:"assignment_id" db:"assignment_id"`
	StartTime    time.Time  `json:"start_time" db:"start_time"`
	EndTime      *time.Time `json:"end_time,omitempty" db:"end_time"`

	// TotalDistance accumulates floor-truncated haversine meters between
	// consecutive samples; it never decreases.
	TotalDistance int64 `json:"total_distance" db:"total_distance"`

	StartCity *string `json:"start_city,omitempty" db:"start_city"`
	EndCity   *string `json:"end_city,omitempty" db:"end_city"`

	// Geometry holds one vertex per accepted sample, in sample order (SRID 4326)
	Geometry *spatial.LineString `json:"geometry,omitempty" db:"route_geom"`
}

// Open reports whether the route is still accepting samples
func (r *Route) Open() bool {
	return r.EndTime == nil
}
