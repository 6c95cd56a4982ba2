package models

import "time"

// Assignment represents a time-bounded relation between a user and a vehicle.
// Routes belong to an assignment, not directly to a vehicle.
type Assignment struct {
	ID        int64      `json:"id" db:"id"`
	UserID    int64      `json:"user_id" db:"user_id"`
	VehicleID int64      `json:"vehicle_id" db:"vehicle_id"`
	StartDate time.Time  `json:"start_date" db:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty" db:"end_date"`
}

// ActiveAt reports whether the assignment covers the given instant
func (a *Assignment) ActiveAt(t time.Time) bool {
	if t.Before(a.StartDate) {
		return false
	}
	return a.EndDate == nil || !t.After(*a.EndDate)
}
