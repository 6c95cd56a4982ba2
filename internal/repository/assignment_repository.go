package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tripline/vehicle-location-go/internal/models"
)

// AssignmentRepository handles database operations for user-vehicle assignments
type AssignmentRepository struct {
	db DBTX
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(db DBTX) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// Create inserts a new assignment and returns its ID
func (r *AssignmentRepository) Create(a *models.Assignment) (int64, error) {
	query := `INSERT INTO user_vehicle_assignments (user_id, vehicle_id, start_date, end_date)
		VALUES (?, ?, ?, ?)`

	res, err := r.db.Exec(query, a.UserID, a.VehicleID, a.StartDate.Unix(), nullableUnix(a.EndDate))
	if err != nil {
		return 0, fmt.Errorf("failed to create assignment: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read assignment id: %w", err)
	}
	return id, nil
}

// ActiveByVehicle retrieves the vehicle's assignment active at the given
// instant, or nil. Newest assignment wins when intervals overlap.
func (r *AssignmentRepository) ActiveByVehicle(vehicleID int64, now time.Time) (*models.Assignment, error) {
	query := `SELECT id, user_id, vehicle_id, start_date, end_date
		FROM user_vehicle_assignments
		WHERE vehicle_id = ? AND start_date <= ? AND (end_date IS NULL OR end_date >= ?)
		ORDER BY id DESC
		LIMIT 1`

	ts := now.Unix()
	a, err := scanAssignment(r.db.QueryRow(query, vehicleID, ts, ts))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return a, err
}

// GetByID retrieves an assignment by ID, or nil if none exists
func (r *AssignmentRepository) GetByID(id int64) (*models.Assignment, error) {
	query := `SELECT id, user_id, vehicle_id, start_date, end_date
		FROM user_vehicle_assignments WHERE id = ?`

	a, err := scanAssignment(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return a, err
}

// ListByUser retrieves all assignments of a user, newest first
func (r *AssignmentRepository) ListByUser(userID int64) ([]models.Assignment, error) {
	query := `SELECT id, user_id, vehicle_id, start_date, end_date
		FROM user_vehicle_assignments WHERE user_id = ? ORDER BY id DESC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []models.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, *a)
	}

	return assignments, rows.Err()
}

// End closes an open assignment at the given instant
func (r *AssignmentRepository) End(id int64, endDate time.Time) error {
	_, err := r.db.Exec(`UPDATE user_vehicle_assignments SET end_date = ? WHERE id = ?`,
		endDate.Unix(), id)
	if err != nil {
		return fmt.Errorf("failed to end assignment: %w", err)
	}
	return nil
}

func scanAssignment(row rowScanner) (*models.Assignment, error) {
	var a models.Assignment
	var startDate int64
	var endDate sql.NullInt64

	err := row.Scan(&a.ID, &a.UserID, &a.VehicleID, &startDate, &endDate)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan assignment: %w", err)
	}

	a.StartDate = time.Unix(startDate, 0).UTC()
	if endDate.Valid {
		t := time.Unix(endDate.Int64, 0).UTC()
		a.EndDate = &t
	}
	return &a, nil
}

func nullableUnix(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Unix()
}
