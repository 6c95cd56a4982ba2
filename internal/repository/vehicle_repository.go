package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/tripline/vehicle-location-go/internal/models"
)

const vehicleColumns = `id, name, token, imei, status, color,
	position_check_freq, min_distance_delta, max_idle_minutes,
	manual_route_start_enabled, created_at`

// VehicleRepository handles database operations for vehicles
type VehicleRepository struct {
	db DBTX
}

// NewVehicleRepository creates a new vehicle repository
func NewVehicleRepository(db DBTX) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// Create inserts a new vehicle and returns its ID
func (r *VehicleRepository) Create(v *models.Vehicle) (int64, error) {
	query := `INSERT INTO vehicles (name, token, imei, status, color,
		position_check_freq, min_distance_delta, max_idle_minutes,
		manual_route_start_enabled, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := r.db.Exec(query, v.Name, v.Token, v.IMEI, string(v.Status), v.Color,
		v.PositionCheckFreq, v.MinDistanceDelta, v.MaxIdleMinutes,
		v.ManualRouteStartEnabled, v.CreatedAt.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to create vehicle: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read vehicle id: %w", err)
	}
	return id, nil
}

// GetByID retrieves a vehicle by ID, or nil if none exists
func (r *VehicleRepository) GetByID(id int64) (*models.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = ?`
	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByToken retrieves a vehicle by its current device token, or nil if none matches
func (r *VehicleRepository) GetByToken(token string) (*models.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE token = ?`
	return r.scanOne(r.db.QueryRow(query, token))
}

// GetByIMEI retrieves a vehicle by IMEI restricted to the given statuses,
// or nil if none matches
func (r *VehicleRepository) GetByIMEI(imei string, statuses ...models.VehicleStatus) (*models.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE imei = ?`
	args := []interface{}{imei}

	if len(statuses) > 0 {
		placeholders := make([]string, len(statuses))
		for i, s := range statuses {
			placeholders[i] = "?"
			args = append(args, string(s))
		}
		query += " AND status IN (" + strings.Join(placeholders, ", ") + ")"
	}

	return r.scanOne(r.db.QueryRow(query, args...))
}

// GetByIMEIAndToken retrieves a vehicle matching both IMEI and token, or nil
func (r *VehicleRepository) GetByIMEIAndToken(imei, token string) (*models.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE imei = ? AND token = ?`
	return r.scanOne(r.db.QueryRow(query, imei, token))
}

// List retrieves all vehicles not marked deleted
func (r *VehicleRepository) List() ([]models.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE status != ? ORDER BY id`

	rows, err := r.db.Query(query, string(models.VehicleStatusDeleted))
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []models.Vehicle
	for rows.Next() {
		v, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, *v)
	}

	return vehicles, rows.Err()
}

// UpdateToken replaces the vehicle's device token
func (r *VehicleRepository) UpdateToken(id int64, token string) error {
	_, err := r.db.Exec(`UPDATE vehicles SET token = ? WHERE id = ?`, token, id)
	if err != nil {
		return fmt.Errorf("failed to update vehicle token: %w", err)
	}
	return nil
}

// Update persists the mutable vehicle fields
func (r *VehicleRepository) Update(v *models.Vehicle) error {
	query := `UPDATE vehicles SET name = ?, status = ?, color = ?,
		position_check_freq = ?, min_distance_delta = ?, max_idle_minutes = ?,
		manual_route_start_enabled = ?
		WHERE id = ?`

	_, err := r.db.Exec(query, v.Name, string(v.Status), v.Color,
		v.PositionCheckFreq, v.MinDistanceDelta, v.MaxIdleMinutes,
		v.ManualRouteStartEnabled, v.ID)
	if err != nil {
		return fmt.Errorf("failed to update vehicle: %w", err)
	}
	return nil
}

// MarkDeleted soft-deletes a vehicle and invalidates its token
func (r *VehicleRepository) MarkDeleted(id int64) error {
	query := `UPDATE vehicles SET status = ?, token = NULL WHERE id = ?`

	_, err := r.db.Exec(query, string(models.VehicleStatusDeleted), id)
	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *VehicleRepository) scanOne(row *sql.Row) (*models.Vehicle, error) {
	v, err := r.scanRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *VehicleRepository) scanRow(row rowScanner) (*models.Vehicle, error) {
	var v models.Vehicle
	var token sql.NullString
	var status string
	var createdAt int64

	err := row.Scan(&v.ID, &v.Name, &token, &v.IMEI, &status, &v.Color,
		&v.PositionCheckFreq, &v.MinDistanceDelta, &v.MaxIdleMinutes,
		&v.ManualRouteStartEnabled, &createdAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan vehicle: %w", err)
	}

	if token.Valid {
		v.Token = &token.String
	}
	v.Status = models.VehicleStatus(status)
	v.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &v, nil
}
