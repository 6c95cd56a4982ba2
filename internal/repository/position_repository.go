package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tripline/vehicle-location-go/internal/models"
	"github.com/tripline/vehicle-location-go/internal/spatial"
)

// PositionRepository handles database operations for position samples
type PositionRepository struct {
	db DBTX
}

// NewPositionRepository creates a new position repository
func NewPositionRepository(db DBTX) *PositionRepository {
	return &PositionRepository{db: db}
}

// LatestByRoute retrieves the route's most recent position by timestamp,
// or nil if the route has no positions yet
func (r *PositionRepository) LatestByRoute(routeID int64) (*models.Position, error) {
	query := `SELECT id, route_id, timestamp, location, speed FROM positions
		WHERE route_id = ?
		ORDER BY timestamp DESC, id DESC
		LIMIT 1`

	pos, err := scanPosition(r.db.QueryRow(query, routeID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return pos, err
}

// Append inserts a new position sample and returns its ID
func (r *PositionRepository) Append(pos *models.Position) (int64, error) {
	query := `INSERT INTO positions (route_id, timestamp, location, speed)
		VALUES (?, ?, ?, ?)`

	res, err := r.db.Exec(query, pos.RouteID, pos.Timestamp.Unix(), pos.Location.WKT(), pos.SpeedKmh)
	if err != nil {
		return 0, fmt.Errorf("failed to append position: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read position id: %w", err)
	}
	return id, nil
}

// ListByRoute retrieves all positions of a route in timestamp order
func (r *PositionRepository) ListByRoute(routeID int64) ([]models.Position, error) {
	query := `SELECT id, route_id, timestamp, location, speed FROM positions
		WHERE route_id = ?
		ORDER BY timestamp ASC, id ASC`

	rows, err := r.db.Query(query, routeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}
	defer rows.Close()

	var positions []models.Position
	for rows.Next() {
		pos, err := scanPosition(rows)
		if err != nil {
			return nil, err
		}
		positions = append(positions, *pos)
	}

	return positions, rows.Err()
}

// CountByRoute returns the number of positions stored for a route
func (r *PositionRepository) CountByRoute(routeID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(`SELECT COUNT(*) FROM positions WHERE route_id = ?`, routeID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count positions: %w", err)
	}
	return count, nil
}

func scanPosition(row rowScanner) (*models.Position, error) {
	var pos models.Position
	var timestamp int64
	var location string

	err := row.Scan(&pos.ID, &pos.RouteID, &timestamp, &location, &pos.SpeedKmh)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan position: %w", err)
	}

	pos.Timestamp = time.Unix(timestamp, 0).UTC()
	pos.Location, err = spatial.ParsePointWKT(location)
	if err != nil {
		return nil, fmt.Errorf("failed to parse position location: %w", err)
	}

	return &pos, nil
}
