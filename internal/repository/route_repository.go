package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tripline/vehicle-location-go/internal/models"
	"github.com/tripline/vehicle-location-go/internal/spatial"
)

const routeColumns = `id, assignment_id, start_time, end_time, total_distance,
	start_city, end_city, route_geom`

// RouteRepository handles database operations for routes. WKT geometry is
// parsed and serialized here only; callers see structured spatial types.
type RouteRepository struct {
	db DBTX
}

// NewRouteRepository creates a new route repository
func NewRouteRepository(db DBTX) *RouteRepository {
	return &RouteRepository{db: db}
}

// LatestByAssignment retrieves the assignment's most recent route by start
// time, or nil if the assignment has no routes yet
func (r *RouteRepository) LatestByAssignment(assignmentID int64) (*models.Route, error) {
	query := `SELECT ` + routeColumns + ` FROM routes
		WHERE assignment_id = ?
		ORDER BY start_time DESC, id DESC
		LIMIT 1`

	route, err := scanRoute(r.db.QueryRow(query, assignmentID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return route, err
}

// GetByID retrieves a route by ID, or nil if none exists
func (r *RouteRepository) GetByID(id int64) (*models.Route, error) {
	query := `SELECT ` + routeColumns + ` FROM routes WHERE id = ?`

	route, err := scanRoute(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return route, err
}

// ListByAssignment retrieves all routes of an assignment, newest first
func (r *RouteRepository) ListByAssignment(assignmentID int64) ([]models.Route, error) {
	query := `SELECT ` + routeColumns + ` FROM routes
		WHERE assignment_id = ?
		ORDER BY start_time DESC, id DESC`

	rows, err := r.db.Query(query, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query routes: %w", err)
	}
	defer rows.Close()

	var routes []models.Route
	for rows.Next() {
		route, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		routes = append(routes, *route)
	}

	return routes, rows.Err()
}

// Create inserts a new route and returns its ID
func (r *RouteRepository) Create(route *models.Route) (int64, error) {
	query := `INSERT INTO routes (assignment_id, start_time, end_time, total_distance,
		start_city, end_city, route_geom)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	var geom interface{}
	if route.Geometry != nil {
		geom = route.Geometry.WKT()
	}

	res, err := r.db.Exec(query, route.AssignmentID, route.StartTime.Unix(),
		nullableUnix(route.EndTime), route.TotalDistance,
		route.StartCity, route.EndCity, geom)
	if err != nil {
		return 0, fmt.Errorf("failed to create route: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read route id: %w", err)
	}
	return id, nil
}

// Close ends an open route. EndTime is the timestamp of the route's last
// observed sample, not the arrival time of whatever triggered the close.
func (r *RouteRepository) Close(routeID int64, endTime time.Time, endCity string) error {
	query := `UPDATE routes SET end_time = ?, end_city = ? WHERE id = ?`

	_, err := r.db.Exec(query, endTime.Unix(), endCity, routeID)
	if err != nil {
		return fmt.Errorf("failed to close route: %w", err)
	}
	return nil
}

// AccumulateDistance adds meters to the route's total distance
func (r *RouteRepository) AccumulateDistance(routeID int64, meters int64) error {
	query := `UPDATE routes SET total_distance = total_distance + ? WHERE id = ?`

	_, err := r.db.Exec(query, meters, routeID)
	if err != nil {
		return fmt.Errorf("failed to accumulate route distance: %w", err)
	}
	return nil
}

// AppendGeometryPoint appends a vertex to the route's line geometry. A NULL
// geometry is initialized to a single-point line.
func (r *RouteRepository) AppendGeometryPoint(routeID int64, p spatial.Point) error {
	var stored sql.NullString
	err := r.db.QueryRow(`SELECT route_geom FROM routes WHERE id = ?`, routeID).Scan(&stored)
	if err != nil {
		return fmt.Errorf("failed to read route geometry: %w", err)
	}

	var line *spatial.LineString
	if stored.Valid && stored.String != "" {
		line, err = spatial.ParseLineStringWKT(stored.String)
		if err != nil {
			return fmt.Errorf("failed to parse route geometry: %w", err)
		}
		line.Append(p)
	} else {
		line = spatial.NewLineString(p)
	}

	_, err = r.db.Exec(`UPDATE routes SET route_geom = ? WHERE id = ?`, line.WKT(), routeID)
	if err != nil {
		return fmt.Errorf("failed to update route geometry: %w", err)
	}
	return nil
}

func scanRoute(row rowScanner) (*models.Route, error) {
	var route models.Route
	var startTime int64
	var endTime sql.NullInt64
	var startCity, endCity, geom sql.NullString

	err := row.Scan(&route.ID, &route.AssignmentID, &startTime, &endTime,
		&route.TotalDistance, &startCity, &endCity, &geom)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan route: %w", err)
	}

	route.StartTime = time.Unix(startTime, 0).UTC()
	if endTime.Valid {
		t := time.Unix(endTime.Int64, 0).UTC()
		route.EndTime = &t
	}
	if startCity.Valid {
		route.StartCity = &startCity.String
	}
	if endCity.Valid {
		route.EndCity = &endCity.String
	}
	if geom.Valid && geom.String != "" {
		line, err := spatial.ParseLineStringWKT(geom.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse route geometry: %w", err)
		}
		route.Geometry = line
	}

	return &route, nil
}
