package service

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/tripline/vehicle-location-go/internal/geocoding"
	"github.com/tripline/vehicle-location-go/internal/models"
	"github.com/tripline/vehicle-location-go/internal/spatial"
)

// RouteStore is the route persistence surface the segmenter mutates
type RouteStore interface {
	LatestByAssignment(assignmentID int64) (*models.Route, error)
	Create(route *models.Route) (int64, error)
	Close(routeID int64, endTime time.Time, endCity string) error
	AccumulateDistance(routeID int64, meters int64) error
	AppendGeometryPoint(routeID int64, p spatial.Point) error
}

// PositionStore is the sample persistence surface the segmenter mutates
type PositionStore interface {
	LatestByRoute(routeID int64) (*models.Position, error)
	Append(pos *models.Position) (int64, error)
}

// UnitOfWork runs fn atomically: either every store mutation made inside fn
// is persisted, or none is
type UnitOfWork interface {
	Run(fn func(routes RouteStore, positions PositionStore) error) error
}

// VehicleStore is the vehicle lookup surface the device boundary needs
type VehicleStore interface {
	GetByToken(token string) (*models.Vehicle, error)
}

// AssignmentStore resolves the assignment a reported position belongs to
type AssignmentStore interface {
	ActiveByVehicle(vehicleID int64, now time.Time) (*models.Assignment, error)
}

// LocationService ingests device position reports and segments them into
// routes. One ingestion is one transaction; a per-assignment lock closes the
// read-latest-then-insert race between concurrent reports of the same
// assignment while reports for different assignments proceed in parallel.
type LocationService struct {
	uow         UnitOfWork
	vehicles    VehicleStore
	assignments AssignmentStore
	geocoder    geocoding.Geocoder

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewLocationService creates a new location service
func NewLocationService(uow UnitOfWork, vehicles VehicleStore, assignments AssignmentStore, geocoder geocoding.Geocoder) *LocationService {
	return &LocationService{
		uow:         uow,
		vehicles:    vehicles,
		assignments: assignments,
		geocoder:    geocoder,
		locks:       make(map[int64]*sync.Mutex),
	}
}

// PositionReport is one pre-authenticated sample handed to the segmenter
type PositionReport struct {
	AssignmentID   int64
	Now            time.Time
	Lat            float64 // rounded to 7 decimals
	Lon            float64 // rounded to 7 decimals
	SpeedKnots     float64
	MaxIdleMinutes int
}

// PostLocation handles one device upload end to end: token lookup, status
// gate, coordinate validation, assignment resolution, then segmentation.
// It returns the distance added to the route by this sample, in meters.
func (s *LocationService) PostLocation(token string, lat, lon, speedKnots float64) (float64, error) {
	now := time.Now().UTC()

	vehicle, err := s.vehicles.GetByToken(token)
	if err != nil {
		return 0, fmt.Errorf("failed to look up vehicle: %w", err)
	}
	if vehicle == nil {
		return 0, ErrVehicleNotFound
	}
	if !vehicle.CanReportLocation() {
		return 0, ErrReportingNotAllowed
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, ErrInvalidCoordinates
	}

	assignment, err := s.assignments.ActiveByVehicle(vehicle.ID, now)
	if err != nil {
		return 0, fmt.Errorf("failed to look up assignment: %w", err)
	}
	if assignment == nil {
		return 0, ErrVehicleNotAssigned
	}

	return s.ReportPosition(PositionReport{
		AssignmentID:   assignment.ID,
		Now:            now,
		Lat:            spatial.RoundCoordinate(lat),
		Lon:            spatial.RoundCoordinate(lon),
		SpeedKnots:     speedKnots,
		MaxIdleMinutes: vehicle.MaxIdleMinutes,
	})
}

// ReportPosition maps one sample onto store mutations, enforcing the
// single-open-route invariant and idle-based route boundaries. The whole
// decision procedure runs inside one unit of work.
func (s *LocationService) ReportPosition(rep PositionReport) (float64, error) {
	unlock := s.lockAssignment(rep.AssignmentID)
	defer unlock()

	var additional float64
	err := s.uow.Run(func(routes RouteStore, positions PositionStore) error {
		var err error
		additional, err = s.ingest(routes, positions, rep)
		return err
	})
	if err != nil {
		return 0, err
	}
	return additional, nil
}

func (s *LocationService) ingest(routes RouteStore, positions PositionStore, rep PositionReport) (float64, error) {
	route, err := routes.LatestByAssignment(rep.AssignmentID)
	if err != nil {
		return 0, err
	}

	createNewRoute := false
	if route == nil {
		createNewRoute = true
	} else {
		latest, err := positions.LatestByRoute(route.ID)
		if err != nil {
			return 0, err
		}
		// A route with no samples yet is an ordinary state: keep filling it.
		if latest != nil {
			idle := rep.Now.Sub(latest.Timestamp)
			if idle > time.Duration(rep.MaxIdleMinutes)*time.Minute {
				// The route ended at its last real observation, not now.
				endCity := s.resolveCity(latest.Location.Lat, latest.Location.Lon)
				if err := routes.Close(route.ID, latest.Timestamp, endCity); err != nil {
					return 0, err
				}
				createNewRoute = true
			}
		}
	}

	var targetID int64
	if createNewRoute {
		startCity := s.resolveCity(rep.Lat, rep.Lon)
		targetID, err = routes.Create(&models.Route{
			AssignmentID: rep.AssignmentID,
			StartTime:    rep.Now,
			StartCity:    &startCity,
			Geometry:     spatial.NewLineString(spatial.Point{Lat: rep.Lat, Lon: rep.Lon}),
		})
		if err != nil {
			return 0, err
		}
	} else {
		targetID = route.ID
	}

	var additional float64
	last, err := positions.LatestByRoute(targetID)
	if err != nil {
		return 0, err
	}
	if last != nil {
		additional = spatial.HaversineDistance(last.Location.Lat, last.Location.Lon, rep.Lat, rep.Lon)
		if !createNewRoute {
			// Truncate, don't round: the stored accumulator is integer meters.
			if err := routes.AccumulateDistance(targetID, int64(additional)); err != nil {
				return 0, err
			}
			if err := routes.AppendGeometryPoint(targetID, spatial.Point{Lat: rep.Lat, Lon: rep.Lon}); err != nil {
				return 0, err
			}
		}
	}

	_, err = positions.Append(&models.Position{
		RouteID:   targetID,
		Timestamp: rep.Now,
		Location:  spatial.Point{Lat: rep.Lat, Lon: rep.Lon},
		SpeedKmh:  spatial.KnotsToKmh(rep.SpeedKnots),
	})
	if err != nil {
		return 0, err
	}

	return additional, nil
}

// StartRoute opens a fresh empty route for the vehicle's active assignment,
// independent of idle detection. The next ingested sample fills it.
func (s *LocationService) StartRoute(token string) (int64, error) {
	now := time.Now().UTC()

	vehicle, err := s.vehicles.GetByToken(token)
	if err != nil {
		return 0, fmt.Errorf("failed to look up vehicle: %w", err)
	}
	if vehicle == nil {
		return 0, ErrVehicleNotFound
	}
	if !vehicle.CanReportLocation() {
		return 0, ErrReportingNotAllowed
	}

	assignment, err := s.assignments.ActiveByVehicle(vehicle.ID, now)
	if err != nil {
		return 0, fmt.Errorf("failed to look up assignment: %w", err)
	}
	if assignment == nil {
		return 0, ErrVehicleNotAssigned
	}

	unlock := s.lockAssignment(assignment.ID)
	defer unlock()

	var routeID int64
	err = s.uow.Run(func(routes RouteStore, positions PositionStore) error {
		var err error
		routeID, err = routes.Create(&models.Route{
			AssignmentID: assignment.ID,
			StartTime:    now,
		})
		return err
	})
	if err != nil {
		return 0, err
	}
	return routeID, nil
}

// resolveCity stamps a place name onto a route boundary. Geocoder failures
// are logged and swallowed; ingestion must not depend on them.
func (s *LocationService) resolveCity(lat, lon float64) string {
	city, err := s.geocoder.CityByCoords(lat, lon)
	if err != nil {
		log.Printf("geocoder failed for (%f, %f): %v", lat, lon, err)
		return ""
	}
	return city
}

func (s *LocationService) lockAssignment(assignmentID int64) func() {
	s.mu.Lock()
	m, ok := s.locks[assignmentID]
	if !ok {
		m = &sync.Mutex{}
		s.locks[assignmentID] = m
	}
	s.mu.Unlock()

	m.Lock()
	return m.Unlock
}
