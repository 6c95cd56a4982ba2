package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/tripline/vehicle-location-go/internal/database"
	"github.com/tripline/vehicle-location-go/internal/models"
	"github.com/tripline/vehicle-location-go/internal/spatial"

	_ "modernc.org/sqlite"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// A single connection keeps every statement on the same in-memory database
	db.SetMaxOpenConns(1)

	if err := database.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

func TestRouteRepositoryLifecycle(t *testing.T) {
	db := testDB(t)
	routes := NewRouteRepository(db)

	latest, err := routes.LatestByAssignment(1)
	if err != nil {
		t.Fatalf("LatestByAssignment failed: %v", err)
	}
	if latest != nil {
		t.Fatal("expected no route for a fresh assignment")
	}

	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	city := "CityName"
	id, err := routes.Create(&models.Route{
		AssignmentID: 1,
		StartTime:    start,
		StartCity:    &city,
		Geometry:     spatial.NewLineString(spatial.Point{Lat: 48.0, Lon: 17.0}),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	latest, err = routes.LatestByAssignment(1)
	if err != nil {
		t.Fatalf("LatestByAssignment failed: %v", err)
	}
	if latest == nil || latest.ID != id {
		t.Fatalf("expected route %d, got %+v", id, latest)
	}
	if !latest.Open() {
		t.Error("new route should be open")
	}
	if latest.StartCity == nil || *latest.StartCity != city {
		t.Errorf("start city not persisted: %v", latest.StartCity)
	}
	if latest.Geometry.Len() != 1 {
		t.Errorf("expected single-vertex geometry, got %d", latest.Geometry.Len())
	}

	if err := routes.AppendGeometryPoint(id, spatial.Point{Lat: 48.001, Lon: 17.001}); err != nil {
		t.Fatalf("AppendGeometryPoint failed: %v", err)
	}
	if err := routes.AccumulateDistance(id, 133); err != nil {
		t.Fatalf("AccumulateDistance failed: %v", err)
	}
	if err := routes.AccumulateDistance(id, 141); err != nil {
		t.Fatalf("AccumulateDistance failed: %v", err)
	}

	route, err := routes.GetByID(id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if route.Geometry.Len() != 2 {
		t.Errorf("expected 2 vertices, got %d", route.Geometry.Len())
	}
	if route.TotalDistance != 274 {
		t.Errorf("expected accumulated distance 274, got %d", route.TotalDistance)
	}

	end := start.Add(20 * time.Minute)
	if err := routes.Close(id, end, "CityName"); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	route, err = routes.GetByID(id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if route.Open() {
		t.Fatal("route should be closed")
	}
	if !route.EndTime.Equal(end) {
		t.Errorf("end time not persisted: got %v, want %v", route.EndTime, end)
	}

	// A later route becomes the latest one
	id2, err := routes.Create(&models.Route{AssignmentID: 1, StartTime: start.Add(time.Hour)})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	latest, err = routes.LatestByAssignment(1)
	if err != nil {
		t.Fatalf("LatestByAssignment failed: %v", err)
	}
	if latest.ID != id2 {
		t.Errorf("expected latest route %d, got %d", id2, latest.ID)
	}
	if latest.Geometry != nil {
		t.Error("empty route should have no geometry")
	}
}

func TestAppendGeometryPointInitializesNullGeometry(t *testing.T) {
	db := testDB(t)
	routes := NewRouteRepository(db)

	id, err := routes.Create(&models.Route{
		AssignmentID: 1,
		StartTime:    time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := routes.AppendGeometryPoint(id, spatial.Point{Lat: 48.0, Lon: 17.0}); err != nil {
		t.Fatalf("AppendGeometryPoint failed: %v", err)
	}

	route, err := routes.GetByID(id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if route.Geometry.Len() != 1 {
		t.Errorf("NULL geometry should become a single-point line, got %d vertices", route.Geometry.Len())
	}
}

func TestPositionRepository(t *testing.T) {
	db := testDB(t)
	positions := NewPositionRepository(db)

	latest, err := positions.LatestByRoute(1)
	if err != nil {
		t.Fatalf("LatestByRoute failed: %v", err)
	}
	if latest != nil {
		t.Fatal("expected no position for a fresh route")
	}

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := positions.Append(&models.Position{
			RouteID:   1,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Location:  spatial.Point{Lat: 48.0 + float64(i)*0.001, Lon: 17.0},
			SpeedKmh:  18.52,
		})
		if err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	latest, err = positions.LatestByRoute(1)
	if err != nil {
		t.Fatalf("LatestByRoute failed: %v", err)
	}
	if !latest.Timestamp.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("latest position should be the newest by timestamp, got %v", latest.Timestamp)
	}
	if latest.Location.Lat != 48.002 {
		t.Errorf("location not round-tripped: %+v", latest.Location)
	}

	list, err := positions.ListByRoute(1)
	if err != nil {
		t.Fatalf("ListByRoute failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 positions, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i].Timestamp.Before(list[i-1].Timestamp) {
			t.Error("positions should be ordered by timestamp ascending")
		}
	}

	count, err := positions.CountByRoute(1)
	if err != nil {
		t.Fatalf("CountByRoute failed: %v", err)
	}
	if count != 3 {
		t.Errorf("expected count 3, got %d", count)
	}
}

func TestAssignmentRepositoryActiveWindow(t *testing.T) {
	db := testDB(t)
	assignments := NewAssignmentRepository(db)

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	// Ended yesterday
	past := now.Add(-24 * time.Hour)
	pastEnd := now.Add(-12 * time.Hour)
	if _, err := assignments.Create(&models.Assignment{
		UserID: 1, VehicleID: 5, StartDate: past, EndDate: &pastEnd,
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	active, err := assignments.ActiveByVehicle(5, now)
	if err != nil {
		t.Fatalf("ActiveByVehicle failed: %v", err)
	}
	if active != nil {
		t.Fatal("an ended assignment should not be active")
	}

	// Open-ended from an hour ago
	id, err := assignments.Create(&models.Assignment{
		UserID: 1, VehicleID: 5, StartDate: now.Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	active, err = assignments.ActiveByVehicle(5, now)
	if err != nil {
		t.Fatalf("ActiveByVehicle failed: %v", err)
	}
	if active == nil || active.ID != id {
		t.Fatalf("expected assignment %d active, got %+v", id, active)
	}

	if err := assignments.End(id, now); err != nil {
		t.Fatalf("End failed: %v", err)
	}
	active, err = assignments.ActiveByVehicle(5, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("ActiveByVehicle failed: %v", err)
	}
	if active != nil {
		t.Fatal("ended assignment should no longer be active")
	}
}

func TestVehicleRepositoryTokenLookups(t *testing.T) {
	db := testDB(t)
	vehicles := NewVehicleRepository(db)

	id, err := vehicles.Create(&models.Vehicle{
		Name:              "Van 1",
		IMEI:              "123456789012345",
		Status:            models.VehicleStatusRegistered,
		Color:             "#FF0000",
		PositionCheckFreq: 15,
		MinDistanceDelta:  3,
		MaxIdleMinutes:    15,
		CreatedAt:         time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	v, err := vehicles.GetByIMEI("123456789012345",
		models.VehicleStatusActive, models.VehicleStatusRegistered)
	if err != nil {
		t.Fatalf("GetByIMEI failed: %v", err)
	}
	if v == nil || v.ID != id {
		t.Fatalf("expected vehicle %d, got %+v", id, v)
	}
	if v.Token != nil {
		t.Error("fresh vehicle should have no token")
	}

	if err := vehicles.UpdateToken(id, "deadbeefdeadbeefdeadbeefdeadbeef"); err != nil {
		t.Fatalf("UpdateToken failed: %v", err)
	}

	v, err = vehicles.GetByToken("deadbeefdeadbeefdeadbeefdeadbeef")
	if err != nil {
		t.Fatalf("GetByToken failed: %v", err)
	}
	if v == nil || v.ID != id {
		t.Fatalf("token lookup failed, got %+v", v)
	}

	v, err = vehicles.GetByIMEIAndToken("123456789012345", "deadbeefdeadbeefdeadbeefdeadbeef")
	if err != nil {
		t.Fatalf("GetByIMEIAndToken failed: %v", err)
	}
	if v == nil || v.ID != id {
		t.Fatalf("imei+token lookup failed, got %+v", v)
	}

	if err := vehicles.MarkDeleted(id); err != nil {
		t.Fatalf("MarkDeleted failed: %v", err)
	}
	v, err = vehicles.GetByIMEI("123456789012345",
		models.VehicleStatusActive, models.VehicleStatusRegistered)
	if err != nil {
		t.Fatalf("GetByIMEI failed: %v", err)
	}
	if v != nil {
		t.Error("deleted vehicle should not be issued tokens")
	}
}
