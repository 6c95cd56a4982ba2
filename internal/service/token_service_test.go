package service

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/tripline/vehicle-location-go/internal/database"
	"github.com/tripline/vehicle-location-go/internal/repository"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(1)

	if err := database.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

func TestRequestTokenRotates(t *testing.T) {
	db := openTestDB(t)
	vehicles := repository.NewVehicleRepository(db)
	svc := NewTokenService(vehicles)

	vehicleSvc := NewVehicleService(vehicles)
	v, err := vehicleSvc.Create(VehicleInput{
		Name: "Van 1", IMEI: "490154203237518", MaxIdleMinutes: 20,
	})
	if err != nil {
		t.Fatalf("failed to create vehicle: %v", err)
	}

	first, err := svc.RequestToken("490154203237518")
	if err != nil {
		t.Fatalf("RequestToken failed: %v", err)
	}
	if first.Token == "" {
		t.Fatal("expected a non-empty token")
	}
	if first.MaxIdleMinutes != 20 {
		t.Errorf("expected max_idle_minutes 20, got %d", first.MaxIdleMinutes)
	}
	if first.PositionCheckFreq != 15 || first.MinDistanceDelta != 3 {
		t.Errorf("expected defaulted tunables, got %+v", first)
	}

	if err := svc.VerifyToken("490154203237518", first.Token); err != nil {
		t.Fatalf("VerifyToken failed for fresh token: %v", err)
	}

	second, err := svc.RequestToken("490154203237518")
	if err != nil {
		t.Fatalf("RequestToken failed: %v", err)
	}
	if second.Token == first.Token {
		t.Error("token should rotate on every request")
	}

	// The old token is dead after rotation
	if err := svc.VerifyToken("490154203237518", first.Token); !errors.Is(err, ErrVehicleNotFound) {
		t.Errorf("expected ErrVehicleNotFound for stale token, got %v", err)
	}

	// A deleted vehicle gets no tokens
	if err := vehicleSvc.Delete(v.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := svc.RequestToken("490154203237518"); !errors.Is(err, ErrVehicleNotFound) {
		t.Errorf("expected ErrVehicleNotFound for deleted vehicle, got %v", err)
	}
}

func TestRequestTokenUnknownIMEI(t *testing.T) {
	db := openTestDB(t)
	svc := NewTokenService(repository.NewVehicleRepository(db))

	if _, err := svc.RequestToken("000000000000000"); !errors.Is(err, ErrVehicleNotFound) {
		t.Errorf("expected ErrVehicleNotFound, got %v", err)
	}
}
