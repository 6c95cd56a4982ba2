package main

import (
	"log"

	"github.com/tripline/vehicle-location-go/internal/api"
	"github.com/tripline/vehicle-location-go/internal/config"
	"github.com/tripline/vehicle-location-go/internal/database"
	"github.com/tripline/vehicle-location-go/internal/geocoding"
	"github.com/tripline/vehicle-location-go/internal/handler"
	"github.com/tripline/vehicle-location-go/internal/repository"
	"github.com/tripline/vehicle-location-go/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	db := database.GetDB()
	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	routeRepo := repository.NewRouteRepository(db)
	positionRepo := repository.NewPositionRepository(db)

	// Services
	geocoder := geocoding.NewStubGeocoder()
	locationService := service.NewLocationService(
		service.NewSQLUnitOfWork(db), vehicleRepo, assignmentRepo, geocoder)
	tokenService := service.NewTokenService(vehicleRepo)
	userService := service.NewUserService(userRepo, cfg.JWTSecret)
	vehicleService := service.NewVehicleService(vehicleRepo)
	assignmentService := service.NewAssignmentService(assignmentRepo, vehicleRepo)
	routeService := service.NewRouteService(routeRepo, positionRepo)

	router := api.SetupRouter(cfg, api.Handlers{
		Location:   handler.NewLocationHandler(locationService),
		Token:      handler.NewTokenHandler(tokenService),
		User:       handler.NewUserHandler(userService),
		Vehicle:    handler.NewVehicleHandler(vehicleService),
		Assignment: handler.NewAssignmentHandler(assignmentService),
		Route:      handler.NewRouteHandler(routeService),
	})

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
