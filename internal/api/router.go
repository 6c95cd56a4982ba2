package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tripline/vehicle-location-go/internal/config"
	"github.com/tripline/vehicle-location-go/internal/handler"
	"github.com/tripline/vehicle-location-go/internal/middleware"
)

// Handlers bundles everything the router wires up
type Handlers struct {
	Location   *handler.LocationHandler
	Token      *handler.TokenHandler
	User       *handler.UserHandler
	Vehicle    *handler.VehicleHandler
	Assignment *handler.AssignmentHandler
	Route      *handler.RouteHandler
}

// SetupRouter builds the gin engine with the device and web API surfaces
func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Vehicle Location API is running",
		})
	})

	// Device protocol, authenticated by rotating vehicle tokens
	device := r.Group("/")
	device.Use(middleware.RateLimit(cfg.DeviceRateLimit, time.Minute))
	{
		device.POST("/location", h.Location.PostLocation)
		device.POST("/route", h.Location.PostRoute)
		device.POST("/request_token", h.Token.RequestToken)
		device.POST("/verify_token", h.Token.VerifyToken)
	}

	// Web client auth
	r.POST("/register", h.User.Register)
	r.POST("/login", h.User.Login)

	// Management API, guarded by session JWTs
	api := r.Group("/api/v1")
	api.Use(middleware.AuthRequired(cfg.JWTSecret))
	{
		vehicles := api.Group("/vehicles")
		{
			vehicles.POST("", h.Vehicle.Create)
			vehicles.GET("", h.Vehicle.List)
			vehicles.GET("/:id", h.Vehicle.Get)
			vehicles.PUT("/:id", h.Vehicle.Update)
			vehicles.DELETE("/:id", h.Vehicle.Delete)
		}

		assignments := api.Group("/assignments")
		{
			assignments.POST("", h.Assignment.Create)
			assignments.POST("/:id/end", h.Assignment.End)
			assignments.GET("/:id/routes", h.Route.ListByAssignment)
		}

		api.GET("/users/:id/assignments", h.Assignment.ListByUser)

		routes := api.Group("/routes")
		{
			routes.GET("/:id", h.Route.Get)
			routes.GET("/:id/positions", h.Route.Positions)
		}
	}

	return r
}
