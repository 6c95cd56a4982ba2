package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tripline/vehicle-location-go/internal/service"
)

// LocationHandler handles the device-facing location protocol. Response
// shapes here are part of the device firmware contract, so they bypass the
// web API envelope.
type LocationHandler struct {
	locationService *service.LocationService
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(locationService *service.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

type positionRequest struct {
	Token string   `json:"token" binding:"required"`
	Lat   *float64 `json:"lat" binding:"required"`
	Lon   *float64 `json:"lon" binding:"required"`
	Speed float64  `json:"speed"`
}

// PostLocation handles POST /location
func (h *LocationHandler) PostLocation(c *gin.Context) {
	var req positionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		deviceError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	additional, err := h.locationService.PostLocation(req.Token, *req.Lat, *req.Lon, req.Speed)
	if err != nil {
		status, msg := deviceStatus(err)
		deviceError(c, status, msg)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"message":             "Location is saved",
		"additional_distance": additional,
	})
}

type routeStartRequest struct {
	Token string `json:"token" binding:"required"`
}

// PostRoute handles POST /route
func (h *LocationHandler) PostRoute(c *gin.Context) {
	var req routeStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		deviceError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	routeID, err := h.locationService.StartRoute(req.Token)
	if err != nil {
		status, msg := deviceStatus(err)
		deviceError(c, status, msg)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "New route is created",
		"route_id": routeID,
	})
}

func deviceError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

func deviceStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrVehicleNotFound):
		return http.StatusNotFound, "Vehicle not found"
	case errors.Is(err, service.ErrReportingNotAllowed):
		return http.StatusForbidden, "Post location is not allowed for this vehicle"
	case errors.Is(err, service.ErrInvalidCoordinates):
		return http.StatusBadRequest, "Invalid coordinates"
	case errors.Is(err, service.ErrVehicleNotAssigned):
		return http.StatusNotFound, "Vehicle is not assigned"
	default:
		return http.StatusInternalServerError, "Database error"
	}
}
