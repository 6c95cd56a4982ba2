package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tripline/vehicle-location-go/internal/service"
	"github.com/tripline/vehicle-location-go/pkg/response"
)

// VehicleHandler handles HTTP requests for vehicle management
type VehicleHandler struct {
	vehicleService *service.VehicleService
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(vehicleService *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

// Create handles POST /api/v1/vehicles
func (h *VehicleHandler) Create(c *gin.Context) {
	var in service.VehicleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, "Invalid vehicle data")
		return
	}

	vehicle, err := h.vehicleService.Create(in)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, vehicle)
}

// List handles GET /api/v1/vehicles
func (h *VehicleHandler) List(c *gin.Context) {
	vehicles, err := h.vehicleService.List()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"data":  vehicles,
		"count": len(vehicles),
	})
}

// Get handles GET /api/v1/vehicles/:id
func (h *VehicleHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "Invalid vehicle ID")
		return
	}

	vehicle, err := h.vehicleService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "Vehicle not found")
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, vehicle)
}

// Update handles PUT /api/v1/vehicles/:id
func (h *VehicleHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "Invalid vehicle ID")
		return
	}

	var upd service.VehicleUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		response.BadRequest(c, "Invalid vehicle data")
		return
	}

	vehicle, err := h.vehicleService.Update(id, upd)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "Vehicle not found")
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, vehicle)
}

// Delete handles DELETE /api/v1/vehicles/:id
func (h *VehicleHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "Invalid vehicle ID")
		return
	}

	if err := h.vehicleService.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "Vehicle not found")
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, nil)
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
