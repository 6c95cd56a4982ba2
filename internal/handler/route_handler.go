package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tripline/vehicle-location-go/internal/service"
	"github.com/tripline/vehicle-location-go/pkg/response"
)

// RouteHandler handles read access to routes and their positions
type RouteHandler struct {
	routeService *service.RouteService
}

// NewRouteHandler creates a new route handler
func NewRouteHandler(routeService *service.RouteService) *RouteHandler {
	return &RouteHandler{routeService: routeService}
}

// ListByAssignment handles GET /api/v1/assignments/:id/routes
func (h *RouteHandler) ListByAssignment(c *gin.Context) {
	assignmentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid assignment ID")
		return
	}

	routes, err := h.routeService.ListByAssignment(assignmentID)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"data":  routes,
		"count": len(routes),
	})
}

// Get handles GET /api/v1/routes/:id
func (h *RouteHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "Invalid route ID")
		return
	}

	route, err := h.routeService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "Route not found")
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, route)
}

// Positions handles GET /api/v1/routes/:id/positions
func (h *RouteHandler) Positions(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "Invalid route ID")
		return
	}

	positions, err := h.routeService.Positions(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "Route not found")
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"data":  positions,
		"count": len(positions),
	})
}
