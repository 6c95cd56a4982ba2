package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tripline/vehicle-location-go/internal/service"
	"github.com/tripline/vehicle-location-go/pkg/response"
)

// AssignmentHandler handles HTTP requests for user-vehicle assignments
type AssignmentHandler struct {
	assignmentService *service.AssignmentService
}

// NewAssignmentHandler creates a new assignment handler
func NewAssignmentHandler(assignmentService *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

type assignRequest struct {
	UserID    int64 `json:"user_id" binding:"required"`
	VehicleID int64 `json:"vehicle_id" binding:"required"`
}

// Create handles POST /api/v1/assignments
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid assignment data")
		return
	}

	assignment, err := h.assignmentService.Assign(req.UserID, req.VehicleID)
	if err != nil {
		if errors.Is(err, service.ErrVehicleNotFound) {
			response.NotFound(c, "Vehicle not found")
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, assignment)
}

// End handles POST /api/v1/assignments/:id/end
func (h *AssignmentHandler) End(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "Invalid assignment ID")
		return
	}

	if err := h.assignmentService.End(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "Assignment not found")
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, nil)
}

// ListByUser handles GET /api/v1/users/:id/assignments
func (h *AssignmentHandler) ListByUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	assignments, err := h.assignmentService.ListByUser(userID)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"data":  assignments,
		"count": len(assignments),
	})
}
