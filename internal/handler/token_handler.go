package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tripline/vehicle-location-go/internal/service"
)

// TokenHandler handles device token issuance and verification
type TokenHandler struct {
	tokenService *service.TokenService
}

// NewTokenHandler creates a new token handler
func NewTokenHandler(tokenService *service.TokenService) *TokenHandler {
	return &TokenHandler{tokenService: tokenService}
}

type tokenRequest struct {
	IMEI string `json:"imei" binding:"required"`
}

// RequestToken handles POST /request_token
func (h *TokenHandler) RequestToken(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		deviceError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	cfg, err := h.tokenService.RequestToken(req.IMEI)
	if err != nil {
		if errors.Is(err, service.ErrVehicleNotFound) {
			deviceError(c, http.StatusNotFound, "Vehicle not found")
			return
		}
		deviceError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":              "success",
		"token":               cfg.Token,
		"position_check_freq": cfg.PositionCheckFreq,
		"min_distance_delta":  cfg.MinDistanceDelta,
		"max_idle_minutes":    cfg.MaxIdleMinutes,
		"manual_start":        cfg.ManualStart,
	})
}

type tokenVerifyRequest struct {
	IMEI  string `json:"imei" binding:"required"`
	Token string `json:"token" binding:"required"`
}

// VerifyToken handles POST /verify_token
func (h *TokenHandler) VerifyToken(c *gin.Context) {
	var req tokenVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		deviceError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.tokenService.VerifyToken(req.IMEI, req.Token); err != nil {
		if errors.Is(err, service.ErrVehicleNotFound) {
			deviceError(c, http.StatusNotFound, "Vehicle not found")
			return
		}
		deviceError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Token is verified",
	})
}
