package vehicles

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lankago/tour-marketplace/internal/catalog"
	"github.com/lankago/tour-marketplace/pkg/common"
	"github.com/lankago/tour-marketplace/pkg/middleware"
)

// Handler handles vehicle HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates a new vehicles handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterVehicle handles POST /vehicles/register
func (h *Handler) RegisterVehicle(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req RegisterVehicleRequest
	if !common.BindJSON(c, &req) {
		return
	}

	vehicle, err := h.service.RegisterVehicle(c.Request.Context(), userID, &req)
	if common.HandleServiceError(c, err, "failed to register vehicle") {
		return
	}

	common.CreatedResponse(c, vehicle)
}

// ListVehicles handles GET /vehicles
func (h *Handler) ListVehicles(c *gin.Context) {
	var filter catalog.VehicleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid filter parameters")
		return
	}

	result, err := h.service.ListVehicles(c.Request.Context(), filter)
	if common.HandleServiceError(c, err, "failed to list vehicles") {
		return
	}

	common.SuccessResponse(c, result)
}

// GetVehicle handles GET /vehicles/:id
func (h *Handler) GetVehicle(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id", "vehicle ID")
	if !ok {
		return
	}

	vehicle, err := h.service.GetVehicle(c.Request.Context(), id)
	if common.HandleServiceError(c, err, "failed to get vehicle") {
		return
	}

	common.SuccessResponse(c, vehicle)
}

// GetMyProfile handles GET /vehicles/me
func (h *Handler) GetMyProfile(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	vehicle, err := h.service.GetMyProfile(c.Request.Context(), userID)
	if common.HandleServiceError(c, err, "failed to get vehicle profile") {
		return
	}

	common.SuccessResponse(c, vehicle)
}

// SetAvailability handles PATCH /vehicles/me/availability
func (h *Handler) SetAvailability(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req SetAvailabilityRequest
	if !common.BindJSON(c, &req) {
		return
	}

	vehicle, err := h.service.SetAvailability(c.Request.Context(), userID, *req.IsAvailable)
	if common.HandleServiceError(c, err, "failed to update availability") {
		return
	}

	common.SuccessResponse(c, vehicle)
}
