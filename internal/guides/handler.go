package guides

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lankago/tour-marketplace/internal/catalog"
	"github.com/lankago/tour-marketplace/pkg/common"
	"github.com/lankago/tour-marketplace/pkg/middleware"
)

// Handler handles guide HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates a new guides handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterGuide handles POST /guides/register
func (h *Handler) RegisterGuide(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req RegisterGuideRequest
	if !common.BindJSON(c, &req) {
		return
	}

	guide, err := h.service.RegisterGuide(c.Request.Context(), userID, &req)
	if common.HandleServiceError(c, err, "failed to register guide") {
		return
	}

	common.CreatedResponse(c, guide)
}

// ListGuides handles GET /guides
func (h *Handler) ListGuides(c *gin.Context) {
	var filter catalog.GuideFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid filter parameters")
		return
	}

	result, err := h.service.ListGuides(c.Request.Context(), filter)
	if common.HandleServiceError(c, err, "failed to list guides") {
		return
	}

	common.SuccessResponse(c, result)
}

// GetGuide handles GET /guides/:id
func (h *Handler) GetGuide(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id", "guide ID")
	if !ok {
		return
	}

	guide, err := h.service.GetGuide(c.Request.Context(), id)
	if common.HandleServiceError(c, err, "failed to get guide") {
		return
	}

	common.SuccessResponse(c, guide)
}

// GetMyProfile handles GET /guides/me
func (h *Handler) GetMyProfile(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	guide, err := h.service.GetMyProfile(c.Request.Context(), userID)
	if common.HandleServiceError(c, err, "failed to get guide profile") {
		return
	}

	common.SuccessResponse(c, guide)
}

// SetAvailability handles PATCH /guides/me/availability
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

	guide, err := h.service.SetAvailability(c.Request.Context(), userID, *req.IsAvailable)
	if common.HandleServiceError(c, err, "failed to update availability") {
		return
	}

	common.SuccessResponse(c, guide)
}
