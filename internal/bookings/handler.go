package bookings

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lankago/tour-marketplace/pkg/common"
	"github.com/lankago/tour-marketplace/pkg/middleware"
	"github.com/lankago/tour-marketplace/pkg/models"
	"github.com/lankago/tour-marketplace/pkg/pagination"
)

// Handler handles booking HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates a new bookings handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreateBooking handles POST /bookings
func (h *Handler) CreateBooking(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req CreateBookingRequest
	if !common.BindJSON(c, &req) {
		return
	}

	booking, err := h.service.Create(c.Request.Context(), userID, &req)
	if common.HandleServiceError(c, err, "failed to create booking") {
		return
	}

	common.CreatedResponse(c, booking)
}

// GetBooking handles GET /bookings/:id
func (h *Handler) GetBooking(c *gin.Context) {
	actor, err := middleware.GetActor(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	id, ok := common.ParseUUIDParam(c, "id", "booking ID")
	if !ok {
		return
	}

	booking, err := h.service.Get(c.Request.Context(), id, actor)
	if common.HandleServiceError(c, err, "failed to get booking") {
		return
	}

	common.SuccessResponse(c, booking)
}

// UpdateStatus handles PATCH /bookings/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	actor, err := middleware.GetActor(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	id, ok := common.ParseUUIDParam(c, "id", "booking ID")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if !common.BindJSON(c, &req) {
		return
	}

	next := models.BookingStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	booking, err := h.service.Transition(c.Request.Context(), id, next, actor)
	if common.HandleServiceError(c, err, "failed to update booking status") {
		return
	}

	common.SuccessResponse(c, booking)
}

// ListMyBookings handles GET /bookings
func (h *Handler) ListMyBookings(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	params := pagination.ParseParams(c)
	bookings, total, err := h.service.ListByTourist(c.Request.Context(), userID, params.Limit, params.Offset)
	if common.HandleServiceError(c, err, "failed to list bookings") {
		return
	}

	common.SuccessResponseWithMeta(c, bookings, pagination.BuildMeta(params.Limit, params.Offset, total))
}

// ListProviderBookings handles GET /bookings/provider
func (h *Handler) ListProviderBookings(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	params := pagination.ParseParams(c)
	bookings, total, err := h.service.ListForProvider(c.Request.Context(), userID, params.Limit, params.Offset)
	if common.HandleServiceError(c, err, "failed to list bookings") {
		return
	}

	common.SuccessResponseWithMeta(c, bookings, pagination.BuildMeta(params.Limit, params.Offset, total))
}
