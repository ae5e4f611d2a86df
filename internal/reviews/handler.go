package reviews

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lankago/tour-marketplace/pkg/common"
	"github.com/lankago/tour-marketplace/pkg/middleware"
	"github.com/lankago/tour-marketplace/pkg/models"
	"github.com/lankago/tour-marketplace/pkg/pagination"
)

// Handler handles review HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates a new reviews handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CheckEligibility handles GET /reviews/eligibility/:bookingID
func (h *Handler) CheckEligibility(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	bookingID, ok := common.ParseUUIDParam(c, "bookingID", "booking ID")
	if !ok {
		return
	}

	result, err := h.service.CheckEligibility(c.Request.Context(), bookingID, userID)
	if common.HandleServiceError(c, err, "failed to check review eligibility") {
		return
	}

	common.SuccessResponse(c, result)
}

// CreateReview handles POST /reviews
func (h *Handler) CreateReview(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req CreateReviewRequest
	if !common.BindJSON(c, &req) {
		return
	}

	review, err := h.service.CreateReview(c.Request.Context(), userID, &req)
	if common.HandleServiceError(c, err, "failed to create review") {
		return
	}

	common.CreatedResponse(c, review)
}

// GetReview handles GET /reviews/:id
func (h *Handler) GetReview(c *gin.Context) {
	actor, err := middleware.GetActor(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	id, ok := common.ParseUUIDParam(c, "id", "review ID")
	if !ok {
		return
	}

	review, err := h.service.GetReview(c.Request.Context(), id, actor)
	if common.HandleServiceError(c, err, "failed to get review") {
		return
	}

	common.SuccessResponse(c, review)
}

// UpdateReview handles PATCH /reviews/:id
func (h *Handler) UpdateReview(c *gin.Context) {
	actor, err := middleware.GetActor(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	id, ok := common.ParseUUIDParam(c, "id", "review ID")
	if !ok {
		return
	}

	var req UpdateReviewRequest
	if !common.BindJSON(c, &req) {
		return
	}

	review, err := h.service.UpdateReview(c.Request.Context(), id, actor, &req)
	if common.HandleServiceError(c, err, "failed to update review") {
		return
	}

	common.SuccessResponse(c, review)
}

// ReplyToReview handles POST /reviews/:id/reply
func (h *Handler) ReplyToReview(c *gin.Context) {
	actor, err := middleware.GetActor(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	id, ok := common.ParseUUIDParam(c, "id", "review ID")
	if !ok {
		return
	}

	var req ReplyRequest
	if !common.BindJSON(c, &req) {
		return
	}

	review, err := h.service.ReplyToReview(c.Request.Context(), id, actor, req.Reply)
	if common.HandleServiceError(c, err, "failed to reply to review") {
		return
	}

	common.SuccessResponse(c, review)
}

// DeleteReview handles DELETE /reviews/:id
func (h *Handler) DeleteReview(c *gin.Context) {
	actor, err := middleware.GetActor(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	id, ok := common.ParseUUIDParam(c, "id", "review ID")
	if !ok {
		return
	}

	err = h.service.DeleteReview(c.Request.Context(), id, actor)
	if common.HandleServiceError(c, err, "failed to delete review") {
		return
	}

	common.SuccessResponse(c, gin.H{"deleted": true})
}

// GetByBooking handles GET /reviews/booking/:bookingID
func (h *Handler) GetByBooking(c *gin.Context) {
	bookingID, ok := common.ParseUUIDParam(c, "bookingID", "booking ID")
	if !ok {
		return
	}

	review, err := h.service.GetByBooking(c.Request.Context(), bookingID)
	if common.HandleServiceError(c, err, "failed to get review") {
		return
	}

	common.SuccessResponse(c, review)
}

// ListForTarget handles GET /reviews/target/:targetType/:targetID
func (h *Handler) ListForTarget(c *gin.Context) {
	targetType := models.ServiceType(strings.ToLower(c.Param("targetType")))
	targetID, ok := common.ParseUUIDParam(c, "targetID", "target ID")
	if !ok {
		return
	}

	params := pagination.ParseParams(c)
	reviews, total, stats, err := h.service.ListForTarget(c.Request.Context(), targetType, targetID, params.Limit, params.Offset)
	if common.HandleServiceError(c, err, "failed to list reviews") {
		return
	}

	meta := pagination.BuildMeta(params.Limit, params.Offset, total)
	meta.Stats = stats
	common.SuccessResponseWithMeta(c, reviews, meta)
}

// RecomputeTarget handles POST /reviews/target/:targetType/:targetID/recompute
func (h *Handler) RecomputeTarget(c *gin.Context) {
	targetType := models.ServiceType(strings.ToLower(c.Param("targetType")))
	targetID, ok := common.ParseUUIDParam(c, "targetID", "target ID")
	if !ok {
		return
	}

	agg, err := h.service.RecomputeTarget(c.Request.Context(), targetType, targetID)
	if common.HandleServiceError(c, err, "failed to recompute target rating") {
		return
	}

	common.SuccessResponse(c, agg)
}

// ListMyReviews handles GET /reviews/mine
func (h *Handler) ListMyReviews(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	reviews, err := h.service.ListForAuthor(c.Request.Context(), userID)
	if common.HandleServiceError(c, err, "failed to list reviews") {
		return
	}

	common.SuccessResponse(c, reviews)
}

// ListProviderReviews handles GET /reviews/provider
func (h *Handler) ListProviderReviews(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	reviews, err := h.service.ListForServiceOwner(c.Request.Context(), userID)
	if common.HandleServiceError(c, err, "failed to list reviews") {
		return
	}

	common.SuccessResponse(c, reviews)
}
