package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lankago/tour-marketplace/pkg/common"
	"github.com/lankago/tour-marketplace/pkg/middleware"
)

// Handler handles HTTP requests for authentication
type Handler struct {
	service *Service
}

// NewHandler creates a new auth handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register creates a new account
// POST /api/v1/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if !common.BindJSON(c, &req) {
		return
	}

	resp, err := h.service.Register(c.Request.Context(), &req)
	if common.HandleServiceError(c, err, "failed to register user") {
		return
	}

	common.CreatedResponse(c, resp)
}

// Login authenticates an account
// POST /api/v1/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !common.BindJSON(c, &req) {
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if common.HandleServiceError(c, err, "failed to login") {
		return
	}

	common.SuccessResponse(c, resp)
}

// GetProfile returns the authenticated account
// GET /api/v1/auth/me
func (h *Handler) GetProfile(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.service.GetProfile(c.Request.Context(), userID)
	if common.HandleServiceError(c, err, "failed to get profile") {
		return
	}

	common.SuccessResponse(c, user)
}
