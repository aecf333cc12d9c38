package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lab-portal-api/internal/dto"
	"github.com/noah-isme/lab-portal-api/internal/models"
	appErrors "github.com/noah-isme/lab-portal-api/pkg/errors"
	"github.com/noah-isme/lab-portal-api/pkg/response"
)

type userService interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateUserStatusRequest) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, req dto.UpdateProfileRequest) (*models.User, error)
}

// UserHandler serves user profiles and the admin user directory.
type UserHandler struct {
	service userService
}

// NewUserHandler constructs the handler.
func NewUserHandler(svc userService) *UserHandler {
	return &UserHandler{service: svc}
}

// Profile godoc
// @Summary Current user's profile
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Router /users/profile [get]
func (h *UserHandler) Profile(c *gin.Context) {
	p, ok := principalFromContext(c).(models.UserPrincipal)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, p.User)
}

// UpdateProfile godoc
// @Summary Update the current user's email or password
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.UpdateProfileRequest true "Changes"
// @Success 200 {object} models.ProfileUpdateResponse
// @Failure 409 {object} response.ErrorBody
// @Router /users/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	p, ok := principalFromContext(c).(models.UserPrincipal)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.UpdateProfileRequest
	if !bindJSON(c, &req, "invalid profile payload") {
		return
	}
	user, err := h.service.UpdateProfile(c.Request.Context(), p.User.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, models.ProfileUpdateResponse{Message: "Profile updated successfully.", User: user})
}

// List godoc
// @Summary List users
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.User
// @Router /admin/users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, users)
}

// Get godoc
// @Summary Get a user
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} response.ErrorBody
// @Router /admin/users/{userId} [get]
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.service.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user)
}

// UpdateStatus godoc
// @Summary Activate or deactivate a user
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Param payload body dto.UpdateUserStatusRequest true "Status"
// @Success 200 {object} models.User
// @Failure 404 {object} response.ErrorBody
// @Router /admin/users/{userId}/status [put]
func (h *UserHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateUserStatusRequest
	if !bindJSON(c, &req, "invalid status payload") {
		return
	}
	user, err := h.service.UpdateStatus(c.Request.Context(), c.Param("userId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user)
}
