package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lab-portal-api/internal/models"
	"github.com/noah-isme/lab-portal-api/internal/service"
	appErrors "github.com/noah-isme/lab-portal-api/pkg/errors"
	"github.com/noah-isme/lab-portal-api/pkg/response"
)

type authService interface {
	SignUpUser(ctx context.Context, req models.SignUpRequest) (*models.UserInfo, error)
	SignUpAdmin(ctx context.Context, req models.SignUpRequest) (*models.AdminInfo, error)
	SignInUser(ctx context.Context, req models.SignInRequest) (*models.SignInResponse, error)
	SignInAdmin(ctx context.Context, req models.AdminSignInRequest) (*models.SignInResponse, error)
	SignInFederated(ctx context.Context, req models.FederatedSignInRequest) (*models.SignInResponse, error)
	Logout(ctx context.Context, principal models.Principal)
}

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	service authService
	metrics *service.MetricsService
}

// NewAuthHandler creates a new handler. Metrics may be nil.
func NewAuthHandler(svc authService, metrics *service.MetricsService) *AuthHandler {
	return &AuthHandler{service: svc, metrics: metrics}
}

// SignUp godoc
// @Summary Register a user
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.SignUpRequest true "Credentials"
// @Success 201 {object} models.SignUpResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /auth/signup [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req models.SignUpRequest
	if !bindJSON(c, &req, "invalid sign up payload") {
		return
	}
	user, err := h.service.SignUpUser(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, models.SignUpResponse{Message: "User created successfully", User: user})
}

// AdminSignUp godoc
// @Summary Register an admin
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.SignUpRequest true "Credentials"
// @Success 201 {object} models.SignUpResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /auth/admin/signup [post]
func (h *AuthHandler) AdminSignUp(c *gin.Context) {
	var req models.SignUpRequest
	if !bindJSON(c, &req, "invalid sign up payload") {
		return
	}
	admin, err := h.service.SignUpAdmin(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, models.SignUpResponse{Message: "Admin created successfully", Admin: admin})
}

// SignIn godoc
// @Summary Sign in as a user
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.SignInRequest true "Credentials"
// @Success 200 {object} models.SignInResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Router /auth/signin [post]
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req models.SignInRequest
	if !bindJSON(c, &req, "invalid sign in payload") {
		return
	}
	res, err := h.service.SignInUser(c.Request.Context(), req)
	h.record(models.PrincipalUser, err)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

// AdminSignIn godoc
// @Summary Sign in as an admin
// @Description Requires the shared admin key in addition to credentials.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.AdminSignInRequest true "Credentials and admin key"
// @Success 200 {object} models.SignInResponse
// @Failure 401 {object} response.ErrorBody
// @Failure 403 {object} response.ErrorBody
// @Router /auth/admin/signin [post]
func (h *AuthHandler) AdminSignIn(c *gin.Context) {
	var req models.AdminSignInRequest
	if !bindJSON(c, &req, "invalid sign in payload") {
		return
	}
	res, err := h.service.SignInAdmin(c.Request.Context(), req)
	h.record(models.PrincipalAdmin, err)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

// GoogleVerifyToken godoc
// @Summary Sign in with a Google ID token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.FederatedSignInRequest true "ID token"
// @Success 200 {object} models.SignInResponse
// @Failure 401 {object} response.ErrorBody
// @Router /auth/google-verify-token [post]
func (h *AuthHandler) GoogleVerifyToken(c *gin.Context) {
	var req models.FederatedSignInRequest
	if !bindJSON(c, &req, "invalid token payload") {
		return
	}
	res, err := h.service.SignInFederated(c.Request.Context(), req)
	h.record("federated", err)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

// Me godoc
// @Summary Current principal
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.MeResponse
// @Failure 401 {object} response.ErrorBody
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	switch p := principalFromContext(c).(type) {
	case models.UserPrincipal:
		response.JSON(c, http.StatusOK, models.MeResponse{User: p.User, Type: models.PrincipalUser})
	case models.AdminPrincipal:
		response.JSON(c, http.StatusOK, models.MeResponse{Admin: p.Admin, Type: models.PrincipalAdmin})
	default:
		response.Error(c, appErrors.ErrUnauthorized)
	}
}

// Logout godoc
// @Summary Sign out
// @Description Sessions are stateless; clients discard their token.
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.MessageBody
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.service.Logout(c.Request.Context(), principalFromContext(c))
	response.Message(c, http.StatusOK, "Logged out successfully")
}

func (h *AuthHandler) record(kind models.PrincipalKind, err error) {
	var appErr *appErrors.Error
	if err != nil && errors.As(err, &appErr) && appErr.Code == appErrors.ErrValidation.Code {
		return
	}
	h.metrics.RecordSignIn(string(kind), err == nil)
}
