package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lab-portal-api/internal/handler"
	"github.com/noah-isme/lab-portal-api/internal/models"
	"github.com/noah-isme/lab-portal-api/internal/service"
	"github.com/noah-isme/lab-portal-api/pkg/config"
	appErrors "github.com/noah-isme/lab-portal-api/pkg/errors"
)

type tokenTable map[string]models.Principal

func (t tokenTable) VerifyToken(_ context.Context, token string) (models.Principal, error) {
	if p, ok := t[token]; ok {
		return p, nil
	}
	return nil, appErrors.ErrInvalidToken
}

type staticDashboard struct{}

func (staticDashboard) Stats(context.Context) (*models.DashboardStats, error) {
	return &models.DashboardStats{TotalUsers: 2, TotalLabs: 1}, nil
}

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Env: config.EnvProduction, APIPrefix: "/api"}
	metrics := service.NewMetricsService()
	verifier := tokenTable{
		"user":  models.UserPrincipal{User: &models.User{ID: "u1", Email: "u@example.com", IsActive: true}},
		"admin": models.AdminPrincipal{Admin: &models.Admin{ID: "a1", Email: "a@example.com", Role: "admin"}},
	}
	return New(Handlers{
		Auth:      handler.NewAuthHandler(nil, metrics),
		Lab:       handler.NewLabHandler(nil),
		Timetable: handler.NewTimetableHandler(nil),
		User:      handler.NewUserHandler(nil),
		Dashboard: handler.NewDashboardHandler(staticDashboard{}),
		Metrics:   handler.NewMetricsHandler(metrics, nil),
	}, Options{Config: cfg, Verifier: verifier, Metrics: metrics})
}

func do(r *gin.Engine, method, path, token string) (*httptest.ResponseRecorder, map[string]interface{}) {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	body := map[string]interface{}{}
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func TestHealthAndUnknownRoutes(t *testing.T) {
	r := newTestEngine()

	rec, body := do(r, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", body["status"])

	rec, body = do(r, http.MethodGet, "/api/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", body["status"])

	rec, body = do(r, http.MethodGet, "/api/nothing-here", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", body["message"])

	rec, _ = do(r, http.MethodGet, "/docs/index.html", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestEngine()

	for _, path := range []string{"/api/labs", "/api/timetable", "/api/auth/me", "/api/admin/dashboard"} {
		rec, _ := do(r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestAdminRoutesRejectUsers(t *testing.T) {
	r := newTestEngine()

	for _, route := range [][2]string{
		{http.MethodPost, "/api/timetable"},
		{http.MethodPut, "/api/timetable/t1"},
		{http.MethodDelete, "/api/timetable/t1"},
		{http.MethodPost, "/api/admin/labs"},
		{http.MethodGet, "/api/admin/users"},
	} {
		rec, body := do(r, route[0], route[1], "user")
		assert.Equal(t, http.StatusForbidden, rec.Code, route[1])
		assert.Equal(t, "access denied: admin access required", body["message"])
	}

	rec, body := do(r, http.MethodGet, "/api/admin/dashboard", "admin")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, body["totalUsers"])
}

func TestUserOnlyRoutes(t *testing.T) {
	r := newTestEngine()

	for _, route := range [][2]string{
		{http.MethodGet, "/api/users/profile"},
		{http.MethodPut, "/api/users/profile"},
		{http.MethodGet, "/api/users/labs"},
		{http.MethodGet, "/api/users/labs/l1"},
	} {
		rec, _ := do(r, route[0], route[1], "admin")
		assert.Equal(t, http.StatusForbidden, rec.Code, route[1])
		rec, _ = do(r, route[0], route[1], "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, route[1])
	}

	rec, body := do(r, http.MethodGet, "/api/users/profile", "user")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u@example.com", body["email"])
	assert.NotContains(t, body, "passwordHash")

	rec, body = do(r, http.MethodGet, "/api/auth/me", "admin")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", body["type"])
	assert.Contains(t, body, "admin")
	assert.NotContains(t, body, "user")
}

func TestSlotsAndMetricsEndpoints(t *testing.T) {
	r := newTestEngine()

	rec, body := do(r, http.MethodGet, "/api/timetable/slots", "user")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["hours"], len(models.ReferenceHours))

	rec, _ = do(r, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}
