package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lab-portal-api/internal/models"
	"github.com/noah-isme/lab-portal-api/pkg/response"
)

type dashboardService interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
}

// DashboardHandler serves the admin dashboard.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Stats godoc
// @Summary Admin dashboard statistics
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.DashboardStats
// @Router /admin/dashboard [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats)
}
