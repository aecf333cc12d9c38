package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lab-portal-api/internal/service"
)

const probeTimeout = 2 * time.Second

// Probe checks that one backing dependency is reachable.
type Probe func(ctx context.Context) error

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics *service.MetricsService
	probes  map[string]Probe
	now     func() time.Time
}

// NewMetricsHandler constructs a metrics handler. Probes are keyed by
// dependency name (postgres, redis) and run by Ready.
func NewMetricsHandler(metrics *service.MetricsService, probes map[string]Probe) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, probes: probes, now: time.Now}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.AbortWithStatus(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health godoc
// @Summary Liveness probe
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK", "timestamp": h.now().UTC().Format(time.RFC3339)})
}

// Ready godoc
// @Summary Readiness probe
// @Description Pings every backing store; 503 when any is unreachable.
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /ready [get]
func (h *MetricsHandler) Ready(c *gin.Context) {
	names := make([]string, 0, len(h.probes))
	for name := range h.probes {
		names = append(names, name)
	}
	sort.Strings(names)

	status, code := "ready", http.StatusOK
	checks := make(map[string]string, len(names))
	for _, name := range names {
		ctx, cancel := context.WithTimeout(c.Request.Context(), probeTimeout)
		err := h.probes[name](ctx)
		cancel()
		if err != nil {
			_ = c.Error(err)
			checks[name] = "unavailable"
			status, code = "not ready", http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}
	c.JSON(code, gin.H{"status": status, "checks": checks})
}
