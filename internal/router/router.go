package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/lab-portal-api/internal/handler"
	"github.com/noah-isme/lab-portal-api/internal/middleware"
	"github.com/noah-isme/lab-portal-api/internal/models"
	"github.com/noah-isme/lab-portal-api/internal/service"
	"github.com/noah-isme/lab-portal-api/pkg/config"
	"github.com/noah-isme/lab-portal-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/lab-portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/lab-portal-api/pkg/middleware/requestid"
	"github.com/noah-isme/lab-portal-api/pkg/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth      *handler.AuthHandler
	Lab       *handler.LabHandler
	Timetable *handler.TimetableHandler
	User      *handler.UserHandler
	Dashboard *handler.DashboardHandler
	Metrics   *handler.MetricsHandler
}

// Options carries what the router needs besides handlers.
type Options struct {
	Config   *config.Config
	Logger   *zap.Logger
	Verifier middleware.TokenVerifier
	Metrics  *service.MetricsService
}

// New builds the gin engine with the global middleware chain and every route.
func New(h Handlers, opts Options) *gin.Engine {
	cfg := opts.Config
	logr := opts.Logger
	if logr == nil {
		logr = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logr.Error("panic recovered", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.MessageBody{Message: "Something went wrong!"})
	}))
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(middleware.Metrics(opts.Metrics, "/metrics"))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, response.MessageBody{Message: "Route not found"})
	})

	r.GET("/metrics", h.Metrics.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	prefix := "/" + strings.Trim(cfg.APIPrefix, "/")
	if prefix == "/" {
		prefix = ""
	}
	api := r.Group(prefix)
	api.GET("/health", h.Metrics.Health)
	api.GET("/ready", h.Metrics.Ready)

	authn := middleware.JWT(opts.Verifier)
	adminOnly := middleware.RequireAdmin()

	auth := api.Group("/auth")
	{
		auth.POST("/signup", h.Auth.SignUp)
		auth.POST("/admin/signup", h.Auth.AdminSignUp)
		auth.POST("/signin", h.Auth.SignIn)
		auth.POST("/admin/signin", h.Auth.AdminSignIn)
		auth.POST("/google-verify-token", h.Auth.GoogleVerifyToken)
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/me", authn, h.Auth.Me)
	}

	labs := api.Group("/labs", authn)
	{
		labs.GET("", h.Lab.List)
		labs.GET("/export", h.Lab.Export)
		labs.GET("/type/:type", h.Lab.ListByType)
		labs.GET("/:id", h.Lab.Get)
	}

	timetable := api.Group("/timetable", authn)
	{
		timetable.GET("", h.Timetable.List)
		timetable.GET("/slots", h.Timetable.Slots)
		timetable.GET("/lab/:labId", h.Timetable.GetByLab)
		timetable.GET("/lab/:labId/export", h.Timetable.Export)
		timetable.POST("", adminOnly, h.Timetable.Create)
		timetable.PUT("/:id", adminOnly, h.Timetable.Update)
		timetable.DELETE("/:id", adminOnly, h.Timetable.Delete)
	}

	users := api.Group("/users", authn, middleware.RequirePrincipal(models.PrincipalUser))
	{
		users.GET("/profile", h.User.Profile)
		users.PUT("/profile", h.User.UpdateProfile)
		users.GET("/labs", h.Lab.Summaries)
		users.GET("/labs/:id", h.Lab.Get)
	}

	admin := api.Group("/admin", authn, adminOnly)
	{
		admin.GET("/dashboard", h.Dashboard.Stats)
		admin.GET("/users", h.User.List)
		admin.GET("/users/:userId", h.User.Get)
		admin.PUT("/users/:userId/status", h.User.UpdateStatus)
		admin.GET("/labs", h.Lab.List)
		admin.POST("/labs", h.Lab.Create)
		admin.PUT("/labs/:id", h.Lab.Update)
		admin.DELETE("/labs/:id", h.Lab.Delete)
	}

	return r
}
