package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"appointment-scheduler/internal/domain/user"
	"appointment-scheduler/internal/handler/api"
	"appointment-scheduler/internal/handler/middleware"
	"appointment-scheduler/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

// Handlers groups everything the router mounts.
type Handlers struct {
	Appointment *api.AppointmentHandler
	Provider    *api.ProviderHandler
	Schedule    *api.ScheduleHandler
	Auth        *middleware.AuthMiddleware
	// RateLimiter is nil when rate limiting is off.
	RateLimiter middleware.RateLimiter
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, h Handlers) {
	setupMiddleware(engine, cfg, logger, h.RateLimiter)
	setupRoutes(engine, h)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger, limiter middleware.RateLimiter) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(logger, cfg.Log))
	engine.Use(middleware.ErrorHandler())
	if limiter != nil {
		engine.Use(middleware.RateLimit(limiter, cfg.RateLimit.FailOpen, logger))
	}
}

func setupRoutes(engine *gin.Engine, h Handlers) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	scheduleWriters := h.Auth.RequireRole(user.RoleProvider, user.RoleAdmin)

	apiGroup := engine.Group("/api")
	{
		appointments := apiGroup.Group("/appointments")
		appointments.Use(h.Auth.RequireAuth())
		{
			addRoutes(appointments, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Appointment.Create},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Appointment.Get},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Appointment.Cancel},
				{Method: http.MethodPost, Path: "/:id/reschedule", Handler: h.Appointment.Reschedule},
			})
		}

		providers := apiGroup.Group("/providers/:providerId")
		{
			addRoutes(providers, []route{
				{Method: http.MethodGet, Path: "/slots", Handler: h.Provider.Slots},
				{Method: http.MethodGet, Path: "/availability", Handler: h.Schedule.ListAvailability},
				{Method: http.MethodGet, Path: "/holidays", Handler: h.Schedule.ListHolidays},
			})

			authRequired := providers.Group("")
			authRequired.Use(h.Auth.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodGet, Path: "/calendar", Handler: h.Provider.Calendar},
				{Method: http.MethodPost, Path: "/availability", Handler: h.Schedule.CreateAvailability, Mw: []gin.HandlerFunc{scheduleWriters}},
				{Method: http.MethodPatch, Path: "/availability/:id", Handler: h.Schedule.SetAvailabilityActive, Mw: []gin.HandlerFunc{scheduleWriters}},
				{Method: http.MethodPost, Path: "/holidays", Handler: h.Schedule.CreateHoliday, Mw: []gin.HandlerFunc{scheduleWriters}},
				{Method: http.MethodDelete, Path: "/holidays/:id", Handler: h.Schedule.DeleteHoliday, Mw: []gin.HandlerFunc{scheduleWriters}},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
