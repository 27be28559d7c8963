package components

import (
	"log/slog"

	"appointment-scheduler/internal/handler"
	"appointment-scheduler/internal/handler/api"
	"appointment-scheduler/internal/handler/middleware"
	"appointment-scheduler/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAppointmentHandler,
		api.NewProviderHandler,
		api.NewScheduleHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(registerRoutes),
)

type routeParams struct {
	fx.In

	Engine      *gin.Engine
	Config      config.Config
	Logger      *slog.Logger
	Appointment *api.AppointmentHandler
	Provider    *api.ProviderHandler
	Schedule    *api.ScheduleHandler
	Auth        *middleware.AuthMiddleware
	RateLimiter middleware.RateLimiter `optional:"true"`
}

func registerRoutes(p routeParams) {
	handler.NewRouter(p.Engine, p.Config, p.Logger, handler.Handlers{
		Appointment: p.Appointment,
		Provider:    p.Provider,
		Schedule:    p.Schedule,
		Auth:        p.Auth,
		RateLimiter: p.RateLimiter,
	})
}
