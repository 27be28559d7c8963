package middleware

import (
	"log/slog"
	"strings"

	"appointment-scheduler/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// bookingHeaders are always exposed so browser clients can follow a 201 and back off on 503/429.
var bookingHeaders = []string{"Location", "Retry-After", "X-Request-ID"}

func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	expose := append([]string{}, cfg.ExposeHeaders...)
	for _, h := range bookingHeaders {
		if !containsFold(expose, h) {
			expose = append(expose, h)
		}
	}

	slog.Info("cors enabled", "origins", cfg.AllowOrigins, "expose", expose)
	return cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    expose,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
}

func containsFold(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}
