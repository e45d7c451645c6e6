package middleware

import (
	"log/slog"
	"slices"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// headers browser clients need for idempotent booking retries, whatever
// the deployment configures
var (
	requiredAllowHeaders  = []string{"Authorization", "Content-Type", "Idempotency-Key", RequestIDHeader}
	requiredExposeHeaders = []string{"Idempotent-Replayed", "Retry-After", RequestIDHeader}
)

func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     mergeHeaders(cfg.AllowHeaders, requiredAllowHeaders),
		ExposeHeaders:    mergeHeaders(cfg.ExposeHeaders, requiredExposeHeaders),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	slog.Info("CORS middleware initialized",
		slog.Any("allow_origins", corsCfg.AllowOrigins),
		slog.Any("expose_headers", corsCfg.ExposeHeaders))
	return cors.New(corsCfg)
}

func mergeHeaders(configured, required []string) []string {
	out := slices.Clone(configured)
	for _, h := range required {
		if !slices.Contains(out, h) {
			out = append(out, h)
		}
	}
	return out
}
