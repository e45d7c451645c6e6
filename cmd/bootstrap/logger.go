package bootstrap

import (
	"log/slog"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/handler/middleware"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/config"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
		NewSlogLogger,
	),
)

// NewLogger also installs the logger as the slog default.
func NewLogger(cfg config.Config) *middleware.Logger {
	return middleware.NewLogger(cfg.Log)
}

func NewSlogLogger(l *middleware.Logger) *slog.Logger {
	return l.GetSlogLogger()
}
