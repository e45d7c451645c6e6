package bootstrap

import (
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/config"

	"go.uber.org/fx"
)

// ConfigModule loads the environment once; every other module takes
// config.Config and reads its own section.
var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
)
