package bootstrap

import (
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/config"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/errs"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

const minReleaseSecretLen = 32

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.Config) (*jwt.Service, error) {
	access, err := time.ParseDuration(cfg.JWT.AccessTokenDuration)
	if err != nil {
		return nil, errs.Wrap(err, "invalid JWT_ACCESS_TOKEN_DURATION")
	}
	refresh, err := time.ParseDuration(cfg.JWT.RefreshTokenDuration)
	if err != nil {
		return nil, errs.Wrap(err, "invalid JWT_REFRESH_TOKEN_DURATION")
	}
	if refresh <= access {
		return nil, errs.New("JWT_REFRESH_TOKEN_DURATION must exceed JWT_ACCESS_TOKEN_DURATION")
	}
	if gin.Mode() == gin.ReleaseMode && len(cfg.JWT.Secret) < minReleaseSecretLen {
		return nil, errs.New("JWT_SECRET is too short for release mode")
	}

	return jwt.NewService(cfg.JWT.Secret, access, refresh), nil
}
