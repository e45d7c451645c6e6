//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/user"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/config"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Tokens mints tokens for a user directly, skipping the login endpoint.
type Tokens struct {
	cfg config.JWTConfig
}

func NewTokens(cfg config.JWTConfig) *Tokens {
	return &Tokens{cfg: cfg}
}

func (tk *Tokens) Access(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	token, err := tk.service(t, tk.cfg.Secret, 0).GenerateAccessToken(userID, role)
	require.NoError(t, err)
	return token
}

func (tk *Tokens) Refresh(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	token, err := tk.service(t, tk.cfg.Secret, 0).GenerateRefreshToken(userID, role)
	require.NoError(t, err)
	return token
}

// Expired returns an access token whose expiry is already in the past.
func (tk *Tokens) Expired(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	token, err := tk.service(t, tk.cfg.Secret, -time.Minute).GenerateAccessToken(userID, role)
	require.NoError(t, err)
	return token
}

// Forged returns an access token signed with a key the server does not hold.
func (tk *Tokens) Forged(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	token, err := tk.service(t, tk.cfg.Secret+"-forged", 0).GenerateAccessToken(userID, role)
	require.NoError(t, err)
	return token
}

// service builds a signer; a non-zero accessTTL overrides the configured one.
func (tk *Tokens) service(t *testing.T, secret string, accessTTL time.Duration) *jwt.Service {
	t.Helper()
	refreshTTL, err := time.ParseDuration(tk.cfg.RefreshTokenDuration)
	require.NoError(t, err)
	if accessTTL == 0 {
		accessTTL, err = time.ParseDuration(tk.cfg.AccessTokenDuration)
		require.NoError(t, err)
	}
	return jwt.NewService(secret, accessTTL, refreshTTL)
}
