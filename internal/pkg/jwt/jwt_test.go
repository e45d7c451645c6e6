//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/user"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/errs"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/jwt"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService(t *testing.T) {
	svc := jwt.NewService("secret", 15*time.Minute, time.Hour)
	userID := uuid.New()

	t.Run("access token round trip", func(t *testing.T) {
		token, err := svc.GenerateAccessToken(userID, user.RoleParkingOwner)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, "parking_owner", claims.Role)
		assert.Equal(t, jwt.TokenTypeAccess, claims.TokenType)
	})

	t.Run("refresh token carries refresh type", func(t *testing.T) {
		token, err := svc.GenerateRefreshToken(userID, user.RoleUser)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, jwt.TokenTypeRefresh, claims.TokenType)
	})

	t.Run("token signed with another key is rejected", func(t *testing.T) {
		other := jwt.NewService("other", time.Minute, time.Minute)
		token, err := other.GenerateAccessToken(userID, user.RoleAdmin)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.True(t, errs.Is(err, jwt.ErrInvalidToken))
	})

	t.Run("expired token is reported as expired", func(t *testing.T) {
		expired := jwt.NewService("secret", -time.Minute, time.Minute)
		token, err := expired.GenerateAccessToken(userID, user.RoleStaff)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		require.True(t, errs.Is(err, jwt.ErrInvalidToken))
	})
}

func TestService_RejectsForeignTokens(t *testing.T) {
	svc := jwt.NewService("secret", 15*time.Minute, time.Hour)
	userID := uuid.New()
	now := time.Now()

	sign := func(method gojwt.SigningMethod, key any, claims jwt.Claims) string {
		t.Helper()
		s, err := gojwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}
	valid := func(mutate func(*jwt.Claims)) jwt.Claims {
		c := jwt.Claims{
			UserID:    userID,
			Role:      "user",
			TokenType: jwt.TokenTypeAccess,
			RegisteredClaims: gojwt.RegisteredClaims{
				Issuer:    jwt.Issuer,
				IssuedAt:  gojwt.NewNumericDate(now),
				ExpiresAt: gojwt.NewNumericDate(now.Add(time.Minute)),
			},
		}
		mutate(&c)
		return c
	}

	otherIssuer := valid(func(c *jwt.Claims) { c.Issuer = "someone-else" })
	noExpiry := valid(func(c *jwt.Claims) { c.ExpiresAt = nil })
	noUser := valid(func(c *jwt.Claims) { c.UserID = uuid.Nil })

	tests := map[string]string{
		"unsigned":     sign(gojwt.SigningMethodNone, gojwt.UnsafeAllowNoneSignatureType, valid(func(*jwt.Claims) {})),
		"HS512":        sign(gojwt.SigningMethodHS512, []byte("secret"), valid(func(*jwt.Claims) {})),
		"other issuer": sign(gojwt.SigningMethodHS256, []byte("secret"), otherIssuer),
		"no expiry":    sign(gojwt.SigningMethodHS256, []byte("secret"), noExpiry),
		"no user":      sign(gojwt.SigningMethodHS256, []byte("secret"), noUser),
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ValidateToken(token)
			assert.True(t, errs.Is(err, jwt.ErrInvalidToken))
		})
	}
}
