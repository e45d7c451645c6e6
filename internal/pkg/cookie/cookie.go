package cookie

import (
	"net/http"
	"strings"
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

const (
	AccessTokenCookieName  = "access_token"
	RefreshTokenCookieName = "refresh_token"
)

var sameSiteModes = map[string]http.SameSite{
	"strict": http.SameSiteStrictMode,
	"lax":    http.SameSiteLaxMode,
	"none":   http.SameSiteNoneMode,
}

// SetTokenCookies stores both tokens as HttpOnly cookies living as long as the tokens do.
func SetTokenCookies(c *gin.Context, cfg config.CookieConfig, accessToken, refreshToken string, accessTTL, refreshTTL time.Duration) {
	write(c, cfg, AccessTokenCookieName, accessToken, int(accessTTL.Seconds()))
	write(c, cfg, RefreshTokenCookieName, refreshToken, int(refreshTTL.Seconds()))
}

// ClearTokenCookies expires both token cookies.
func ClearTokenCookies(c *gin.Context, cfg config.CookieConfig) {
	write(c, cfg, AccessTokenCookieName, "", -1)
	write(c, cfg, RefreshTokenCookieName, "", -1)
}

func GetAccessToken(c *gin.Context) string {
	return read(c, AccessTokenCookieName)
}

func GetRefreshToken(c *gin.Context) string {
	return read(c, RefreshTokenCookieName)
}

func write(c *gin.Context, cfg config.CookieConfig, name, value string, maxAge int) {
	mode, ok := sameSiteModes[strings.ToLower(cfg.SameSite)]
	if !ok {
		mode = http.SameSiteLaxMode
	}
	c.SetSameSite(mode)
	c.SetCookie(name, value, maxAge, "/", cfg.Domain, cfg.Secure, true)
}

func read(c *gin.Context, name string) string {
	v, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	return v
}
