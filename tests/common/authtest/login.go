//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/handler/dto/request"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/handler/dto/response"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/cookie"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/tests/common/dbtest"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// LoginUser logs in through the API and returns the access token. The body
// and the cookie must carry the same token.
func LoginUser(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/login",
		request.LoginRequest{Email: email, Password: password}, "")
	var res response.LoginResponse
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
	require.NotEmpty(t, res.AccessToken)

	c := httptest.ExtractCookie(w, cookie.AccessTokenCookieName)
	require.NotNil(t, c, "no %s cookie", cookie.AccessTokenCookieName)
	require.Equal(t, res.AccessToken, c.Value)
	return res.AccessToken
}

// CreateAndLogin inserts a fixture user with the given role and logs in as it.
func CreateAndLogin(t *testing.T, db dbtest.DBLike, router *gin.Engine, email, role string) string {
	t.Helper()
	dbtest.CreateTestUser(t, db, email, role)
	return LoginUser(t, router, email, dbtest.FixturePassword)
}
