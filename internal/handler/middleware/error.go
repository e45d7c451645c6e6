package middleware

import (
	"log/slog"
	"net/http"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders errors a handler recorded without writing a body.
// The newest public error wins; a private one is classified by its kind.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		last := c.Errors.Last()
		for i := len(c.Errors) - 1; i >= 0; i-- {
			if resp, ok := c.Errors[i].Meta.(httperr.Response); ok && c.Errors[i].IsType(gin.ErrorTypePublic) {
				c.JSON(resp.Status, resp)
				return
			}
		}

		status := httperr.StatusOf(last.Err)
		resp := httperr.Response{Status: status}
		resp.Error.Message = http.StatusText(status)
		if status < http.StatusInternalServerError {
			resp.Error.Message = last.Err.Error()
		}
		c.JSON(status, resp)
	}
}

// CustomRecovery turns a panic into a masked 500 and logs it with the
// request id so the stack can be matched to the access log.
func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				slog.ErrorContext(c.Request.Context(), "recovered from panic",
					slog.Any("panic", r),
					slog.String("request_id", GetRequestID(c)),
					slog.String("path", c.Request.URL.Path))

				resp := httperr.Response{Status: http.StatusInternalServerError}
				resp.Error.Message = "Internal server error"
				c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
			}
		}()
		c.Next()
	}
}
