package httperr

import (
	"log/slog"
	"net/http"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

type kindStatus struct {
	kind   error
	status int
}

// Order matters: a fault or timeout wins over whatever else the chain carries.
var kindStatuses = []kindStatus{
	{errs.ErrConsistencyFault, http.StatusInternalServerError},
	{errs.ErrRetryableTimeout, http.StatusServiceUnavailable},
	{errs.ErrValidation, http.StatusBadRequest},
	{errs.ErrTypeMismatch, http.StatusBadRequest},
	{errs.ErrForbidden, http.StatusForbidden},
	{errs.ErrNotFound, http.StatusNotFound},
	{errs.ErrConflict, http.StatusConflict},
	{errs.ErrNoCapacity, http.StatusConflict},
	{errs.ErrInvalidState, http.StatusConflict},
	{errs.ErrIdempotencyInProgress, http.StatusConflict},
	{errs.ErrIdempotencyMismatch, http.StatusConflict},
	{errs.ErrPolicyWindowExpired, http.StatusUnprocessableEntity},
	{errs.ErrUnverified, http.StatusUnprocessableEntity},
}

// StatusOf maps an error kind to its HTTP status. Unclassified errors are 500.
func StatusOf(err error) int {
	for _, ks := range kindStatuses {
		if errs.Is(err, ks.kind) {
			return ks.status
		}
	}
	return http.StatusInternalServerError
}

// Abort renders a use-case error with the status its kind maps to.
func Abort(c *gin.Context, err error) {
	status := StatusOf(err)
	msg := err.Error()

	switch {
	case errs.Is(err, errs.ErrConsistencyFault):
		slog.ErrorContext(c.Request.Context(), "inventory consistency fault",
			slog.Bool("alert", true),
			slog.String("path", c.Request.URL.Path),
			slog.String("error", err.Error()),
			slog.Any("stack", errs.ExtractStackLines(err, 20)))
		msg = "Internal server error"
	case status == http.StatusServiceUnavailable:
		c.Header("Retry-After", "1")
	case status == http.StatusInternalServerError:
		msg = "Internal server error"
	}

	AbortWithError(c, status, err, msg, nil)
}
