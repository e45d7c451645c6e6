//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertSuccessResponse checks the status and, for 2xx with a non-nil
// target, decodes the body into it.
func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, wantStatus int, target any) {
	t.Helper()
	if !assert.Equal(t, wantStatus, w.Code, "body: %s", w.Body.String()) {
		return
	}
	if target == nil || wantStatus < 200 || wantStatus >= 300 {
		return
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), target), "body: %s", w.Body.String())
}

// AssertErrorResponse checks the status and that the body has the
// {"error":{"message":...}} shape, optionally containing wantMsg.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, wantStatus int, wantMsg string) {
	t.Helper()
	assert.Equal(t, wantStatus, w.Code, "body: %s", w.Body.String())

	var body struct {
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "body: %s", w.Body.String())
	require.NotNil(t, body.Error, "no error object in %s", w.Body.String())
	if wantMsg != "" {
		assert.Contains(t, body.Error.Message, wantMsg)
	}
}

func AssertHeaders(t *testing.T, w *httptest.ResponseRecorder, want map[string]string) {
	t.Helper()
	for k, v := range want {
		assert.Equal(t, v, w.Header().Get(k), "header %s", k)
	}
}
