// Package testutil holds HTTP helpers shared by handler and router tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// NewRequest creates a JSON request for testing. A string body is sent
// verbatim so tests can submit malformed JSON; anything else is marshalled.
func NewRequest(t testing.TB, method, path string, body interface{}) *http.Request {
	t.Helper()

	var r *http.Request
	switch b := body.(type) {
	case nil:
		r = httptest.NewRequest(method, path, nil)
	case string:
		r = httptest.NewRequest(method, path, bytes.NewBufferString(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		r = httptest.NewRequest(method, path, bytes.NewReader(raw))
	}
	r.Header.Set("Content-Type", "application/json")
	return r
}

// Serve runs the request through h and returns the recorded response.
func Serve(t testing.TB, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, NewRequest(t, method, path, body))
	return w
}

// DecodeJSON decodes a JSON response body into v. Non-JSON responses, such
// as the mux's plain-text 404 and 405, leave v untouched.
func DecodeJSON(t testing.TB, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if w.Body.Len() == 0 || w.Header().Get("Content-Type") != "application/json" {
		return
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}
