package httpx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r)
	}))

	t.Run("propagates caller id", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/books", nil)
		r.Header.Set("X-Request-Id", "abc-123")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		assert.Equal(t, "abc-123", seen)
		assert.Equal(t, "abc-123", w.Header().Get("X-Request-Id"))
	})

	t.Run("generates id when missing", func(t *testing.T) {
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books", nil))

		_, err := uuid.Parse(seen)
		assert.NoError(t, err)
		assert.Equal(t, seen, w.Header().Get("X-Request-Id"))
	})

	t.Run("replaces oversized id", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/books", nil)
		r.Header.Set("X-Request-Id", strings.Repeat("x", 200))

		handler.ServeHTTP(httptest.NewRecorder(), r)

		assert.Len(t, seen, 36)
	})
}
