package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONMessage(t *testing.T) {
	w := httptest.NewRecorder()

	JSONMessage(w, http.StatusOK, "Book deleted")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body MessageResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "Book deleted", body.Message)
}

func TestJSONErrors(t *testing.T) {
	w := httptest.NewRecorder()

	JSONErrors(w, http.StatusBadRequest, []map[string]string{{"field": "title", "message": "title is required"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Errors []map[string]string `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "title", body.Errors[0]["field"])
}

func TestJSONError_IncludesRequestID(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/books", nil)
	r = r.WithContext(ContextWithRequestID(r.Context(), "req-1"))

	JSONError(w, r, http.StatusInternalServerError, "Internal server error")

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, http.StatusInternalServerError, body.Error.Status)
	assert.Equal(t, "Internal server error", body.Error.Message)
	assert.Equal(t, "req-1", body.Error.RequestID)
}
