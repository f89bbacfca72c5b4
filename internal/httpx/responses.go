package httpx

import (
	"encoding/json"
	"net/http"
)

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorsResponse struct {
	Errors interface{} `json:"errors"`
}

// JSON writes v as the response body with the given status code.
func JSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONMessage writes {"message": message}.
func JSONMessage(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, MessageResponse{Message: message})
}

// JSONErrors writes {"errors": errs}, used for field validation failures.
func JSONErrors(w http.ResponseWriter, statusCode int, errs interface{}) {
	JSON(w, statusCode, ErrorsResponse{Errors: errs})
}

// JSONError writes {"error": {...}} tagged with the request ID, if any.
func JSONError(w http.ResponseWriter, r *http.Request, statusCode int, message string) {
	JSON(w, statusCode, ErrorResponse{
		Error: ErrorBody{
			Status:    statusCode,
			Message:   message,
			RequestID: RequestIDFrom(r),
		},
	})
}
