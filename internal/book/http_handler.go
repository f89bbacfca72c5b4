package book

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"bookshelf/internal/httpx"

	"go.uber.org/zap"
)

const msgISBNNotAllowed = "Not allowed"

type HTTPHandler struct {
	service *Service
	logger  *zap.Logger
}

func NewHTTPHandler(service *Service, logger *zap.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, logger: logger}
}

// Register mounts the book routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /books", h.List)
	mux.HandleFunc("POST /books", h.Create)
	mux.HandleFunc("GET /books/{isbn}", h.Get)
	mux.HandleFunc("PUT /books/{isbn}", h.Update)
	mux.HandleFunc("DELETE /books/{isbn}", h.Delete)
}

// List handles GET /books
// @Summary List books
// @Tags books
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"books": books})
}

// Get handles GET /books/{isbn}
// @Summary Get book by ISBN
// @Tags books
// @Produce json
// @Param isbn path string true "Book ISBN"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books/{isbn} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	isbn := r.PathValue("isbn")
	if isbn == "" {
		http.NotFound(w, r)
		return
	}

	book, err := h.service.Get(r.Context(), isbn)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"book": book})
}

// Create handles POST /books
// @Summary Create a book
// @Tags books
// @Accept json
// @Produce json
// @Param book body Book true "Book record"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} httpx.ErrorsResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /books [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeBodyError(w, r, err)
		return
	}

	var in Book
	if err := json.Unmarshal(body, &in); err != nil {
		h.writeBodyError(w, r, err)
		return
	}

	book, err := h.service.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"book": book})
}

// Update handles PUT /books/{isbn}. The ISBN may only come from the path.
// @Summary Update a book
// @Tags books
// @Accept json
// @Produce json
// @Param isbn path string true "Book ISBN"
// @Param patch body Patch true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} httpx.ErrorsResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{isbn} [put]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	isbn := r.PathValue("isbn")
	if isbn == "" {
		http.NotFound(w, r)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeBodyError(w, r, err)
		return
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		h.writeBodyError(w, r, err)
		return
	}
	if _, ok := fields["isbn"]; ok {
		httpx.JSONMessage(w, http.StatusBadRequest, msgISBNNotAllowed)
		return
	}

	var patch Patch
	if err := json.Unmarshal(body, &patch); err != nil {
		h.writeBodyError(w, r, err)
		return
	}

	book, err := h.service.Update(r.Context(), isbn, patch)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"book": book})
}

// Delete handles DELETE /books/{isbn}
// @Summary Delete a book
// @Tags books
// @Produce json
// @Param isbn path string true "Book ISBN"
// @Success 200 {object} httpx.MessageResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books/{isbn} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	isbn := r.PathValue("isbn")
	if isbn == "" {
		http.NotFound(w, r)
		return
	}

	if err := h.service.Delete(r.Context(), isbn); err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONMessage(w, http.StatusOK, "Book deleted")
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs ValidationErrors
	switch {
	case errors.As(err, &verrs):
		httpx.JSONErrors(w, http.StatusBadRequest, verrs)
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "Book not found")
	case errors.Is(err, ErrAlreadyExists):
		httpx.JSONError(w, r, http.StatusConflict, "Book already exists")
	default:
		h.logger.Error("book store failure",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", httpx.RequestIDFrom(r)),
			zap.Error(err),
		)
		httpx.JSONError(w, r, http.StatusInternalServerError, "Internal server error")
	}
}

// writeBodyError reports a request body that could not be read or decoded.
func (h *HTTPHandler) writeBodyError(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		httpx.JSONError(w, r, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}

	fe := FieldError{Field: "body", Message: "body must be a JSON object"}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		fe = FieldError{Field: typeErr.Field, Message: typeErr.Field + " has the wrong type"}
	}
	httpx.JSONErrors(w, http.StatusBadRequest, ValidationErrors{fe})
}
