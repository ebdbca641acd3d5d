package transport

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/frahmantamala/bakery-hub/internal"
	"github.com/frahmantamala/bakery-hub/pkg/logger"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

type ErrorResponse struct {
	Error   string                     `json:"error"`
	Code    internal.ErrorCode         `json:"code,omitempty"`
	Details []internal.ValidationError `json:"details,omitempty"`
}

// WriteError writes an error response
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	h.writeError(w, status, ErrorResponse{Error: message})
}

func (h *BaseHandler) writeError(w http.ResponseWriter, status int, resp ErrorResponse) {
	if status >= http.StatusInternalServerError {
		h.Logger.Error("http error", "status", status, "message", resp.Error)
	} else {
		h.Logger.Debug("http error", "status", status, "message", resp.Error)
	}
	h.WriteJSON(w, status, resp)
}

// HandleServiceError maps service errors to HTTP responses. Anything that is not an
// *internal.AppError, and every internal error, becomes a generic 500.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, err error) {
	appErr, ok := internal.IsAppError(err)
	if !ok || appErr.StatusCode == 0 || appErr.StatusCode >= http.StatusInternalServerError {
		h.Logger.Error("unexpected service error", "error", err)
		h.writeError(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	resp := ErrorResponse{
		Error: appErr.GetDetailedMessage(),
		Code:  appErr.Code,
	}
	if details, ok := appErr.Details.(internal.ValidationErrors); ok {
		resp.Details = details.Errors
	}

	h.writeError(w, appErr.StatusCode, resp)
}

// DecodeJSON reads a JSON body. An empty body decodes to the zero value.
func (h *BaseHandler) DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return internal.NewValidationError("Invalid request body", internal.ErrCodeValidationFailed).WithCause(err)
	}
	return nil
}

// Pagination reads limit and offset, falling back to defaults on bad input.
func (h *BaseHandler) Pagination(r *http.Request) (limit, offset int) {
	limit = DefaultPageLimit
	offset = 0

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= MaxPageLimit {
			limit = l
		}
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	return limit, offset
}

// Log returns the handler logger carrying the request's context fields.
func (h *BaseHandler) Log(r *http.Request) *slog.Logger {
	return logger.FromBase(r.Context(), h.Logger)
}

// CurrentUser returns the authenticated caller or writes a 401.
func (h *BaseHandler) CurrentUser(w http.ResponseWriter, r *http.Request, op string) (*internal.User, bool) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.Log(r).Warn(op + ": user not found in context")
		h.HandleServiceError(w, internal.ErrUnauthenticated)
		return nil, false
	}
	return user, true
}

// BakeryID reads the bakeryId query parameter, defaulting to the caller's default bakery.
func (h *BaseHandler) BakeryID(r *http.Request, user *internal.User) string {
	if id := strings.TrimSpace(r.URL.Query().Get("bakeryId")); id != "" {
		return id
	}
	if user != nil && user.DefaultBakeryID != nil {
		return *user.DefaultBakeryID
	}
	return ""
}

// ExtractTokenFromHeader extracts Bearer token from Authorization header
func (h *BaseHandler) ExtractTokenFromHeader(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	if len(authHeader) < 7 || !strings.EqualFold(authHeader[:7], "Bearer ") {
		return ""
	}

	return strings.TrimSpace(authHeader[7:])
}
