package middleware

import (
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/frahmantamala/bakery-hub/pkg/logger"
)

// RequestLogger runs after chi's RequestID and copies the id into the context
// logger and the response headers.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := middleware.GetReqID(r.Context())
		if reqID == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := logger.With(r.Context(), "request_id", reqID)
		w.Header().Set(middleware.RequestIDHeader, reqID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
