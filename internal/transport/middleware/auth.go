package middleware

import (
	"net/http"

	"github.com/frahmantamala/bakery-hub/internal"
	"github.com/frahmantamala/bakery-hub/internal/auth"
	"github.com/frahmantamala/bakery-hub/internal/transport"
	"github.com/frahmantamala/bakery-hub/pkg/logger"
)

// Authenticator resolves the bearer token of every request into the current user.
type Authenticator struct {
	*transport.BaseHandler
	Service auth.ServiceAPI
}

func NewAuthenticator(baseHandler *transport.BaseHandler, service auth.ServiceAPI) *Authenticator {
	return &Authenticator{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (a *Authenticator) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := a.ExtractTokenFromHeader(r)
		if token == "" {
			a.Logger.Warn("auth middleware: missing authorization token", "path", r.URL.Path)
			a.HandleServiceError(w, internal.ErrUnauthenticated)
			return
		}

		user, err := a.Service.Authenticate(r.Context(), token)
		if err != nil {
			a.Logger.Warn("auth middleware: authentication failed", "error", err, "path", r.URL.Path)
			a.HandleServiceError(w, err)
			return
		}

		ctx := internal.ContextWithUser(r.Context(), user)
		ctx = logger.With(ctx, "user_id", user.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
