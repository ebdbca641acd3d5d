package middleware_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/bakery-hub/internal"
	"github.com/frahmantamala/bakery-hub/internal/transport"
	"github.com/frahmantamala/bakery-hub/internal/transport/middleware"
)

type stubAuthService struct {
	users map[string]*internal.User
	err   error
}

func (s *stubAuthService) Authenticate(_ context.Context, token string) (*internal.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	user, ok := s.users[token]
	if !ok {
		return nil, internal.ErrInvalidToken
	}
	return user, nil
}

var _ = Describe("AuthMiddleware", func() {
	var (
		svc      *stubAuthService
		handler  http.Handler
		resolved *internal.User
	)

	BeforeEach(func() {
		resolved = nil
		svc = &stubAuthService{users: map[string]*internal.User{
			"good-token": {ID: "u1", Role: "Manager"},
		}}
		authn := middleware.NewAuthenticator(transport.NewBaseHandler(slog.New(slog.NewTextHandler(io.Discard, nil))), svc)
		handler = authn.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			resolved, _ = internal.UserFromContext(r.Context())
			w.WriteHeader(http.StatusNoContent)
		}))
	})

	serve := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/expenses", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	It("puts the resolved user in the request context", func() {
		w := serve("Bearer good-token")
		Expect(w.Code).To(Equal(http.StatusNoContent))
		Expect(resolved).NotTo(BeNil())
		Expect(resolved.ID).To(Equal("u1"))
	})

	It("rejects a request without a token", func() {
		w := serve("")
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(w.Body.String()).To(ContainSubstring("UNAUTHENTICATED"))
		Expect(resolved).To(BeNil())
	})

	It("rejects an invalid token", func() {
		w := serve("Bearer forged")
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(w.Body.String()).To(ContainSubstring("INVALID_TOKEN"))
	})

	It("reports an expired token", func() {
		svc.err = internal.ErrTokenExpired
		w := serve("Bearer good-token")
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(w.Body.String()).To(ContainSubstring("TOKEN_EXPIRED"))
	})
})
