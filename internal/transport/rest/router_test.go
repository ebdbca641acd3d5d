package rest_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/bakery-hub/api"
	"github.com/frahmantamala/bakery-hub/internal"
	"github.com/frahmantamala/bakery-hub/internal/category"
	"github.com/frahmantamala/bakery-hub/internal/expense"
	"github.com/frahmantamala/bakery-hub/internal/inventory"
	"github.com/frahmantamala/bakery-hub/internal/summary"
	"github.com/frahmantamala/bakery-hub/internal/supplier"
	"github.com/frahmantamala/bakery-hub/internal/transport"
	"github.com/frahmantamala/bakery-hub/internal/transport/middleware"
	"github.com/frahmantamala/bakery-hub/internal/transport/rest"
	"github.com/frahmantamala/bakery-hub/internal/user"
)

type rejectAll struct{}

func (rejectAll) Authenticate(context.Context, string) (*internal.User, error) {
	return nil, internal.ErrInvalidToken
}

var _ = Describe("Router", func() {
	var (
		db     *sqlx.DB
		router *chi.Mux
	)

	BeforeEach(func() {
		var err error
		db, err = sqlx.Open("sqlite3", ":memory:")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() { _ = db.Close() })

		lg := slog.New(slog.NewTextHandler(io.Discard, nil))
		base := transport.NewBaseHandler(lg)

		router = chi.NewRouter()
		rest.RegisterAllRoutes(router, db, rest.Handlers{
			Auth:      middleware.NewAuthenticator(base, rejectAll{}),
			User:      user.NewHandler(base, nil),
			Expense:   expense.NewHandler(base, nil),
			Category:  category.NewHandler(base, nil),
			Supplier:  supplier.NewHandler(base, nil),
			Inventory: inventory.NewHandler(base, nil),
			Summary:   summary.NewHandler(base, nil),
		}, rest.Options{OpenAPIDoc: api.Document}, lg)
	})

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	It("answers ping without authentication", func() {
		w := get("/api/ping")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"status":"OK"`))
		Expect(w.Header().Get("X-Request-Id")).NotTo(BeEmpty())
	})

	It("reports a healthy database with pool stats", func() {
		w := get("/api/health")
		Expect(w.Code).To(Equal(http.StatusOK))

		var resp rest.HealthResponse
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Status).To(Equal(rest.HealthHealthy))
		Expect(resp.Components).To(HaveKey("database"))
		Expect(resp.Components["database"].Details).To(HaveKey("open_connections"))
	})

	It("reports an unreachable database as 503", func() {
		Expect(db.Close()).To(Succeed())

		w := get("/api/health")
		Expect(w.Code).To(Equal(http.StatusServiceUnavailable))

		var resp rest.HealthResponse
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Status).To(Equal(rest.HealthUnhealthy))
		Expect(resp.Components["database"].Message).To(Equal("database unreachable"))
	})

	It("serves the API document", func() {
		w := get("/openapi.yml")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(Equal("application/yaml"))
		Expect(w.Body.String()).To(HavePrefix("openapi:"))
	})

	DescribeTable("guards every business route",
		func(method, path string) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(method, path, strings.NewReader(`{}`)))
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		},
		Entry(nil, http.MethodGet, "/api/users/me"),
		Entry(nil, http.MethodGet, "/api/categories"),
		Entry(nil, http.MethodGet, "/api/suppliers"),
		Entry(nil, http.MethodGet, "/api/expenses"),
		Entry(nil, http.MethodPost, "/api/expenses"),
		Entry(nil, http.MethodGet, "/api/expenses/e1"),
		Entry(nil, http.MethodPut, "/api/expenses/e1"),
		Entry(nil, http.MethodPost, "/api/expenses/e1/approve"),
		Entry(nil, http.MethodGet, "/api/expenses/e1/history"),
		Entry(nil, http.MethodGet, "/api/summaries/daily"),
		Entry(nil, http.MethodGet, "/api/inventory"),
		Entry(nil, http.MethodGet, "/api/inventory/i1"),
		Entry(nil, http.MethodPost, "/api/inventory/i1/movements"),
	)

	It("documents every mounted API route", func() {
		doc, err := api.Load(context.Background())
		Expect(err).NotTo(HaveOccurred())

		walkErr := chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
			if !strings.HasPrefix(route, "/api/") {
				return nil
			}
			path := strings.TrimSuffix(strings.TrimPrefix(route, "/api"), "/")
			item := doc.Paths.Value(path)
			Expect(item).NotTo(BeNil(), "undocumented path %s", path)
			Expect(item.GetOperation(method)).NotTo(BeNil(), "undocumented %s %s", method, path)
			return nil
		})
		Expect(walkErr).NotTo(HaveOccurred())
	})
})
