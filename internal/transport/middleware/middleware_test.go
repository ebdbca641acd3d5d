package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	chimw "github.com/go-chi/chi/middleware"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/bakery-hub/internal/transport/middleware"
)

func jsonLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func logLines(buf *bytes.Buffer) []map[string]interface{} {
	lines := []map[string]interface{}{}
	for _, raw := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if raw == "" {
			continue
		}
		var line map[string]interface{}
		Expect(json.Unmarshal([]byte(raw), &line)).To(Succeed())
		lines = append(lines, line)
	}
	return lines
}

var _ = Describe("RecoveryMiddleware", func() {
	It("answers a panic with a generic 500 and logs the stack", func() {
		var buf bytes.Buffer
		handler := chimw.RequestID(middleware.RecoveryMiddleware(jsonLogger(&buf))(
			http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				panic("nil map write in secret code")
			}),
		))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(w.Body.String()).To(Equal(`{"error":"Internal server error"}`))
		Expect(w.Body.String()).NotTo(ContainSubstring("secret"))

		lines := logLines(&buf)
		Expect(lines).To(HaveLen(1))
		Expect(lines[0]["msg"]).To(Equal("panic recovered"))
		Expect(lines[0]["request_id"]).NotTo(BeEmpty())
		Expect(lines[0]["stack"]).To(ContainSubstring("goroutine"))
	})

	It("lets an aborted handler propagate", func() {
		var buf bytes.Buffer
		handler := middleware.RecoveryMiddleware(jsonLogger(&buf))(
			http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				panic(http.ErrAbortHandler)
			}),
		)

		Expect(func() {
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		}).To(PanicWith(http.ErrAbortHandler))
	})
})

var _ = Describe("RequestLogger", func() {
	It("echoes chi's request id in the response", func() {
		handler := chimw.RequestID(middleware.RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(chimw.RequestIDHeader, "req-42")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		Expect(w.Header().Get(chimw.RequestIDHeader)).To(Equal("req-42"))
	})
})

var _ = Describe("CORS", func() {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	It("answers preflight requests without reaching the handler", func() {
		reached := false
		handler := middleware.CORS("")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reached = true
		}))

		req := httptest.NewRequest(http.MethodOptions, "/api/expenses", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusNoContent))
		Expect(reached).To(BeFalse())
		Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("*"))
		Expect(w.Header().Get("Access-Control-Allow-Headers")).To(ContainSubstring("Authorization"))
	})

	It("echoes only configured origins", func() {
		handler := middleware.CORS("https://app.bakery.gn, https://admin.bakery.gn")(next)

		allowed := httptest.NewRequest(http.MethodGet, "/", nil)
		allowed.Header.Set("Origin", "https://admin.bakery.gn")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, allowed)
		Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("https://admin.bakery.gn"))

		denied := httptest.NewRequest(http.MethodGet, "/", nil)
		denied.Header.Set("Origin", "https://evil.example")
		w = httptest.NewRecorder()
		handler.ServeHTTP(w, denied)
		Expect(w.Header().Get("Access-Control-Allow-Origin")).To(BeEmpty())
		Expect(w.Code).To(Equal(http.StatusOK))
	})
})

var _ = Describe("LoggingMiddleware", func() {
	It("masks credentials in headers and bodies", func() {
		var buf bytes.Buffer
		handler := middleware.LoggingMiddleware(jsonLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"token":"issued-token","user":{"id":"u1"}}`))
		}))

		req := httptest.NewRequest(http.MethodPost, "/api/expenses", bytes.NewBufferString(`{"amountGNF":1000,"password":"hunter2"}`))
		req.Header.Set("Authorization", "Bearer very-secret")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(buf.String()).NotTo(ContainSubstring("hunter2"))
		Expect(buf.String()).NotTo(ContainSubstring("very-secret"))
		Expect(buf.String()).NotTo(ContainSubstring("issued-token"))

		lines := logLines(&buf)
		Expect(lines).To(HaveLen(2))
		Expect(lines[0]["msg"]).To(Equal("incoming request"))
		Expect(lines[0]["body"]).To(ContainSubstring(`"amountGNF":1000`))
		Expect(lines[1]["msg"]).To(Equal("response"))
		Expect(lines[1]["status_code"]).To(BeNumerically("==", 201))
	})

	It("logs client errors at warn level", func() {
		var buf bytes.Buffer
		handler := middleware.LoggingMiddleware(jsonLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		lines := logLines(&buf)
		Expect(lines[1]["level"]).To(Equal("WARN"))
	})

	It("keeps the request body readable for the handler", func() {
		var buf bytes.Buffer
		var seen string
		handler := middleware.LoggingMiddleware(jsonLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b := new(bytes.Buffer)
			_, _ = b.ReadFrom(r.Body)
			seen = b.String()
		}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"action":"approve"}`)))
		Expect(seen).To(Equal(`{"action":"approve"}`))
	})
})
