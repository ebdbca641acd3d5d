package transport_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/bakery-hub/internal"
	"github.com/frahmantamala/bakery-hub/internal/transport"
)

var _ = Describe("BaseHandler", func() {
	var h *transport.BaseHandler

	BeforeEach(func() {
		h = transport.NewBaseHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	decode := func(w *httptest.ResponseRecorder) map[string]interface{} {
		var body map[string]interface{}
		Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
		return body
	}

	Describe("HandleServiceError", func() {
		DescribeTable("maps application errors to their status",
			func(err error, status int, code string) {
				w := httptest.NewRecorder()
				h.HandleServiceError(w, err)
				Expect(w.Code).To(Equal(status))
				Expect(decode(w)).To(HaveKeyWithValue("code", code))
			},
			Entry("unauthenticated", internal.ErrUnauthenticated, http.StatusUnauthorized, "UNAUTHENTICATED"),
			Entry("expired token", internal.ErrTokenExpired, http.StatusUnauthorized, "TOKEN_EXPIRED"),
			Entry("not a member", internal.ErrNotBakeryMember, http.StatusForbidden, "NOT_BAKERY_MEMBER"),
			Entry("manager required", internal.ErrManagerRequired, http.StatusForbidden, "MANAGER_ROLE_REQUIRED"),
			Entry("not found", internal.ErrExpenseNotFound, http.StatusNotFound, "EXPENSE_NOT_FOUND"),
			Entry("already decided", internal.ErrAlreadyDecided, http.StatusConflict, "EXPENSE_ALREADY_DECIDED"),
			Entry("bakery required", internal.ErrBakeryRequired, http.StatusBadRequest, "BAKERY_REQUIRED"),
		)

		It("joins field messages and lists the details", func() {
			err := internal.NewValidationError("Validation failed", internal.ErrCodeValidationFailed).
				WithDetails(internal.ValidationErrors{Errors: []internal.ValidationError{
					{Field: "amountGNF", Message: "amountGNF must be greater than 0", Code: "INVALID_AMOUNT"},
					{Field: "paymentMethod", Message: "paymentMethod is required", Code: "VALIDATION_FAILED"},
				}})

			w := httptest.NewRecorder()
			h.HandleServiceError(w, err)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			body := decode(w)
			Expect(body["error"]).To(Equal("amountGNF must be greater than 0; paymentMethod is required"))
			Expect(body["details"]).To(HaveLen(2))
		})

		It("never leaks internal error causes", func() {
			w := httptest.NewRecorder()
			h.HandleServiceError(w, internal.NewInternalError("failed to list expenses", errors.New("password authentication failed")))
			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			Expect(decode(w)).To(Equal(map[string]interface{}{"error": "Internal server error"}))
		})

		It("treats plain errors as internal", func() {
			w := httptest.NewRecorder()
			h.HandleServiceError(w, errors.New("boom"))
			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			Expect(w.Header().Get("Content-Type")).To(Equal("application/json"))
		})
	})

	Describe("DecodeJSON", func() {
		It("decodes a body", func() {
			var dst struct{ Name string }
			req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"Name":"pain"}`))
			Expect(h.DecodeJSON(req, &dst)).To(Succeed())
			Expect(dst.Name).To(Equal("pain"))
		})

		It("treats an empty body as the zero value", func() {
			var dst struct{ Name string }
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			Expect(h.DecodeJSON(req, &dst)).To(Succeed())
			Expect(dst.Name).To(BeEmpty())
		})

		It("reports malformed JSON as a validation error", func() {
			var dst struct{ Name string }
			req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"Name":`))
			err := h.DecodeJSON(req, &dst)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusBadRequest))
		})
	})

	DescribeTable("Pagination",
		func(query string, limit, offset int) {
			req := httptest.NewRequest(http.MethodGet, "/expenses"+query, nil)
			l, o := h.Pagination(req)
			Expect(l).To(Equal(limit))
			Expect(o).To(Equal(offset))
		},
		Entry("defaults", "", transport.DefaultPageLimit, 0),
		Entry("explicit", "?limit=50&offset=100", 50, 100),
		Entry("limit above the cap", "?limit=1000", transport.DefaultPageLimit, 0),
		Entry("garbage", "?limit=abc&offset=-4", transport.DefaultPageLimit, 0),
	)

	Describe("BakeryID", func() {
		It("prefers the query parameter, then the default bakery", func() {
			def := "b-default"
			user := &internal.User{ID: "u1", DefaultBakeryID: &def}

			Expect(h.BakeryID(httptest.NewRequest(http.MethodGet, "/?bakeryId=b-query", nil), user)).To(Equal("b-query"))
			Expect(h.BakeryID(httptest.NewRequest(http.MethodGet, "/", nil), user)).To(Equal("b-default"))
			Expect(h.BakeryID(httptest.NewRequest(http.MethodGet, "/", nil), &internal.User{ID: "u2"})).To(BeEmpty())
		})
	})

	DescribeTable("ExtractTokenFromHeader",
		func(header, token string) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			Expect(h.ExtractTokenFromHeader(req)).To(Equal(token))
		},
		Entry("bearer", "Bearer abc.def.ghi", "abc.def.ghi"),
		Entry("lowercase scheme", "bearer abc", "abc"),
		Entry("missing", "", ""),
		Entry("basic auth", "Basic dXNlcjpwYXNz", ""),
	)
})
