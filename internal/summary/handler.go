package summary

import (
	"net/http"

	"github.com/frahmantamala/bakery-hub/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) ListDaily(w http.ResponseWriter, r *http.Request) {
	user, ok := h.CurrentUser(w, r, "ListDaily")
	if !ok {
		return
	}

	q := RangeQuery{
		BakeryID: h.BakeryID(r, user),
		From:     r.URL.Query().Get("from"),
		To:       r.URL.Query().Get("to"),
	}

	summaries, err := h.Service.ListDaily(r.Context(), user, q)
	if err != nil {
		h.Logger.Warn("ListDaily: service error", "error", err, "user_id", user.ID, "bakery_id", q.BakeryID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"summaries": summaries,
	})
}
