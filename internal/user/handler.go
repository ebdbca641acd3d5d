package user

import (
	"context"
	"net/http"

	"github.com/frahmantamala/bakery-hub/internal"
	"github.com/frahmantamala/bakery-hub/internal/transport"
)

type ServiceAPI interface {
	Me(ctx context.Context, actor *internal.User) (*Me, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     svc,
	}
}

// GetCurrentUser handles GET /users/me
func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := h.CurrentUser(w, r, "GetCurrentUser")
	if !ok {
		return
	}

	me, err := h.Service.Me(r.Context(), user)
	if err != nil {
		h.Logger.Error("GetCurrentUser: service Me failed", "user_id", user.ID, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Debug("GetCurrentUser: sending response", "user_id", user.ID, "bakeries", len(me.Bakeries))
	h.WriteJSON(w, http.StatusOK, me)
}
