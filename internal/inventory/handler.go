package inventory

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/bakery-hub/internal"
	"github.com/frahmantamala/bakery-hub/internal/transport"
)

type ServiceAPI interface {
	ListItems(ctx context.Context, actor *internal.User, bakeryID string) ([]*Item, error)
	GetItem(ctx context.Context, actor *internal.User, id string) (*ItemDetail, error)
	RecordMovement(ctx context.Context, actor *internal.User, itemID string, dto RecordMovementDTO) (*Movement, *Item, error)
}

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

func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	user, ok := h.CurrentUser(w, r, "ListItems")
	if !ok {
		return
	}

	bakeryID := h.BakeryID(r, user)
	items, err := h.Service.ListItems(r.Context(), user, bakeryID)
	if err != nil {
		h.Logger.Warn("ListItems: service error", "error", err, "user_id", user.ID, "bakery_id", bakeryID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	user, ok := h.CurrentUser(w, r, "GetItem")
	if !ok {
		return
	}

	itemID := chi.URLParam(r, "id")
	detail, err := h.Service.GetItem(r.Context(), user, itemID)
	if err != nil {
		h.Logger.Warn("GetItem: service error", "error", err, "item_id", itemID, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, detail)
}

func (h *Handler) RecordMovement(w http.ResponseWriter, r *http.Request) {
	user, ok := h.CurrentUser(w, r, "RecordMovement")
	if !ok {
		return
	}

	itemID := chi.URLParam(r, "id")

	var dto RecordMovementDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Warn("RecordMovement: invalid request body", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	movement, item, err := h.Service.RecordMovement(r.Context(), user, itemID, dto)
	if err != nil {
		h.Logger.Warn("RecordMovement: service error", "error", err, "item_id", itemID, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"movement": movement,
		"item":     item,
	})
}
