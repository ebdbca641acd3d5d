package category

import (
	"context"
	"net/http"

	"github.com/frahmantamala/bakery-hub/internal/transport"
)

type ServiceAPI interface {
	GetCatalog(ctx context.Context) (*CategoriesResponse, error)
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

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.CurrentUser(w, r, "GetCategories"); !ok {
		return
	}

	catalog, err := h.Service.GetCatalog(r.Context())
	if err != nil {
		h.Logger.Error("GetCategories: failed to get categories", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, catalog)
}
