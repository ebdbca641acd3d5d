package supplier

import (
	"context"
	"net/http"

	"github.com/frahmantamala/bakery-hub/internal/transport"
)

type ServiceAPI interface {
	ListActive(ctx context.Context) ([]*Supplier, error)
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

func (h *Handler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.CurrentUser(w, r, "ListSuppliers"); !ok {
		return
	}

	suppliers, err := h.Service.ListActive(r.Context())
	if err != nil {
		h.Logger.Error("ListSuppliers: failed to list suppliers", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"suppliers": suppliers})
}
