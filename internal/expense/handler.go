package expense

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/bakery-hub/internal"
	"github.com/frahmantamala/bakery-hub/internal/audit"
	"github.com/frahmantamala/bakery-hub/internal/transport"
)

type ServiceAPI interface {
	Submit(ctx context.Context, actor *internal.User, dto SubmitExpenseDTO) (*Expense, error)
	Get(ctx context.Context, actor *internal.User, id string) (*Expense, error)
	List(ctx context.Context, actor *internal.User, q ListExpensesQuery) ([]*Expense, error)
	Edit(ctx context.Context, actor *internal.User, id string, dto UpdateExpenseDTO) (*Expense, error)
	Decide(ctx context.Context, actor *internal.User, id string, dto DecideExpenseDTO) (*Expense, error)
	History(ctx context.Context, actor *internal.User, id string) ([]*audit.Event, error)
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

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := h.CurrentUser(w, r, "CreateExpense")
	if !ok {
		return
	}

	var dto SubmitExpenseDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Warn("CreateExpense: invalid request body", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	expense, err := h.Service.Submit(r.Context(), user, dto)
	if err != nil {
		h.Logger.Warn("CreateExpense: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateExpense: expense created successfully",
		"expense_id", expense.ID,
		"user_id", user.ID,
		"amount_gnf", expense.AmountGNF,
		"status", expense.Status)

	h.WriteJSON(w, http.StatusCreated, map[string]interface{}{"expense": expense})
}

func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	user, ok := h.CurrentUser(w, r, "ListExpenses")
	if !ok {
		return
	}

	limit, offset := h.Pagination(r)
	q := ListExpensesQuery{
		BakeryID: h.BakeryID(r, user),
		Status:   r.URL.Query().Get("status"),
		Limit:    limit,
		Offset:   offset,
	}

	expenses, err := h.Service.List(r.Context(), user, q)
	if err != nil {
		h.Logger.Warn("ListExpenses: service error", "error", err, "user_id", user.ID, "bakery_id", q.BakeryID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"expenses": expenses,
		"limit":    limit,
		"offset":   offset,
	})
}

func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := h.CurrentUser(w, r, "GetExpense")
	if !ok {
		return
	}

	expenseID := chi.URLParam(r, "id")
	expense, err := h.Service.Get(r.Context(), user, expenseID)
	if err != nil {
		h.Logger.Warn("GetExpense: service error", "error", err, "expense_id", expenseID, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"expense": expense})
}

func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := h.CurrentUser(w, r, "UpdateExpense")
	if !ok {
		return
	}

	expenseID := chi.URLParam(r, "id")

	var dto UpdateExpenseDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Warn("UpdateExpense: invalid request body", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	expense, err := h.Service.Edit(r.Context(), user, expenseID, dto)
	if err != nil {
		h.Logger.Warn("UpdateExpense: service error", "error", err, "expense_id", expenseID, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("UpdateExpense: expense updated successfully", "expense_id", expenseID, "user_id", user.ID)
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"expense": expense})
}

func (h *Handler) DecideExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := h.CurrentUser(w, r, "DecideExpense")
	if !ok {
		return
	}

	expenseID := chi.URLParam(r, "id")

	var dto DecideExpenseDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Warn("DecideExpense: invalid request body", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	expense, err := h.Service.Decide(r.Context(), user, expenseID, dto)
	if err != nil {
		h.Logger.Warn("DecideExpense: service error", "error", err, "expense_id", expenseID, "manager_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	verb := "approved"
	if expense.Status == StatusRejected {
		verb = "rejected"
	}

	h.Logger.Info("DecideExpense: expense "+verb+" successfully", "expense_id", expenseID, "manager_id", user.ID)
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"expense": expense,
		"message": "Expense " + verb + " successfully",
	})
}

func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := h.CurrentUser(w, r, "GetHistory")
	if !ok {
		return
	}

	expenseID := chi.URLParam(r, "id")
	history, err := h.Service.History(r.Context(), user, expenseID)
	if err != nil {
		h.Logger.Warn("GetHistory: service error", "error", err, "expense_id", expenseID, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"events": history})
}
