package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeExpenseSubmitted = "expense.submitted"
	EventTypeExpenseEdited    = "expense.edited"
	EventTypeExpenseApproved  = "expense.approved"
	EventTypeExpenseRejected  = "expense.rejected"
)

// ExpenseLifecycleTypes lists every event an expense can emit, in lifecycle order.
var ExpenseLifecycleTypes = []string{
	EventTypeExpenseSubmitted,
	EventTypeExpenseEdited,
	EventTypeExpenseApproved,
	EventTypeExpenseRejected,
}

type ExpenseEvent struct {
	BaseEvent
	ExpenseID    string  `json:"expense_id"`
	BakeryID     string  `json:"bakery_id"`
	ActorID      string  `json:"actor_id"`
	ActorName    string  `json:"actor_name"`
	StatusBefore *string `json:"status_before,omitempty"`
	StatusAfter  string  `json:"status_after"`
	Reason       *string `json:"reason,omitempty"`
}

// Action is the event type without its "expense." prefix.
func (e *ExpenseEvent) Action() string {
	return e.Type[len("expense."):]
}

func NewExpenseEvent(eventType, expenseID, bakeryID, actorID, actorName string, statusBefore *string, statusAfter string, reason *string, at time.Time) *ExpenseEvent {
	data := map[string]interface{}{
		"expense_id":   expenseID,
		"bakery_id":    bakeryID,
		"actor_id":     actorID,
		"status_after": statusAfter,
	}
	if statusBefore != nil {
		data["status_before"] = *statusBefore
	}
	if reason != nil {
		data["reason"] = *reason
	}

	return &ExpenseEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: at,
			Data:      data,
		},
		ExpenseID:    expenseID,
		BakeryID:     bakeryID,
		ActorID:      actorID,
		ActorName:    actorName,
		StatusBefore: statusBefore,
		StatusAfter:  statusAfter,
		Reason:       reason,
	}
}
