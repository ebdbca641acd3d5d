package audit

import (
	"time"

	auditDatamodel "github.com/frahmantamala/bakery-hub/internal/core/datamodel/audit"
)

// Event is one entry in the ordered history of an expense.
type Event struct {
	ID           string    `json:"id"`
	ExpenseID    string    `json:"expenseId"`
	BakeryID     string    `json:"bakeryId"`
	Action       string    `json:"action"`
	ActorID      string    `json:"actorId"`
	ActorName    string    `json:"actorName"`
	StatusBefore *string   `json:"statusBefore"`
	StatusAfter  string    `json:"statusAfter"`
	Reason       *string   `json:"reason"`
	OccurredAt   time.Time `json:"occurredAt"`
}

func ToDataModel(e *Event) *auditDatamodel.ExpenseAuditEvent {
	return &auditDatamodel.ExpenseAuditEvent{
		ID:           e.ID,
		ExpenseID:    e.ExpenseID,
		BakeryID:     e.BakeryID,
		Action:       e.Action,
		ActorID:      e.ActorID,
		ActorName:    e.ActorName,
		StatusBefore: e.StatusBefore,
		StatusAfter:  e.StatusAfter,
		Reason:       e.Reason,
		OccurredAt:   e.OccurredAt,
	}
}

func FromDataModel(e *auditDatamodel.ExpenseAuditEvent) *Event {
	return &Event{
		ID:           e.ID,
		ExpenseID:    e.ExpenseID,
		BakeryID:     e.BakeryID,
		Action:       e.Action,
		ActorID:      e.ActorID,
		ActorName:    e.ActorName,
		StatusBefore: e.StatusBefore,
		StatusAfter:  e.StatusAfter,
		Reason:       e.Reason,
		OccurredAt:   e.OccurredAt,
	}
}
