package audit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/bakery-hub/internal/core/events"
)

// Repository is append-only: events are never updated or deleted.
type Repository interface {
	Append(ctx context.Context, e *Event) error
	ListByExpense(ctx context.Context, expenseID string) ([]*Event, error)
}

// Recorder persists expense lifecycle events published on the bus.
type Recorder struct {
	repo   Repository
	logger *slog.Logger
}

func NewRecorder(repo Repository, logger *slog.Logger) *Recorder {
	return &Recorder{
		repo:   repo,
		logger: logger,
	}
}

// Register subscribes the recorder to every expense lifecycle event type.
func (r *Recorder) Register(bus *events.EventBus) {
	bus.SubscribeAll(events.ExpenseLifecycleTypes, r.Handle)
}

func (r *Recorder) Handle(ctx context.Context, event events.Event) error {
	ev, ok := event.(*events.ExpenseEvent)
	if !ok {
		return fmt.Errorf("audit recorder: unexpected event %T for type %s", event, event.EventType())
	}

	entry := &Event{
		ID:           ev.EventID(),
		ExpenseID:    ev.ExpenseID,
		BakeryID:     ev.BakeryID,
		Action:       ev.Action(),
		ActorID:      ev.ActorID,
		ActorName:    ev.ActorName,
		StatusBefore: ev.StatusBefore,
		StatusAfter:  ev.StatusAfter,
		Reason:       ev.Reason,
		OccurredAt:   ev.OccurredAt(),
	}

	if err := r.repo.Append(ctx, entry); err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}

	r.logger.Debug("audit event recorded",
		"expense_id", entry.ExpenseID,
		"action", entry.Action,
		"actor_id", entry.ActorID)
	return nil
}

func (r *Recorder) History(ctx context.Context, expenseID string) ([]*Event, error) {
	return r.repo.ListByExpense(ctx, expenseID)
}
