package audit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/bakery-hub/internal/core/events"
	"github.com/frahmantamala/bakery-hub/pkg/logger"
)

// DecisionLog writes one structured line per approval or rejection, off the
// request path, so log-based alerts can follow manager decisions.
type DecisionLog struct {
	logger *slog.Logger
}

func NewDecisionLog(logger *slog.Logger) *DecisionLog {
	return &DecisionLog{logger: logger}
}

func (d *DecisionLog) Register(bus *events.EventBus) {
	bus.SubscribeAsync([]string{events.EventTypeExpenseApproved, events.EventTypeExpenseRejected}, d.Handle)
}

func (d *DecisionLog) Handle(ctx context.Context, event events.Event) error {
	ev, ok := event.(*events.ExpenseEvent)
	if !ok {
		return fmt.Errorf("decision log: unexpected event %T for type %s", event, event.EventType())
	}

	fields := []any{
		"expense_id", ev.ExpenseID,
		"bakery_id", ev.BakeryID,
		"decision", ev.Action(),
		"decided_by", ev.ActorID,
		"decided_by_name", ev.ActorName,
		"decided_at", ev.OccurredAt(),
	}
	if ev.Reason != nil {
		fields = append(fields, "reason", *ev.Reason)
	}

	logger.FromBase(ctx, d.logger).Info("expense decision", fields...)
	return nil
}
