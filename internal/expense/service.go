package expense

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/frahmantamala/bakery-hub/internal"
	"github.com/frahmantamala/bakery-hub/internal/audit"
	"github.com/frahmantamala/bakery-hub/internal/auth"
	"github.com/frahmantamala/bakery-hub/internal/core/events"
	"github.com/frahmantamala/bakery-hub/internal/payment"
	"github.com/frahmantamala/bakery-hub/internal/summary"
)

// Decision is the status change written by Decide, together with the accrual it triggers.
type Decision struct {
	ExpenseID    string
	Expected     Status
	NewStatus    Status
	ApproverID   string
	ApproverName string
	At           time.Time
	// Comments replaces the stored comments when set.
	Comments *string
	// Accrual is applied in the same transaction as the status change when set.
	Accrual *summary.Accrual
}

// Repository interface defines the data access methods for expenses
type Repository interface {
	Create(ctx context.Context, e *Expense) error
	GetByID(ctx context.Context, id string) (*Expense, error)
	List(ctx context.Context, q ListExpensesQuery) ([]*Expense, error)
	// UpdateIfStatus writes e only if the stored status still equals expected.
	UpdateIfStatus(ctx context.Context, e *Expense, expected Status) (*Expense, error)
	ApplyDecision(ctx context.Context, d Decision) (*Expense, error)
}

type HistoryReader interface {
	History(ctx context.Context, expenseID string) ([]*audit.Event, error)
}

// Service is the expense lifecycle: submit, edit and decide.
type Service struct {
	repo    Repository
	guard   auth.GuardAPI
	events  events.Publisher
	history HistoryReader
	loc     *time.Location
	now     func() time.Time
	logger  *slog.Logger
}

type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the zone used to bucket approved expenses by day.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func NewService(repo Repository, guard auth.GuardAPI, publisher events.Publisher, history HistoryReader, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		guard:   guard,
		events:  publisher,
		history: history,
		loc:     time.Local,
		now:     time.Now,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Submit(ctx context.Context, actor *internal.User, dto SubmitExpenseDTO) (*Expense, error) {
	if err := s.guard.CheckRole(actor, auth.ActionCreate); err != nil {
		return nil, err
	}

	if dto.BakeryID == "" && actor.DefaultBakeryID != nil {
		dto.BakeryID = *actor.DefaultBakeryID
	}
	if strings.TrimSpace(dto.BakeryID) == "" {
		return nil, internal.ErrBakeryRequired
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if err := s.guard.Authorize(ctx, actor, auth.ActionCreate, auth.Target{BakeryID: dto.BakeryID}); err != nil {
		return nil, err
	}

	now := s.now()
	date := now
	if dto.Date != nil {
		parsed, err := ParseDate(*dto.Date, s.loc)
		if err != nil {
			return nil, internal.NewValidationFieldError("date", "date must be YYYY-MM-DD or an RFC 3339 timestamp", internal.ErrCodeInvalidDate)
		}
		date = parsed
	}

	categoryName := ""
	if dto.CategoryName != nil {
		categoryName = strings.TrimSpace(*dto.CategoryName)
	}

	e := &Expense{
		ID:                  uuid.NewString(),
		BakeryID:            dto.BakeryID,
		Date:                date,
		CategoryID:          emptyToNil(dto.CategoryID),
		CategoryName:        categoryName,
		AmountGNF:           dto.AmountGNF,
		PaymentMethod:       payment.Method(dto.PaymentMethod),
		Status:              StatusPending,
		Description:         emptyToNil(dto.Description),
		ReceiptURL:          emptyToNil(dto.ReceiptURL),
		Comments:            emptyToNil(dto.Comments),
		TransactionRef:      emptyToNil(dto.TransactionRef),
		SupplierID:          emptyToNil(dto.SupplierID),
		IsInventoryPurchase: dto.IsInventoryPurchase,
		CreatedBy:           actor.ID,
		CreatedByName:       actor.DisplayName(),
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if dto.AmountEUR != nil {
		e.AmountEUR.Decimal = *dto.AmountEUR
		e.AmountEUR.Valid = true
	}

	if err := s.repo.Create(ctx, e); err != nil {
		s.logger.Error("failed to create expense", "error", err, "user_id", actor.ID, "bakery_id", dto.BakeryID)
		return nil, internal.NewInternalError("failed to create expense", err)
	}

	s.logger.Info("expense submitted",
		"expense_id", e.ID,
		"bakery_id", e.BakeryID,
		"user_id", actor.ID,
		"amount_gnf", e.AmountGNF,
		"payment_method", e.PaymentMethod)

	s.publish(ctx, events.EventTypeExpenseSubmitted, e, actor, nil, nil, now)
	return e, nil
}

func (s *Service) Get(ctx context.Context, actor *internal.User, id string) (*Expense, error) {
	e, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.guard.Authorize(ctx, actor, auth.ActionRead, auth.Target{BakeryID: e.BakeryID}); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) List(ctx context.Context, actor *internal.User, q ListExpensesQuery) ([]*Expense, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	if err := s.guard.Authorize(ctx, actor, auth.ActionRead, auth.Target{BakeryID: q.BakeryID}); err != nil {
		return nil, err
	}

	expenses, err := s.repo.List(ctx, q)
	if err != nil {
		s.logger.Error("failed to list expenses", "error", err, "bakery_id", q.BakeryID)
		return nil, internal.NewInternalError("failed to list expenses", err)
	}

	return expenses, nil
}

func (s *Service) Edit(ctx context.Context, actor *internal.User, id string, dto UpdateExpenseDTO) (*Expense, error) {
	e, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.guard.Authorize(ctx, actor, auth.ActionEdit, auth.Target{BakeryID: e.BakeryID, Pending: e.IsPending()}); err != nil {
		return nil, err
	}

	trigger := TriggerEditorEdit
	if auth.RoleOf(actor).Can(auth.CapEditAnyStatus) {
		trigger = TriggerManagerEdit
	}
	next, ok := NextStatus(e.Status, trigger)
	if !ok {
		return nil, internal.ErrPendingOnly
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	previous := e.Status
	now := s.now()
	dto.Apply(e)
	e.Status = next
	e.LastModifiedBy = &actor.ID
	name := actor.DisplayName()
	e.LastModifiedByName = &name
	e.LastModifiedAt = &now
	e.UpdatedAt = now

	updated, err := s.repo.UpdateIfStatus(ctx, e, previous)
	if err != nil {
		if errors.Is(err, internal.ErrStatusChanged) {
			s.logger.Warn("expense status changed during edit", "expense_id", id, "expected_status", previous)
			return nil, err
		}
		s.logger.Error("failed to update expense", "error", err, "expense_id", id)
		return nil, internal.NewInternalError("failed to update expense", err)
	}

	s.logger.Info("expense edited",
		"expense_id", id,
		"user_id", actor.ID,
		"status", updated.Status)

	before := string(previous)
	s.publish(ctx, events.EventTypeExpenseEdited, updated, actor, &before, nil, now)
	return updated, nil
}

// Decide approves or rejects a pending expense. Approval accrues the amount into the
// daily summary in the same transaction as the status change.
func (s *Service) Decide(ctx context.Context, actor *internal.User, id string, dto DecideExpenseDTO) (*Expense, error) {
	if err := s.guard.CheckRole(actor, auth.ActionDecide); err != nil {
		return nil, err
	}

	e, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.guard.Authorize(ctx, actor, auth.ActionDecide, auth.Target{BakeryID: e.BakeryID}); err != nil {
		return nil, err
	}

	trigger, err := dto.Trigger()
	if err != nil {
		return nil, err
	}

	next, ok := NextStatus(e.Status, trigger)
	if !ok {
		s.logger.Warn("expense already decided", "expense_id", id, "status", e.Status)
		return nil, internal.ErrAlreadyDecided
	}

	now := s.now()
	d := Decision{
		ExpenseID:    e.ID,
		Expected:     e.Status,
		NewStatus:    next,
		ApproverID:   actor.ID,
		ApproverName: actor.DisplayName(),
		At:           now,
	}

	var reason *string
	if trigger == TriggerReject && dto.Reason != "" {
		comments := AppendRejection(e.Comments, dto.Reason)
		d.Comments = &comments
		reason = &dto.Reason
	}
	if trigger == TriggerApprove {
		accrual := summary.NewAccrual(e.BakeryID, e.Date, e.PaymentMethod, e.AmountGNF, s.loc)
		d.Accrual = &accrual
	}

	updated, err := s.repo.ApplyDecision(ctx, d)
	if err != nil {
		if errors.Is(err, internal.ErrStatusChanged) {
			s.logger.Warn("expense decided concurrently", "expense_id", id)
			return nil, internal.ErrAlreadyDecided
		}
		s.logger.Error("failed to apply decision", "error", err, "expense_id", id, "action", dto.Action)
		return nil, internal.NewInternalError("failed to apply decision", err)
	}

	s.logger.Info("expense decided",
		"expense_id", id,
		"manager_id", actor.ID,
		"status", updated.Status,
		"amount_gnf", updated.AmountGNF)

	eventType := events.EventTypeExpenseApproved
	if next == StatusRejected {
		eventType = events.EventTypeExpenseRejected
	}
	before := string(e.Status)
	s.publish(ctx, eventType, updated, actor, &before, reason, now)
	return updated, nil
}

func (s *Service) History(ctx context.Context, actor *internal.User, id string) ([]*audit.Event, error) {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return nil, err
	}

	history, err := s.history.History(ctx, id)
	if err != nil {
		s.logger.Error("failed to load expense history", "error", err, "expense_id", id)
		return nil, internal.NewInternalError("failed to load expense history", err)
	}
	return history, nil
}

func (s *Service) load(ctx context.Context, id string) (*Expense, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, internal.ErrExpenseNotFound) {
			return nil, internal.ErrExpenseNotFound
		}
		s.logger.Error("failed to load expense", "error", err, "expense_id", id)
		return nil, internal.NewInternalError("failed to load expense", err)
	}
	return e, nil
}

// publish records the lifecycle event. A failing subscriber is logged and does not fail the request.
func (s *Service) publish(ctx context.Context, eventType string, e *Expense, actor *internal.User, before, reason *string, at time.Time) {
	if s.events == nil {
		return
	}
	ev := events.NewExpenseEvent(eventType, e.ID, e.BakeryID, actor.ID, actor.DisplayName(), before, string(e.Status), reason, at)
	if err := s.events.PublishSync(ctx, ev); err != nil {
		s.logger.Error("failed to record expense event",
			"error", err,
			"event_type", eventType,
			"expense_id", e.ID)
	}
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
