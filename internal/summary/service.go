package summary

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/bakery-hub/internal"
	"github.com/frahmantamala/bakery-hub/internal/auth"
)

const DefaultRangeDays = 30

type Repository interface {
	List(ctx context.Context, bakeryID string, from, to time.Time) ([]*DailySummary, error)
}

type ServiceAPI interface {
	ListDaily(ctx context.Context, actor *internal.User, q RangeQuery) ([]*DailySummary, error)
}

// RangeQuery is an inclusive date range. Empty bounds default to the last 30 days ending today.
type RangeQuery struct {
	BakeryID string
	From     string
	To       string
}

type Service struct {
	repo   Repository
	guard  auth.GuardAPI
	loc    *time.Location
	now    func() time.Time
	logger *slog.Logger
}

type Option func(*Service)

// WithClock replaces time.Now when resolving the default range.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, guard auth.GuardAPI, loc *time.Location, logger *slog.Logger, opts ...Option) *Service {
	if loc == nil {
		loc = time.Local
	}
	s := &Service{
		repo:   repo,
		guard:  guard,
		loc:    loc,
		now:    time.Now,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) ListDaily(ctx context.Context, actor *internal.User, q RangeQuery) ([]*DailySummary, error) {
	if strings.TrimSpace(q.BakeryID) == "" {
		return nil, internal.ErrBakeryRequired
	}

	if err := s.guard.Authorize(ctx, actor, auth.ActionRead, auth.Target{BakeryID: q.BakeryID}); err != nil {
		return nil, err
	}

	from, to, err := s.resolveRange(q.From, q.To)
	if err != nil {
		return nil, err
	}

	summaries, err := s.repo.List(ctx, q.BakeryID, from, to)
	if err != nil {
		s.logger.Error("failed to list daily summaries", "error", err, "bakery_id", q.BakeryID)
		return nil, internal.NewInternalError("failed to list daily summaries", err)
	}

	return summaries, nil
}

func (s *Service) resolveRange(fromStr, toStr string) (time.Time, time.Time, error) {
	to := DayOf(s.now(), s.loc)
	if toStr != "" {
		parsed, err := time.Parse(DateLayout, toStr)
		if err != nil {
			return time.Time{}, time.Time{}, internal.NewValidationFieldError("to", "to must be a date in YYYY-MM-DD format", internal.ErrCodeInvalidDate)
		}
		to = parsed
	}

	from := to.AddDate(0, 0, -(DefaultRangeDays - 1))
	if fromStr != "" {
		parsed, err := time.Parse(DateLayout, fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, internal.NewValidationFieldError("from", "from must be a date in YYYY-MM-DD format", internal.ErrCodeInvalidDate)
		}
		from = parsed
	}

	if from.After(to) {
		return time.Time{}, time.Time{}, internal.NewValidationFieldError("from", "from must not be after to", internal.ErrCodeInvalidDate)
	}

	return from, to, nil
}
