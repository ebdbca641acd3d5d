package user

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/bakery-hub/internal"
)

type Repository interface {
	ListBakeries(ctx context.Context, userID string) ([]*Bakery, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Me returns the caller and the bakeries they belong to.
func (s *Service) Me(ctx context.Context, actor *internal.User) (*Me, error) {
	if actor == nil {
		return nil, internal.ErrUnauthenticated
	}

	bakeries, err := s.repo.ListBakeries(ctx, actor.ID)
	if err != nil {
		s.logger.Error("failed to list user bakeries", "error", err, "user_id", actor.ID)
		return nil, internal.NewInternalError("failed to list user bakeries", err)
	}

	return &Me{
		User:     FromIdentity(actor),
		Bakeries: bakeries,
	}, nil
}
