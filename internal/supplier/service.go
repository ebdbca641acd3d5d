package supplier

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/bakery-hub/internal"
)

type Repository interface {
	ListActive(ctx context.Context) ([]*Supplier, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) ListActive(ctx context.Context) ([]*Supplier, error) {
	suppliers, err := s.repo.ListActive(ctx)
	if err != nil {
		s.logger.Error("failed to list suppliers", "error", err)
		return nil, internal.NewInternalError("failed to list suppliers", err)
	}
	return suppliers, nil
}
