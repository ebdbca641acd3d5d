package inventory

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/frahmantamala/bakery-hub/internal"
	"github.com/frahmantamala/bakery-hub/internal/auth"
)

type Repository interface {
	ListItems(ctx context.Context, bakeryID string) ([]*Item, error)
	GetItem(ctx context.Context, id string) (*Item, error)
	ListMovements(ctx context.Context, itemID string) ([]*Movement, error)
	// RecordMovement inserts m and moves the item's stock by m.Quantity in one transaction.
	RecordMovement(ctx context.Context, m *Movement) (*Item, error)
}

type Service struct {
	repo   Repository
	guard  auth.GuardAPI
	now    func() time.Time
	logger *slog.Logger
}

func NewService(repo Repository, guard auth.GuardAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		guard:  guard,
		now:    time.Now,
		logger: logger,
	}
}

func (s *Service) ListItems(ctx context.Context, actor *internal.User, bakeryID string) ([]*Item, error) {
	if bakeryID == "" {
		return nil, internal.ErrBakeryRequired
	}
	if err := s.guard.Authorize(ctx, actor, auth.ActionRead, auth.Target{BakeryID: bakeryID}); err != nil {
		return nil, err
	}

	items, err := s.repo.ListItems(ctx, bakeryID)
	if err != nil {
		s.logger.Error("failed to list inventory items", "error", err, "bakery_id", bakeryID)
		return nil, internal.NewInternalError("failed to list inventory items", err)
	}
	return items, nil
}

func (s *Service) GetItem(ctx context.Context, actor *internal.User, id string) (*ItemDetail, error) {
	item, err := s.loadItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.Authorize(ctx, actor, auth.ActionRead, auth.Target{BakeryID: item.BakeryID}); err != nil {
		return nil, err
	}

	movements, err := s.repo.ListMovements(ctx, id)
	if err != nil {
		s.logger.Error("failed to list stock movements", "error", err, "item_id", id)
		return nil, internal.NewInternalError("failed to list stock movements", err)
	}

	return &ItemDetail{
		Item:      item,
		Movements: movements,
		Stats:     ComputeStats(item.CurrentStock, movements),
	}, nil
}

func (s *Service) RecordMovement(ctx context.Context, actor *internal.User, itemID string, dto RecordMovementDTO) (*Movement, *Item, error) {
	if err := s.guard.CheckRole(actor, auth.ActionCreate); err != nil {
		return nil, nil, err
	}

	item, err := s.loadItem(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.guard.Authorize(ctx, actor, auth.ActionCreate, auth.Target{BakeryID: item.BakeryID}); err != nil {
		return nil, nil, err
	}

	if err := dto.Validate(); err != nil {
		return nil, nil, err
	}

	mt := MovementType(dto.Type)
	qty, err := SignedQuantity(mt, dto.Quantity)
	if err != nil {
		return nil, nil, err
	}

	m := &Movement{
		ID:            uuid.NewString(),
		BakeryID:      item.BakeryID,
		ItemID:        item.ID,
		Type:          mt,
		Quantity:      qty,
		Reason:        dto.Reason,
		ExpenseID:     dto.ExpenseID,
		CreatedBy:     actor.ID,
		CreatedByName: actor.DisplayName(),
		CreatedAt:     s.now(),
	}
	if dto.UnitCost != nil {
		m.UnitCost.Decimal = *dto.UnitCost
		m.UnitCost.Valid = true
	}

	updated, err := s.repo.RecordMovement(ctx, m)
	if err != nil {
		switch {
		case errors.Is(err, internal.ErrInsufficientStock):
			return nil, nil, internal.ErrInsufficientStock
		case errors.Is(err, internal.ErrItemNotFound):
			return nil, nil, internal.ErrItemNotFound
		}
		s.logger.Error("failed to record stock movement", "error", err, "item_id", itemID)
		return nil, nil, internal.NewInternalError("failed to record stock movement", err)
	}

	s.logger.Info("stock movement recorded",
		"movement_id", m.ID,
		"item_id", itemID,
		"type", m.Type,
		"quantity", m.Quantity.String(),
		"current_stock", updated.CurrentStock.String())
	return m, updated, nil
}

func (s *Service) loadItem(ctx context.Context, id string) (*Item, error) {
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, internal.ErrItemNotFound) {
			return nil, internal.ErrItemNotFound
		}
		s.logger.Error("failed to load inventory item", "error", err, "item_id", id)
		return nil, internal.NewInternalError("failed to load inventory item", err)
	}
	return item, nil
}
