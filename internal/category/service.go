package category

import (
	"context"
	"log/slog"
	"sort"

	"github.com/frahmantamala/bakery-hub/internal"
	categoryDatamodel "github.com/frahmantamala/bakery-hub/internal/core/datamodel/category"
)

type RepositoryAPI interface {
	GetActiveCategories(ctx context.Context) ([]*categoryDatamodel.Category, error)
	GetActiveGroups(ctx context.Context) ([]*categoryDatamodel.ExpenseGroup, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetCatalog returns active categories ordered by group sort order then name, plus the active groups.
func (s *Service) GetCatalog(ctx context.Context) (*CategoriesResponse, error) {
	dataCategories, err := s.repo.GetActiveCategories(ctx)
	if err != nil {
		s.logger.Error("failed to get categories from repository", "error", err)
		return nil, internal.NewInternalError("failed to get categories", err)
	}

	dataGroups, err := s.repo.GetActiveGroups(ctx)
	if err != nil {
		s.logger.Error("failed to get expense groups from repository", "error", err)
		return nil, internal.NewInternalError("failed to get expense groups", err)
	}

	categories := make([]*Category, 0, len(dataCategories))
	for _, dataCategory := range dataCategories {
		c := FromDataModel(dataCategory)
		if c.IsActiveCategory() {
			categories = append(categories, c)
		}
	}
	sort.SliceStable(categories, func(i, j int) bool {
		oi, oj := groupOrder(categories[i]), groupOrder(categories[j])
		if oi != oj {
			return oi < oj
		}
		return categories[i].Name < categories[j].Name
	})

	groups := make([]*ExpenseGroup, 0, len(dataGroups))
	for _, g := range dataGroups {
		groups = append(groups, GroupFromDataModel(g))
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].SortOrder < groups[j].SortOrder
	})

	s.logger.Debug("retrieved categories", "count", len(categories), "groups", len(groups))
	return &CategoriesResponse{
		Categories:    categories,
		ExpenseGroups: groups,
	}, nil
}

// ungrouped categories sort after every group
func groupOrder(c *Category) int {
	if c.ExpenseGroup == nil {
		return int(^uint(0) >> 1)
	}
	return c.ExpenseGroup.SortOrder
}
