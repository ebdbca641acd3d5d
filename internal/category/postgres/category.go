package postgres

import (
	"context"
	"fmt"

	categoryDatamodel "github.com/frahmantamala/bakery-hub/internal/core/datamodel/category"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) GetActiveCategories(ctx context.Context) ([]*categoryDatamodel.Category, error) {
	var categories []*categoryDatamodel.Category
	err := r.db.WithContext(ctx).
		Preload("ExpenseGroup").
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) GetActiveGroups(ctx context.Context) ([]*categoryDatamodel.ExpenseGroup, error) {
	var groups []*categoryDatamodel.ExpenseGroup
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC").
		Find(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("list expense groups: %w", err)
	}
	return groups, nil
}

func (r *CategoryRepository) Create(ctx context.Context, c *categoryDatamodel.Category) error {
	return r.db.WithContext(ctx).Omit("ExpenseGroup").Create(c).Error
}

func (r *CategoryRepository) CreateGroup(ctx context.Context, g *categoryDatamodel.ExpenseGroup) error {
	return r.db.WithContext(ctx).Create(g).Error
}
