package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	supplierDatamodel "github.com/frahmantamala/bakery-hub/internal/core/datamodel/supplier"
	"github.com/frahmantamala/bakery-hub/internal/supplier"
)

type SupplierRepository struct {
	db *gorm.DB
}

func NewSupplierRepository(db *gorm.DB) *SupplierRepository {
	return &SupplierRepository{db: db}
}

func (r *SupplierRepository) ListActive(ctx context.Context) ([]*supplier.Supplier, error) {
	var rows []*supplierDatamodel.Supplier
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	return supplier.FromDataModelSlice(rows), nil
}
