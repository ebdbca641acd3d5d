package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/frahmantamala/bakery-hub/internal"
	inventoryDatamodel "github.com/frahmantamala/bakery-hub/internal/core/datamodel/inventory"
	"github.com/frahmantamala/bakery-hub/internal/inventory"
)

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) ListItems(ctx context.Context, bakeryID string) ([]*inventory.Item, error) {
	var rows []*inventoryDatamodel.InventoryItem
	err := r.db.WithContext(ctx).
		Where("bakery_id = ? AND is_active = ?", bakeryID, true).
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	return inventory.ItemsFromDataModel(rows), nil
}

func (r *InventoryRepository) GetItem(ctx context.Context, id string) (*inventory.Item, error) {
	return getItem(r.db.WithContext(ctx), id)
}

func (r *InventoryRepository) ListMovements(ctx context.Context, itemID string) ([]*inventory.Movement, error) {
	var rows []*inventoryDatamodel.StockMovement
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	return inventory.MovementsFromDataModel(rows), nil
}

// RecordMovement appends to the ledger and moves current_stock in place. The
// stock update is a relative increment guarded against going below zero.
func (r *InventoryRepository) RecordMovement(ctx context.Context, m *inventory.Movement) (*inventory.Item, error) {
	var item *inventory.Item
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&inventoryDatamodel.InventoryItem{}).
			Where("id = ? AND current_stock + ? >= 0", m.ItemID, m.Quantity).
			Updates(map[string]interface{}{
				"current_stock": gorm.Expr("current_stock + ?", m.Quantity),
				"updated_at":    m.CreatedAt,
			})
		if res.Error != nil {
			return fmt.Errorf("update stock: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			if _, err := getItem(tx, m.ItemID); err != nil {
				return err
			}
			return internal.ErrInsufficientStock
		}

		if err := tx.Create(inventory.MovementToDataModel(m)).Error; err != nil {
			return fmt.Errorf("insert stock movement: %w", err)
		}

		var err error
		item, err = getItem(tx, m.ItemID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func getItem(db *gorm.DB, id string) (*inventory.Item, error) {
	var row inventoryDatamodel.InventoryItem
	if err := db.Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrItemNotFound
		}
		return nil, fmt.Errorf("get inventory item %s: %w", id, err)
	}
	return inventory.ItemFromDataModel(&row), nil
}
