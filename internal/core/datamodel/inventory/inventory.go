package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

type InventoryItem struct {
	ID           string          `gorm:"primaryKey;type:text"`
	BakeryID     string          `gorm:"column:bakery_id;type:text;not null;index"`
	Name         string          `gorm:"column:name;not null"`
	NameFr       *string         `gorm:"column:name_fr"`
	Category     string          `gorm:"column:category"`
	Unit         string          `gorm:"column:unit;not null"`
	CurrentStock decimal.Decimal `gorm:"column:current_stock;type:numeric(12,3);not null;default:0"`
	MinStock     decimal.Decimal `gorm:"column:min_stock;type:numeric(12,3);not null;default:0"`
	ReorderPoint decimal.Decimal `gorm:"column:reorder_point;type:numeric(12,3);not null;default:0"`
	UnitCostGNF  int64           `gorm:"column:unit_cost_gnf;not null;default:0"`
	SupplierID   *string         `gorm:"column:supplier_id;type:text"`
	IsActive     bool            `gorm:"column:is_active;default:true"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

type StockMovement struct {
	ID            string              `gorm:"primaryKey;type:text"`
	BakeryID      string              `gorm:"column:bakery_id;type:text;not null"`
	ItemID        string              `gorm:"column:item_id;type:text;not null;index"`
	Type          string              `gorm:"column:type;not null"`
	Quantity      decimal.Decimal     `gorm:"column:quantity;type:numeric(12,3);not null"`
	UnitCost      decimal.NullDecimal `gorm:"column:unit_cost;type:numeric(12,2)"`
	Reason        *string             `gorm:"column:reason"`
	ExpenseID     *string             `gorm:"column:expense_id;type:text"`
	CreatedBy     string              `gorm:"column:created_by;type:text;not null"`
	CreatedByName string              `gorm:"column:created_by_name"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
}
