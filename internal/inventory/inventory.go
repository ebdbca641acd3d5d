package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/frahmantamala/bakery-hub/internal"
	inventoryDatamodel "github.com/frahmantamala/bakery-hub/internal/core/datamodel/inventory"
)

type MovementType string

const (
	MovementPurchase   MovementType = "Purchase"
	MovementUsage      MovementType = "Usage"
	MovementWaste      MovementType = "Waste"
	MovementAdjustment MovementType = "Adjustment"
)

var MovementTypes = []MovementType{MovementPurchase, MovementUsage, MovementWaste, MovementAdjustment}

func (t MovementType) Valid() bool {
	for _, mt := range MovementTypes {
		if t == mt {
			return true
		}
	}
	return false
}

func movementTypeNames() []string {
	names := make([]string, len(MovementTypes))
	for i, t := range MovementTypes {
		names[i] = string(t)
	}
	return names
}

// SignedQuantity returns the stock delta for a movement. Purchases add stock,
// usage and waste remove it, adjustments keep the caller's sign.
func SignedQuantity(t MovementType, qty decimal.Decimal) (decimal.Decimal, error) {
	switch t {
	case MovementPurchase:
		return qty.Abs(), nil
	case MovementUsage, MovementWaste:
		return qty.Abs().Neg(), nil
	case MovementAdjustment:
		return qty, nil
	}
	return decimal.Zero, internal.NewValidationFieldError("type", "Invalid type. Must be Purchase, Usage, Waste, or Adjustment", internal.ErrCodeInvalidMovementType)
}

type Item struct {
	ID           string          `json:"id"`
	BakeryID     string          `json:"bakeryId"`
	Name         string          `json:"name"`
	NameFr       *string         `json:"nameFr"`
	Category     string          `json:"category"`
	Unit         string          `json:"unit"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	MinStock     decimal.Decimal `json:"minStock"`
	ReorderPoint decimal.Decimal `json:"reorderPoint"`
	UnitCostGNF  int64           `json:"unitCostGNF"`
	SupplierID   *string         `json:"supplierId"`
	IsActive     bool            `json:"isActive"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// NeedsReorder reports whether stock is at or below the reorder point.
func (i *Item) NeedsReorder() bool {
	return i.CurrentStock.LessThanOrEqual(i.ReorderPoint)
}

type Movement struct {
	ID            string              `json:"id"`
	BakeryID      string              `json:"bakeryId"`
	ItemID        string              `json:"itemId"`
	Type          MovementType        `json:"type"`
	Quantity      decimal.Decimal     `json:"quantity"`
	UnitCost      decimal.NullDecimal `json:"unitCost"`
	Reason        *string             `json:"reason"`
	ExpenseID     *string             `json:"expenseId"`
	CreatedBy     string              `json:"createdBy"`
	CreatedByName string              `json:"createdByName"`
	CreatedAt     time.Time           `json:"createdAt"`
}

type Stats struct {
	TotalMovements int             `json:"totalMovements"`
	TotalPurchased decimal.Decimal `json:"totalPurchased"`
	TotalUsed      decimal.Decimal `json:"totalUsed"`
	TotalWasted    decimal.Decimal `json:"totalWasted"`
	InitialStock   decimal.Decimal `json:"initialStock"`
}

type ItemDetail struct {
	Item      *Item       `json:"item"`
	Movements []*Movement `json:"movements"`
	Stats     Stats       `json:"stats"`
}

// ComputeStats derives the ledger totals. Initial stock is worked back from the
// current stock by undoing every movement.
func ComputeStats(current decimal.Decimal, movements []*Movement) Stats {
	stats := Stats{
		TotalMovements: len(movements),
		TotalPurchased: decimal.Zero,
		TotalUsed:      decimal.Zero,
		TotalWasted:    decimal.Zero,
	}
	change := decimal.Zero
	for _, m := range movements {
		change = change.Add(m.Quantity)
		switch m.Type {
		case MovementPurchase:
			stats.TotalPurchased = stats.TotalPurchased.Add(m.Quantity.Abs())
		case MovementUsage:
			stats.TotalUsed = stats.TotalUsed.Add(m.Quantity.Abs())
		case MovementWaste:
			stats.TotalWasted = stats.TotalWasted.Add(m.Quantity.Abs())
		}
	}
	stats.InitialStock = current.Sub(change)
	return stats
}

func ItemFromDataModel(row *inventoryDatamodel.InventoryItem) *Item {
	return &Item{
		ID:           row.ID,
		BakeryID:     row.BakeryID,
		Name:         row.Name,
		NameFr:       row.NameFr,
		Category:     row.Category,
		Unit:         row.Unit,
		CurrentStock: row.CurrentStock,
		MinStock:     row.MinStock,
		ReorderPoint: row.ReorderPoint,
		UnitCostGNF:  row.UnitCostGNF,
		SupplierID:   row.SupplierID,
		IsActive:     row.IsActive,
		UpdatedAt:    row.UpdatedAt,
	}
}

func ItemsFromDataModel(rows []*inventoryDatamodel.InventoryItem) []*Item {
	items := make([]*Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, ItemFromDataModel(row))
	}
	return items
}

func MovementFromDataModel(row *inventoryDatamodel.StockMovement) *Movement {
	return &Movement{
		ID:            row.ID,
		BakeryID:      row.BakeryID,
		ItemID:        row.ItemID,
		Type:          MovementType(row.Type),
		Quantity:      row.Quantity,
		UnitCost:      row.UnitCost,
		Reason:        row.Reason,
		ExpenseID:     row.ExpenseID,
		CreatedBy:     row.CreatedBy,
		CreatedByName: row.CreatedByName,
		CreatedAt:     row.CreatedAt,
	}
}

func MovementsFromDataModel(rows []*inventoryDatamodel.StockMovement) []*Movement {
	movements := make([]*Movement, 0, len(rows))
	for _, row := range rows {
		movements = append(movements, MovementFromDataModel(row))
	}
	return movements
}

func MovementToDataModel(m *Movement) *inventoryDatamodel.StockMovement {
	return &inventoryDatamodel.StockMovement{
		ID:            m.ID,
		BakeryID:      m.BakeryID,
		ItemID:        m.ItemID,
		Type:          string(m.Type),
		Quantity:      m.Quantity,
		UnitCost:      m.UnitCost,
		Reason:        m.Reason,
		ExpenseID:     m.ExpenseID,
		CreatedBy:     m.CreatedBy,
		CreatedByName: m.CreatedByName,
		CreatedAt:     m.CreatedAt,
	}
}
