package expense

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/frahmantamala/bakery-hub/internal/core/datamodel/category"
	"github.com/frahmantamala/bakery-hub/internal/core/datamodel/supplier"
)

type Expense struct {
	ID                  string              `gorm:"primaryKey;type:text"`
	BakeryID            string              `gorm:"column:bakery_id;type:text;not null;index"`
	Date                time.Time           `gorm:"column:date;not null"`
	CategoryID          *string             `gorm:"column:category_id;type:text"`
	CategoryName        string              `gorm:"column:category_name"`
	AmountGNF           int64               `gorm:"column:amount_gnf;not null"`
	AmountEUR           decimal.NullDecimal `gorm:"column:amount_eur;type:numeric(12,2)"`
	PaymentMethod       string              `gorm:"column:payment_method;not null"`
	Status              string              `gorm:"column:status;not null;default:Pending;index"`
	Description         *string             `gorm:"column:description"`
	ReceiptURL          *string             `gorm:"column:receipt_url"`
	Comments            *string             `gorm:"column:comments"`
	TransactionRef      *string             `gorm:"column:transaction_ref"`
	SupplierID          *string             `gorm:"column:supplier_id;type:text"`
	IsInventoryPurchase bool                `gorm:"column:is_inventory_purchase;default:false"`
	CreatedBy           string              `gorm:"column:created_by;type:text;not null"`
	CreatedByName       string              `gorm:"column:created_by_name"`
	LastModifiedBy      *string             `gorm:"column:last_modified_by;type:text"`
	LastModifiedByName  *string             `gorm:"column:last_modified_by_name"`
	LastModifiedAt      *time.Time          `gorm:"column:last_modified_at"`
	ApprovedBy          *string             `gorm:"column:approved_by;type:text"`
	ApprovedByName      *string             `gorm:"column:approved_by_name"`
	ApprovedAt          *time.Time          `gorm:"column:approved_at"`
	CreatedAt           time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time           `gorm:"column:updated_at;autoUpdateTime"`

	Category *category.Category `gorm:"foreignKey:CategoryID"`
	Supplier *supplier.Supplier `gorm:"foreignKey:SupplierID"`
}
