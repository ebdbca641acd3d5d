package supplier

import "time"

type Supplier struct {
	ID           string    `gorm:"primaryKey;type:text"`
	Name         string    `gorm:"column:name;uniqueIndex;not null"`
	Phone        *string   `gorm:"column:phone"`
	Email        *string   `gorm:"column:email"`
	Address      *string   `gorm:"column:address"`
	PaymentTerms *string   `gorm:"column:payment_terms"`
	IsActive     bool      `gorm:"column:is_active;default:true"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
