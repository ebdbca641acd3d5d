package bakery

import "time"

type Bakery struct {
	ID        string    `gorm:"primaryKey;type:text"`
	Name      string    `gorm:"column:name;not null"`
	Location  string    `gorm:"column:location"`
	Currency  string    `gorm:"column:currency;default:GNF"`
	IsActive  bool      `gorm:"column:is_active;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Bakery) TableName() string { return "bakeries" }
