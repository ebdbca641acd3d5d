package category

import "time"

type ExpenseGroup struct {
	ID        string    `gorm:"primaryKey;type:text"`
	Key       string    `gorm:"column:key;uniqueIndex;not null"`
	Label     string    `gorm:"column:label;not null"`
	LabelFr   string    `gorm:"column:label_fr"`
	Icon      string    `gorm:"column:icon"`
	Color     string    `gorm:"column:color"`
	SortOrder int       `gorm:"column:sort_order;default:0"`
	IsActive  bool      `gorm:"column:is_active;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

type Category struct {
	ID             string        `gorm:"primaryKey;type:text"`
	Name           string        `gorm:"column:name;uniqueIndex;not null"`
	NameFr         string        `gorm:"column:name_fr"`
	Color          string        `gorm:"column:color"`
	ExpenseGroupID *string       `gorm:"column:expense_group_id;type:text"`
	ExpenseGroup   *ExpenseGroup `gorm:"foreignKey:ExpenseGroupID"`
	IsActive       bool          `gorm:"column:is_active;default:true"`
	CreatedAt      time.Time     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time     `gorm:"column:updated_at;autoUpdateTime"`
}

func (Category) TableName() string { return "categories" }
