package user

import "time"

type User struct {
	ID              string    `gorm:"primaryKey;type:text"`
	Email           string    `gorm:"column:email;uniqueIndex;not null"`
	Name            string    `gorm:"column:name"`
	Role            string    `gorm:"column:role;not null;default:Editor"`
	DefaultBakeryID *string   `gorm:"column:default_bakery_id;type:text"`
	IsActive        bool      `gorm:"column:is_active;default:true"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// UserBakery grants a user access to one bakery. (user_id, bakery_id) is unique.
type UserBakery struct {
	ID        string    `gorm:"primaryKey;type:text"`
	UserID    string    `gorm:"column:user_id;type:text;not null;uniqueIndex:idx_user_bakery"`
	BakeryID  string    `gorm:"column:bakery_id;type:text;not null;uniqueIndex:idx_user_bakery"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (UserBakery) TableName() string { return "user_bakeries" }
