package audit

import "time"

type ExpenseAuditEvent struct {
	ID           string    `gorm:"primaryKey;type:text"`
	ExpenseID    string    `gorm:"column:expense_id;type:text;not null;index"`
	BakeryID     string    `gorm:"column:bakery_id;type:text;not null"`
	Action       string    `gorm:"column:action;not null"`
	ActorID      string    `gorm:"column:actor_id;type:text;not null"`
	ActorName    string    `gorm:"column:actor_name"`
	StatusBefore *string   `gorm:"column:status_before"`
	StatusAfter  string    `gorm:"column:status_after;not null"`
	Reason       *string   `gorm:"column:reason"`
	OccurredAt   time.Time `gorm:"column:occurred_at;not null"`
}
