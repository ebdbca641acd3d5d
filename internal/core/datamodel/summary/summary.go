package summary

import "time"

// DailySummary holds approved totals for one bakery and one calendar day.
// Date is stored as midnight UTC of that calendar day.
type DailySummary struct {
	ID                  string    `gorm:"primaryKey;type:text"`
	BakeryID            string    `gorm:"column:bakery_id;type:text;not null;uniqueIndex:idx_daily_summary_bakery_date"`
	Date                time.Time `gorm:"column:date;not null;uniqueIndex:idx_daily_summary_bakery_date"`
	DailyCashExpenses   int64     `gorm:"column:daily_cash_expenses;not null;default:0"`
	DailyOrangeExpenses int64     `gorm:"column:daily_orange_expenses;not null;default:0"`
	DailyCardExpenses   int64     `gorm:"column:daily_card_expenses;not null;default:0"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (DailySummary) TableName() string { return "daily_summaries" }
