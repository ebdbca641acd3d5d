package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	summaryDatamodel "github.com/frahmantamala/bakery-hub/internal/core/datamodel/summary"
	"github.com/frahmantamala/bakery-hub/internal/summary"
)

type SummaryRepository struct {
	db *gorm.DB
}

func NewSummaryRepository(db *gorm.DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// AccrueTx adds the buckets to the (bakery, day) row with a single
// INSERT ... ON CONFLICT DO UPDATE, creating the row when it does not exist.
// The increment is computed by the database, never from a value read earlier.
func (r *SummaryRepository) AccrueTx(tx *gorm.DB, a summary.Accrual) error {
	now := time.Now()
	row := summaryDatamodel.DailySummary{
		ID:                  uuid.NewString(),
		BakeryID:            a.BakeryID,
		Date:                a.Day,
		DailyCashExpenses:   a.Buckets.Cash,
		DailyOrangeExpenses: a.Buckets.Orange,
		DailyCardExpenses:   a.Buckets.Card,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "bakery_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"daily_cash_expenses":   gorm.Expr("daily_summaries.daily_cash_expenses + ?", a.Buckets.Cash),
			"daily_orange_expenses": gorm.Expr("daily_summaries.daily_orange_expenses + ?", a.Buckets.Orange),
			"daily_card_expenses":   gorm.Expr("daily_summaries.daily_card_expenses + ?", a.Buckets.Card),
			"updated_at":            now,
		}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("accrue daily summary %s/%s: %w", a.BakeryID, a.Day.Format(summary.DateLayout), err)
	}
	return nil
}

func (r *SummaryRepository) List(ctx context.Context, bakeryID string, from, to time.Time) ([]*summary.DailySummary, error) {
	var rows []*summaryDatamodel.DailySummary
	err := r.db.WithContext(ctx).
		Where("bakery_id = ? AND date >= ? AND date <= ?", bakeryID, from, to).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list daily summaries: %w", err)
	}
	return summary.FromDataModelSlice(rows), nil
}
