package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/frahmantamala/bakery-hub/internal/audit"
	auditDatamodel "github.com/frahmantamala/bakery-hub/internal/core/datamodel/audit"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Append(ctx context.Context, e *audit.Event) error {
	if err := r.db.WithContext(ctx).Create(audit.ToDataModel(e)).Error; err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListByExpense returns the events oldest first.
func (r *AuditRepository) ListByExpense(ctx context.Context, expenseID string) ([]*audit.Event, error) {
	var rows []*auditDatamodel.ExpenseAuditEvent
	err := r.db.WithContext(ctx).
		Where("expense_id = ?", expenseID).
		Order("occurred_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}

	result := make([]*audit.Event, len(rows))
	for i, row := range rows {
		result[i] = audit.FromDataModel(row)
	}
	return result, nil
}
