package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/frahmantamala/bakery-hub/internal"
	expenseDatamodel "github.com/frahmantamala/bakery-hub/internal/core/datamodel/expense"
	"github.com/frahmantamala/bakery-hub/internal/expense"
	"github.com/frahmantamala/bakery-hub/internal/summary"
)

// Accruer applies a daily summary accrual inside a caller-owned transaction.
type Accruer interface {
	AccrueTx(tx *gorm.DB, a summary.Accrual) error
}

// ExpenseRepository implements the expense.Repository interface using GORM
type ExpenseRepository struct {
	db      *gorm.DB
	accruer Accruer
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB, accruer Accruer) *ExpenseRepository {
	return &ExpenseRepository{db: db, accruer: accruer}
}

func (r *ExpenseRepository) Create(ctx context.Context, e *expense.Expense) error {
	row := expense.ToDataModel(e)
	if err := r.db.WithContext(ctx).Omit("Category", "Supplier").Create(row).Error; err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	e.CreatedAt = row.CreatedAt
	e.UpdatedAt = row.UpdatedAt
	return nil
}

// GetByID retrieves an expense with its category and supplier
func (r *ExpenseRepository) GetByID(ctx context.Context, id string) (*expense.Expense, error) {
	var row expenseDatamodel.Expense
	err := r.db.WithContext(ctx).
		Preload("Category").Preload("Supplier").
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrExpenseNotFound
		}
		return nil, fmt.Errorf("get expense %s: %w", id, err)
	}
	return expense.FromDataModel(&row), nil
}

// List returns a bakery's expenses, newest first
func (r *ExpenseRepository) List(ctx context.Context, q expense.ListExpensesQuery) ([]*expense.Expense, error) {
	var rows []*expenseDatamodel.Expense
	db := r.db.WithContext(ctx).
		Preload("Category").Preload("Supplier").
		Where("bakery_id = ?", q.BakeryID)
	if q.Status != "" {
		db = db.Where("status = ?", q.Status)
	}
	err := db.Order("date DESC").Order("created_at DESC").
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expense.FromDataModelSlice(rows), nil
}

// UpdateIfStatus writes every editable column, guarded by the status that was read.
func (r *ExpenseRepository) UpdateIfStatus(ctx context.Context, e *expense.Expense, expected expense.Status) (*expense.Expense, error) {
	row := expense.ToDataModel(e)
	res := r.db.WithContext(ctx).
		Model(&expenseDatamodel.Expense{}).
		Where("id = ? AND status = ?", e.ID, string(expected)).
		Updates(map[string]interface{}{
			"category_id":           row.CategoryID,
			"category_name":         row.CategoryName,
			"amount_gnf":            row.AmountGNF,
			"amount_eur":            row.AmountEUR,
			"payment_method":        row.PaymentMethod,
			"status":                row.Status,
			"description":           row.Description,
			"receipt_url":           row.ReceiptURL,
			"comments":              row.Comments,
			"transaction_ref":       row.TransactionRef,
			"supplier_id":           row.SupplierID,
			"is_inventory_purchase": row.IsInventoryPurchase,
			"last_modified_by":      row.LastModifiedBy,
			"last_modified_by_name": row.LastModifiedByName,
			"last_modified_at":      row.LastModifiedAt,
			"updated_at":            row.UpdatedAt,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("update expense %s: %w", e.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, internal.ErrStatusChanged
	}
	return r.GetByID(ctx, e.ID)
}

// ApplyDecision moves the status and applies the accrual in one transaction.
// The status update is conditional, so a second decision on the same expense
// affects no rows and rolls back without accruing.
func (r *ExpenseRepository) ApplyDecision(ctx context.Context, d expense.Decision) (*expense.Expense, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":           string(d.NewStatus),
			"approved_by":      d.ApproverID,
			"approved_by_name": d.ApproverName,
			"approved_at":      d.At,
			"updated_at":       d.At,
		}
		if d.Comments != nil {
			updates["comments"] = *d.Comments
		}

		res := tx.Model(&expenseDatamodel.Expense{}).
			Where("id = ? AND status = ?", d.ExpenseID, string(d.Expected)).
			Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("update expense status: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return internal.ErrStatusChanged
		}

		if d.Accrual != nil {
			if err := r.accruer.AccrueTx(tx, *d.Accrual); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, d.ExpenseID)
}
