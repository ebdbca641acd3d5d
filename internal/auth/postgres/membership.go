package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// MembershipRepository reads user_bakeries with plain SQL; it runs on every guarded request.
type MembershipRepository struct {
	db *sqlx.DB
}

func NewMembershipRepository(db *sqlx.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

func (r *MembershipRepository) IsMember(ctx context.Context, userID, bakeryID string) (bool, error) {
	var count int
	query := r.db.Rebind(`SELECT COUNT(*) FROM user_bakeries WHERE user_id = ? AND bakery_id = ?`)
	if err := r.db.GetContext(ctx, &count, query, userID, bakeryID); err != nil {
		return false, fmt.Errorf("count memberships: %w", err)
	}
	return count == 1, nil
}
