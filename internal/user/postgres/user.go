package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/frahmantamala/bakery-hub/internal/user"
)

type BakeryRepository struct {
	db *sqlx.DB
}

func NewBakeryRepository(db *sqlx.DB) *BakeryRepository {
	return &BakeryRepository{db: db}
}

func (r *BakeryRepository) ListBakeries(ctx context.Context, userID string) ([]*user.Bakery, error) {
	bakeries := []*user.Bakery{}
	query := r.db.Rebind(`
SELECT b.id, b.name, COALESCE(b.location, '') AS location, COALESCE(b.currency, 'GNF') AS currency
FROM bakeries b
JOIN user_bakeries ub ON ub.bakery_id = b.id
WHERE ub.user_id = ? AND b.is_active = ?
ORDER BY b.name
`)
	if err := r.db.SelectContext(ctx, &bakeries, query, userID, true); err != nil {
		return nil, fmt.Errorf("list bakeries for user: %w", err)
	}
	return bakeries, nil
}
