package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/frahmantamala/bakery-hub/internal"
	"github.com/frahmantamala/bakery-hub/internal/auth"
	usermodel "github.com/frahmantamala/bakery-hub/internal/core/datamodel/user"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetActiveUserByID(ctx context.Context, userID string) (*internal.User, error) {
	var row usermodel.User
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", userID, true).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user %s: %w", userID, err)
	}

	return &internal.User{
		ID:              row.ID,
		Email:           row.Email,
		Name:            row.Name,
		Role:            string(auth.ParseRole(row.Role)),
		DefaultBakeryID: row.DefaultBakeryID,
	}, nil
}
