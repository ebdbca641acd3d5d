package user

import (
	"github.com/frahmantamala/bakery-hub/internal"
	"github.com/frahmantamala/bakery-hub/internal/auth"
)

type User struct {
	ID              string    `json:"id" db:"id"`
	Email           string    `json:"email" db:"email"`
	Name            string    `json:"name" db:"name"`
	Role            auth.Role `json:"role" db:"role"`
	DefaultBakeryID *string   `json:"defaultBakeryId" db:"default_bakery_id"`
}

type Bakery struct {
	ID       string `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Location string `json:"location" db:"location"`
	Currency string `json:"currency" db:"currency"`
}

type Me struct {
	User     *User     `json:"user"`
	Bakeries []*Bakery `json:"bakeries"`
}

func FromIdentity(u *internal.User) *User {
	return &User{
		ID:              u.ID,
		Email:           u.Email,
		Name:            u.Name,
		Role:            auth.RoleOf(u),
		DefaultBakeryID: u.DefaultBakeryID,
	}
}
