package category

import (
	categoryDatamodel "github.com/frahmantamala/bakery-hub/internal/core/datamodel/category"
)

type ExpenseGroup struct {
	ID        string `json:"id"`
	Key       string `json:"key"`
	Label     string `json:"label"`
	LabelFr   string `json:"labelFr"`
	Icon      string `json:"icon,omitempty"`
	Color     string `json:"color,omitempty"`
	SortOrder int    `json:"sortOrder"`
	IsActive  bool   `json:"isActive"`
}

type Category struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	NameFr         string        `json:"nameFr"`
	Color          string        `json:"color,omitempty"`
	ExpenseGroupID *string       `json:"expenseGroupId"`
	ExpenseGroup   *ExpenseGroup `json:"expenseGroup,omitempty"`
	IsActive       bool          `json:"isActive"`
}

func (c *Category) IsActiveCategory() bool {
	return c.IsActive
}

func GroupFromDataModel(g *categoryDatamodel.ExpenseGroup) *ExpenseGroup {
	return &ExpenseGroup{
		ID:        g.ID,
		Key:       g.Key,
		Label:     g.Label,
		LabelFr:   g.LabelFr,
		Icon:      g.Icon,
		Color:     g.Color,
		SortOrder: g.SortOrder,
		IsActive:  g.IsActive,
	}
}

func FromDataModel(c *categoryDatamodel.Category) *Category {
	result := &Category{
		ID:             c.ID,
		Name:           c.Name,
		NameFr:         c.NameFr,
		Color:          c.Color,
		ExpenseGroupID: c.ExpenseGroupID,
		IsActive:       c.IsActive,
	}
	if c.ExpenseGroup != nil {
		result.ExpenseGroup = GroupFromDataModel(c.ExpenseGroup)
	}
	return result
}

func ToDataModel(c *Category) *categoryDatamodel.Category {
	return &categoryDatamodel.Category{
		ID:             c.ID,
		Name:           c.Name,
		NameFr:         c.NameFr,
		Color:          c.Color,
		ExpenseGroupID: c.ExpenseGroupID,
		IsActive:       c.IsActive,
	}
}
