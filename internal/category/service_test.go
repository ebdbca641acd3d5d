package category_test

import (
	"context"
	"errors"
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/bakery-hub/internal/category"
	categoryDatamodel "github.com/frahmantamala/bakery-hub/internal/core/datamodel/category"
)

type mockCategoryRepository struct {
	categories []*categoryDatamodel.Category
	groups     []*categoryDatamodel.ExpenseGroup
	err        error
}

func (m *mockCategoryRepository) GetActiveCategories(context.Context) ([]*categoryDatamodel.Category, error) {
	return m.categories, m.err
}

func (m *mockCategoryRepository) GetActiveGroups(context.Context) ([]*categoryDatamodel.ExpenseGroup, error) {
	return m.groups, nil
}

var _ = Describe("Category Service", func() {
	var (
		repo    *mockCategoryRepository
		service *category.Service
	)

	BeforeEach(func() {
		repo = &mockCategoryRepository{}
		service = category.NewService(repo, slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})))
	})

	It("orders categories by group sort order, then name, with ungrouped last", func() {
		ingredients := &categoryDatamodel.ExpenseGroup{ID: "g1", Key: "ingredients", Label: "Ingredients", SortOrder: 1, IsActive: true}
		utilities := &categoryDatamodel.ExpenseGroup{ID: "g2", Key: "utilities", Label: "Utilities", SortOrder: 2, IsActive: true}
		repo.groups = []*categoryDatamodel.ExpenseGroup{utilities, ingredients}
		repo.categories = []*categoryDatamodel.Category{
			{ID: "c1", Name: "Electricity", ExpenseGroupID: &utilities.ID, ExpenseGroup: utilities, IsActive: true},
			{ID: "c2", Name: "Sugar", ExpenseGroupID: &ingredients.ID, ExpenseGroup: ingredients, IsActive: true},
			{ID: "c3", Name: "Misc", IsActive: true},
			{ID: "c4", Name: "Flour", ExpenseGroupID: &ingredients.ID, ExpenseGroup: ingredients, IsActive: true},
			{ID: "c5", Name: "Gas", ExpenseGroupID: &utilities.ID, ExpenseGroup: utilities, IsActive: false},
		}

		catalog, err := service.GetCatalog(context.Background())
		Expect(err).NotTo(HaveOccurred())

		names := []string{}
		for _, c := range catalog.Categories {
			names = append(names, c.Name)
		}
		Expect(names).To(Equal([]string{"Flour", "Sugar", "Electricity", "Misc"}))

		Expect(catalog.ExpenseGroups).To(HaveLen(2))
		Expect(catalog.ExpenseGroups[0].Key).To(Equal("ingredients"))
		Expect(catalog.Categories[0].ExpenseGroup.Label).To(Equal("Ingredients"))
	})

	It("returns an internal error when the repository fails", func() {
		repo.err = errors.New("connection refused")

		catalog, err := service.GetCatalog(context.Background())
		Expect(err).To(HaveOccurred())
		Expect(catalog).To(BeNil())
	})
})
