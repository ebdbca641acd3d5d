package postgres_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/frahmantamala/bakery-hub/internal/auth"
	authPostgres "github.com/frahmantamala/bakery-hub/internal/auth/postgres"
	usermodel "github.com/frahmantamala/bakery-hub/internal/core/datamodel/user"
)

var _ = Describe("UserRepository", func() {
	var (
		ctx  context.Context
		db   *gorm.DB
		repo *authPostgres.UserRepository
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&usermodel.User{})).To(Succeed())

		bakery := "b1"
		Expect(db.Create(&usermodel.User{ID: "u1", Email: "amadou@bakery.gn", Name: "Amadou", Role: "Manager", DefaultBakeryID: &bakery, IsActive: true}).Error).To(Succeed())
		Expect(db.Create(&usermodel.User{ID: "u2", Email: "fatou@bakery.gn", Role: "Cashier", IsActive: true}).Error).To(Succeed())
		Expect(db.Create(&usermodel.User{ID: "u3", Email: "gone@bakery.gn", Role: "Editor", IsActive: true}).Error).To(Succeed())
		Expect(db.Model(&usermodel.User{}).Where("id = ?", "u3").Update("is_active", false).Error).To(Succeed())

		repo = authPostgres.NewUserRepository(db)
	})

	It("loads an active user with role and default bakery", func() {
		user, err := repo.GetActiveUserByID(ctx, "u1")
		Expect(err).NotTo(HaveOccurred())
		Expect(user.Email).To(Equal("amadou@bakery.gn"))
		Expect(user.Role).To(Equal(string(auth.RoleManager)))
		Expect(user.DefaultBakeryID).NotTo(BeNil())
		Expect(*user.DefaultBakeryID).To(Equal("b1"))
	})

	It("normalizes an unknown role to Editor", func() {
		user, err := repo.GetActiveUserByID(ctx, "u2")
		Expect(err).NotTo(HaveOccurred())
		Expect(user.Role).To(Equal(string(auth.RoleEditor)))
	})

	It("does not resolve inactive users", func() {
		_, err := repo.GetActiveUserByID(ctx, "u3")
		Expect(errors.Is(err, auth.ErrUserNotFound)).To(BeTrue())
	})

	It("does not resolve unknown users", func() {
		_, err := repo.GetActiveUserByID(ctx, "missing")
		Expect(errors.Is(err, auth.ErrUserNotFound)).To(BeTrue())
	})
})
