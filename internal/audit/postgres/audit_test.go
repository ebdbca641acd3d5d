package postgres_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/frahmantamala/bakery-hub/internal/audit"
	auditPostgres "github.com/frahmantamala/bakery-hub/internal/audit/postgres"
	auditDatamodel "github.com/frahmantamala/bakery-hub/internal/core/datamodel/audit"
)

var _ = Describe("AuditRepository", func() {
	var (
		ctx  context.Context
		repo *auditPostgres.AuditRepository
		at   time.Time
	)

	BeforeEach(func() {
		ctx = context.Background()
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)
		DeferCleanup(sqlDB.Close)

		Expect(db.AutoMigrate(&auditDatamodel.ExpenseAuditEvent{})).To(Succeed())
		repo = auditPostgres.NewAuditRepository(db)
		at = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	})

	It("lists an expense's events oldest first", func() {
		pending := "Pending"
		Expect(repo.Append(ctx, &audit.Event{ID: "e2", ExpenseID: "exp-1", BakeryID: "b1", Action: "approved", ActorID: "m1", StatusBefore: &pending, StatusAfter: "Approved", OccurredAt: at.Add(time.Hour)})).To(Succeed())
		Expect(repo.Append(ctx, &audit.Event{ID: "e1", ExpenseID: "exp-1", BakeryID: "b1", Action: "submitted", ActorID: "u1", StatusAfter: "Pending", OccurredAt: at})).To(Succeed())
		Expect(repo.Append(ctx, &audit.Event{ID: "e3", ExpenseID: "exp-2", BakeryID: "b1", Action: "submitted", ActorID: "u1", StatusAfter: "Pending", OccurredAt: at})).To(Succeed())

		history, err := repo.ListByExpense(ctx, "exp-1")
		Expect(err).NotTo(HaveOccurred())
		Expect(history).To(HaveLen(2))
		Expect(history[0].ID).To(Equal("e1"))
		Expect(history[0].StatusBefore).To(BeNil())
		Expect(history[1].ID).To(Equal("e2"))
		Expect(*history[1].StatusBefore).To(Equal("Pending"))
	})

	It("returns an empty history for an unknown expense", func() {
		history, err := repo.ListByExpense(ctx, "missing")
		Expect(err).NotTo(HaveOccurred())
		Expect(history).To(BeEmpty())
	})
})
