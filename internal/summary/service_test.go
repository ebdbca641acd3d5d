package summary_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/bakery-hub/internal"
	"github.com/frahmantamala/bakery-hub/internal/auth"
	"github.com/frahmantamala/bakery-hub/internal/summary"
)

type mockSummaryRepository struct {
	from, to  time.Time
	bakeryID  string
	summaries []*summary.DailySummary
	err       error
}

func (m *mockSummaryRepository) List(_ context.Context, bakeryID string, from, to time.Time) ([]*summary.DailySummary, error) {
	m.bakeryID, m.from, m.to = bakeryID, from, to
	return m.summaries, m.err
}

type memberSet map[string]bool

func (m memberSet) IsMember(_ context.Context, userID, bakeryID string) (bool, error) {
	return m[userID+"/"+bakeryID], nil
}

var _ = Describe("Summary Service", func() {
	var (
		ctx     context.Context
		repo    *mockSummaryRepository
		service *summary.Service
		user    *internal.User
	)

	BeforeEach(func() {
		ctx = context.Background()
		repo = &mockSummaryRepository{}
		user = &internal.User{ID: "u1", Role: "Editor"}
		now := time.Date(2024, 3, 31, 18, 0, 0, 0, time.UTC)

		service = summary.NewService(repo, auth.NewGuard(memberSet{"u1/b1": true}), time.UTC,
			slog.New(slog.NewTextHandler(io.Discard, nil)),
			summary.WithClock(func() time.Time { return now }),
		)
	})

	It("defaults to the last 30 days ending today", func() {
		_, err := service.ListDaily(ctx, user, summary.RangeQuery{BakeryID: "b1"})
		Expect(err).NotTo(HaveOccurred())
		Expect(repo.bakeryID).To(Equal("b1"))
		Expect(repo.to).To(Equal(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)))
		Expect(repo.from).To(Equal(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)))
	})

	It("uses explicit bounds", func() {
		_, err := service.ListDaily(ctx, user, summary.RangeQuery{BakeryID: "b1", From: "2024-01-01", To: "2024-01-31"})
		Expect(err).NotTo(HaveOccurred())
		Expect(repo.from).To(Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
		Expect(repo.to).To(Equal(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)))
	})

	It("counts back 30 days from an explicit end", func() {
		_, err := service.ListDaily(ctx, user, summary.RangeQuery{BakeryID: "b1", To: "2024-02-29"})
		Expect(err).NotTo(HaveOccurred())
		Expect(repo.from).To(Equal(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)))
	})

	DescribeTable("rejects bad ranges",
		func(from, to string) {
			_, err := service.ListDaily(ctx, user, summary.RangeQuery{BakeryID: "b1", From: from, To: to})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidDate))
		},
		Entry("unparseable from", "03/01/2024", ""),
		Entry("unparseable to", "", "tomorrow"),
		Entry("from after to", "2024-02-02", "2024-02-01"),
	)

	It("requires a bakery", func() {
		_, err := service.ListDaily(ctx, user, summary.RangeQuery{})
		Expect(errors.Is(err, internal.ErrBakeryRequired)).To(BeTrue())
	})

	It("forbids other bakeries", func() {
		_, err := service.ListDaily(ctx, user, summary.RangeQuery{BakeryID: "b2"})
		Expect(errors.Is(err, internal.ErrNotBakeryMember)).To(BeTrue())
	})

	It("wraps storage failures", func() {
		repo.err = errors.New("timeout")
		_, err := service.ListDaily(ctx, user, summary.RangeQuery{BakeryID: "b1"})
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.StatusCode).To(Equal(500))
	})
})
