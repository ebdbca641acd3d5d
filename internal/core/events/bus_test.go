package events_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/bakery-hub/internal/core/events"
)

var _ = Describe("EventBus", func() {
	var (
		ctx context.Context
		bus *events.EventBus
		at  time.Time
	)

	BeforeEach(func() {
		ctx = context.Background()
		bus = events.NewEventBus(slog.New(slog.NewTextHandler(io.Discard, nil)))
		at = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	})

	newEvent := func(eventType string) *events.ExpenseEvent {
		before := "Pending"
		return events.NewExpenseEvent(eventType, "exp-1", "b1", "u1", "Aminata", &before, "Approved", nil, at)
	}

	It("delivers synchronously to every subscriber in order", func() {
		var seen []string
		bus.Subscribe(events.EventTypeExpenseApproved, func(_ context.Context, e events.Event) error {
			seen = append(seen, "first:"+e.EventID())
			return nil
		})
		bus.Subscribe(events.EventTypeExpenseApproved, func(_ context.Context, e events.Event) error {
			seen = append(seen, "second")
			return nil
		})

		ev := newEvent(events.EventTypeExpenseApproved)
		Expect(bus.PublishSync(ctx, ev)).To(Succeed())
		Expect(seen).To(Equal([]string{"first:" + ev.EventID(), "second"}))
	})

	It("ignores event types nobody subscribed to", func() {
		Expect(bus.PublishSync(ctx, newEvent(events.EventTypeExpenseEdited))).To(Succeed())
		Expect(bus.Drain(ctx)).To(Succeed())
	})

	It("stops at the first failing subscriber", func() {
		called := false
		bus.Subscribe(events.EventTypeExpenseRejected, func(context.Context, events.Event) error {
			return errors.New("boom")
		})
		bus.Subscribe(events.EventTypeExpenseRejected, func(context.Context, events.Event) error {
			called = true
			return nil
		})

		err := bus.PublishSync(ctx, newEvent(events.EventTypeExpenseRejected))
		Expect(err).To(MatchError(ContainSubstring("boom")))
		Expect(called).To(BeFalse())
	})

	It("delivers asynchronously with a context that outlives the request", func() {
		var wg sync.WaitGroup
		wg.Add(1)
		var handlerErr error
		bus.SubscribeAsync([]string{events.EventTypeExpenseSubmitted}, func(hctx context.Context, _ events.Event) error {
			defer wg.Done()
			handlerErr = hctx.Err()
			return nil
		})

		reqCtx, cancel := context.WithCancel(ctx)
		cancel()
		Expect(bus.PublishSync(reqCtx, newEvent(events.EventTypeExpenseSubmitted))).To(Succeed())
		wg.Wait()
		Expect(handlerErr).NotTo(HaveOccurred())
	})

	It("keeps async failures away from the publisher", func() {
		inlineRan := false
		bus.SubscribeAsync([]string{events.EventTypeExpenseApproved}, func(context.Context, events.Event) error {
			return errors.New("notification down")
		})
		bus.Subscribe(events.EventTypeExpenseApproved, func(context.Context, events.Event) error {
			inlineRan = true
			return nil
		})

		Expect(bus.PublishSync(ctx, newEvent(events.EventTypeExpenseApproved))).To(Succeed())
		Expect(inlineRan).To(BeTrue())
		Expect(bus.Drain(ctx)).To(Succeed())
	})

	It("still hands the event to async subscribers when an inline one fails", func() {
		delivered := make(chan string, 1)
		bus.SubscribeAsync([]string{events.EventTypeExpenseRejected}, func(_ context.Context, e events.Event) error {
			delivered <- e.EventID()
			return nil
		})
		bus.Subscribe(events.EventTypeExpenseRejected, func(context.Context, events.Event) error {
			return errors.New("audit down")
		})

		ev := newEvent(events.EventTypeExpenseRejected)
		Expect(bus.PublishSync(ctx, ev)).To(MatchError(ContainSubstring("audit down")))
		Expect(bus.Drain(ctx)).To(Succeed())
		Expect(delivered).To(Receive(Equal(ev.EventID())))
	})

	It("drains asynchronous deliveries", func() {
		release := make(chan struct{})
		finished := false
		bus.SubscribeAsync([]string{events.EventTypeExpenseApproved}, func(context.Context, events.Event) error {
			<-release
			finished = true
			return nil
		})
		Expect(bus.PublishSync(ctx, newEvent(events.EventTypeExpenseApproved))).To(Succeed())

		short, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()
		Expect(bus.Drain(short)).To(MatchError(context.DeadlineExceeded))

		close(release)
		Expect(bus.Drain(ctx)).To(Succeed())
		Expect(finished).To(BeTrue())
	})

	It("subscribes one handler to several types", func() {
		var seen []string
		bus.SubscribeAll(events.ExpenseLifecycleTypes, func(_ context.Context, e events.Event) error {
			seen = append(seen, e.EventType())
			return nil
		})
		Expect(bus.PublishSync(ctx, newEvent(events.EventTypeExpenseSubmitted))).To(Succeed())
		Expect(bus.PublishSync(ctx, newEvent(events.EventTypeExpenseRejected))).To(Succeed())
		Expect(seen).To(Equal([]string{events.EventTypeExpenseSubmitted, events.EventTypeExpenseRejected}))
	})
})

var _ = Describe("ExpenseEvent", func() {
	It("carries the transition and derives the action", func() {
		reason := "Duplicate"
		before := "Pending"
		at := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
		ev := events.NewExpenseEvent(events.EventTypeExpenseRejected, "exp-1", "b1", "u1", "Aminata", &before, "Rejected", &reason, at)

		Expect(ev.EventID()).NotTo(BeEmpty())
		Expect(ev.OccurredAt()).To(Equal(at))
		Expect(ev.Action()).To(Equal("rejected"))
		Expect(ev.Payload()).To(HaveKeyWithValue("reason", "Duplicate"))
		Expect(ev.Payload()).To(HaveKeyWithValue("status_before", "Pending"))
	})

	It("omits absent optional fields from the payload", func() {
		ev := events.NewExpenseEvent(events.EventTypeExpenseSubmitted, "exp-1", "b1", "u1", "", nil, "Pending", nil, time.Now())
		Expect(ev.Action()).To(Equal("submitted"))
		Expect(ev.Payload()).NotTo(HaveKey("status_before"))
		Expect(ev.Payload()).NotTo(HaveKey("reason"))
	})
})
