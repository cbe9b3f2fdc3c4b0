package events_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/workhub/leave-management/internal/core/events"
)

func TestEventBus(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Event Bus Suite")
}

var _ = Describe("EventBus", func() {
	var bus *events.EventBus

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		bus = events.NewEventBus(logger)
	})

	Describe("PublishSync", func() {
		It("delivers to every subscriber in registration order", func() {
			var order []string
			bus.Subscribe(events.EventTypeLeaveApplied, func(ctx context.Context, e events.Event) error {
				order = append(order, "first")
				return nil
			})
			bus.Subscribe(events.EventTypeLeaveApplied, func(ctx context.Context, e events.Event) error {
				order = append(order, "second")
				return nil
			})

			event := events.NewLeaveAppliedEvent("req-1", 1, "casual", 2)
			Expect(bus.PublishSync(context.Background(), event)).To(Succeed())
			Expect(order).To(Equal([]string{"first", "second"}))
		})

		It("stops at the first handler error and reports it", func() {
			boom := errors.New("delivery failed")
			var reachedSecond bool
			bus.Subscribe(events.EventTypeLeaveRejected, func(ctx context.Context, e events.Event) error {
				return boom
			})
			bus.Subscribe(events.EventTypeLeaveRejected, func(ctx context.Context, e events.Event) error {
				reachedSecond = true
				return nil
			})

			event := events.NewLeaveStatusChangedEvent(
				events.EventTypeLeaveRejected, "req-1", 1, "sick", 3, "pending", "rejected", true)
			err := bus.PublishSync(context.Background(), event)

			Expect(err).To(MatchError(boom))
			Expect(reachedSecond).To(BeFalse())
		})

		It("is a no-op without subscribers", func() {
			event := events.NewLeaveAppliedEvent("req-1", 1, "sick", 1)

			Expect(bus.PublishSync(context.Background(), event)).To(Succeed())
		})
	})

	Describe("event payloads", func() {
		It("carries the application details on the applied event", func() {
			event := events.NewLeaveAppliedEvent("req-9", 4, "casual", 2)

			Expect(event.EventType()).To(Equal(events.EventTypeLeaveApplied))
			Expect(event.EventID()).ToNot(BeEmpty())
			Expect(event.RequestID).To(Equal("req-9"))
			Expect(event.AppliedDays).To(Equal(2))
		})

		It("records the transition on the status event", func() {
			event := events.NewLeaveStatusChangedEvent(
				events.EventTypeLeaveApproved, "req-9", 4, "casual", 2, "pending", "approved", false)

			Expect(event.EventType()).To(Equal(events.EventTypeLeaveApproved))
			Expect(event.PreviousStatus).To(Equal("pending"))
			Expect(event.NewStatus).To(Equal("approved"))
			Expect(event.CountersChanged).To(BeFalse())
		})
	})
})
