package events_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rosterguard/roster-guardian/internal/core/events"
)

func TestEventBus(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Event Bus Suite")
}

var _ = Describe("EventBus", func() {
	var bus *events.EventBus

	BeforeEach(func() {
		bus = events.NewEventBus(slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	It("should deliver a published event to its subscriber", func() {
		received := make(chan events.Event, 1)
		bus.Subscribe(events.EventTypeIssueCreated, func(ctx context.Context, event events.Event) error {
			received <- event
			return nil
		})

		err := bus.Publish(context.Background(), events.NewIssueCreatedEvent(42, "VPN down", "2025-03-10", 7))
		Expect(err).NotTo(HaveOccurred())

		var got events.Event
		Eventually(received).Should(Receive(&got))
		Expect(got.EventType()).To(Equal(events.EventTypeIssueCreated))
		Expect(got.(*events.IssueCreatedEvent).IssueID).To(Equal(int64(42)))
	})

	It("should fan out to every subscriber of the type", func() {
		first := make(chan struct{}, 1)
		second := make(chan struct{}, 1)
		bus.Subscribe(events.EventTypeCommentAdded, func(ctx context.Context, event events.Event) error {
			first <- struct{}{}
			return nil
		})
		bus.Subscribe(events.EventTypeCommentAdded, func(ctx context.Context, event events.Event) error {
			second <- struct{}{}
			return nil
		})

		Expect(bus.Publish(context.Background(), events.NewCommentAddedEvent(1, 42, 7))).To(Succeed())

		Eventually(first).Should(Receive())
		Eventually(second).Should(Receive())
	})

	It("should not deliver to subscribers of other types", func() {
		received := make(chan struct{}, 1)
		bus.Subscribe(events.EventTypeIssueStatusChanged, func(ctx context.Context, event events.Event) error {
			received <- struct{}{}
			return nil
		})

		Expect(bus.Publish(context.Background(), events.NewCommentAddedEvent(1, 42, 7))).To(Succeed())
		Consistently(received).ShouldNot(Receive())
	})

	It("should accept an event nothing listens for", func() {
		Expect(bus.Publish(context.Background(), events.NewIssueCreatedEvent(1, "t", "2025-03-10", 7))).To(Succeed())
	})
})
