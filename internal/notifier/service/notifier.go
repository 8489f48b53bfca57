package service

import (
	"context"
	"fmt"

	requestevents "atelier/internal/requests/service"
	"atelier/pkg/kafka"
	"atelier/pkg/logger"
)

// Notification is what gets handed to a delivery channel. The channel
// decides how to render it (push, SMS, email digest).
type Notification struct {
	StudioID string
	Title    string
	Body     string
}

// Channel delivers a notification to a studio operator.
type Channel interface {
	Deliver(ctx context.Context, n Notification) error
}

// LogChannel writes notifications to the service log. It stands in for
// a real delivery integration and keeps the consumer end-to-end testable.
type LogChannel struct {
	log *logger.Logger
}

func NewLogChannel(log *logger.Logger) *LogChannel {
	return &LogChannel{log: log}
}

func (c *LogChannel) Deliver(_ context.Context, n Notification) error {
	c.log.Info("Notification delivered",
		"studio_id", n.StudioID,
		"title", n.Title,
		"body", n.Body,
	)
	return nil
}

// Notifier consumes booking request lifecycle events and turns them
// into operator notifications.
type Notifier struct {
	channel Channel
	log     *logger.Logger
}

func NewNotifier(channel Channel, log *logger.Logger) *Notifier {
	return &Notifier{
		channel: channel,
		log:     log,
	}
}

// HandleMessage is the kafka consumer entrypoint. Unknown event types
// are acknowledged and skipped; failing on them would only cycle the
// message through the retry path into the DLQ.
func (n *Notifier) HandleMessage(ctx context.Context, msg kafka.Message) error {
	switch msg.GetEventType() {
	case requestevents.EventTypeRequestCreated:
		return n.handleCreated(ctx, msg)
	case requestevents.EventTypeRequestStatusChanged:
		return n.handleStatusChanged(ctx, msg)
	default:
		n.log.Warn("Skipping unknown event type",
			"event_type", msg.GetEventType(),
			"event_id", msg.GetEventID(),
		)
		return nil
	}
}

func (n *Notifier) handleCreated(ctx context.Context, msg kafka.Message) error {
	var event requestevents.RequestCreatedEvent
	if err := msg.DecodeValue(&event); err != nil {
		return fmt.Errorf("failed to decode created event: %w", err)
	}

	return n.channel.Deliver(ctx, Notification{
		StudioID: event.StudioID,
		Title:    "New booking request",
		Body: fmt.Sprintf("%s asked for %s. Reach them at %s.",
			event.ClientName, event.PreferredDates, event.ClientPhone),
	})
}

func (n *Notifier) handleStatusChanged(ctx context.Context, msg kafka.Message) error {
	var event requestevents.RequestStatusChangedEvent
	if err := msg.DecodeValue(&event); err != nil {
		return fmt.Errorf("failed to decode status event: %w", err)
	}

	return n.channel.Deliver(ctx, Notification{
		StudioID: event.StudioID,
		Title:    "Booking request updated",
		Body:     fmt.Sprintf("Request %s moved from %s to %s.", event.RequestID, event.OldStatus, event.NewStatus),
	})
}
