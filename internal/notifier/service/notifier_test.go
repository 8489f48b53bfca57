package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	requestevents "atelier/internal/requests/service"
	"atelier/pkg/kafka"
	"atelier/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureChannel struct {
	delivered []Notification
	err       error
}

func (c *captureChannel) Deliver(_ context.Context, n Notification) error {
	if c.err != nil {
		return c.err
	}
	c.delivered = append(c.delivered, n)
	return nil
}

func testNotifier() (*Notifier, *captureChannel) {
	channel := &captureChannel{}
	log := logger.New(logger.Config{Level: "error", Format: logger.FormatText})
	return NewNotifier(channel, log), channel
}

func eventMessage(t *testing.T, eventType string, payload any) kafka.Message {
	t.Helper()
	value, err := json.Marshal(payload)
	require.NoError(t, err)
	return kafka.NewMessage().
		WithKey("glow-studio").
		WithRawValue(value).
		WithEventType(eventType).
		WithSource("test").
		Build()
}

func TestNotifier_RequestCreated(t *testing.T) {
	notifier, channel := testNotifier()

	msg := eventMessage(t, requestevents.EventTypeRequestCreated, requestevents.RequestCreatedEvent{
		RequestID:      "req-1",
		StudioID:       "glow-studio",
		ClientName:     "Dana",
		ClientPhone:    "+14155552671",
		PreferredDates: "Wed, Mar 6 at 1:30pm",
	})

	require.NoError(t, notifier.HandleMessage(context.Background(), msg))

	require.Len(t, channel.delivered, 1)
	n := channel.delivered[0]
	assert.Equal(t, "glow-studio", n.StudioID)
	assert.Equal(t, "New booking request", n.Title)
	assert.Contains(t, n.Body, "Dana")
	assert.Contains(t, n.Body, "Wed, Mar 6 at 1:30pm")
}

func TestNotifier_StatusChanged(t *testing.T) {
	notifier, channel := testNotifier()

	msg := eventMessage(t, requestevents.EventTypeRequestStatusChanged, requestevents.RequestStatusChangedEvent{
		RequestID: "req-1",
		StudioID:  "glow-studio",
		OldStatus: "pending",
		NewStatus: "contacted",
	})

	require.NoError(t, notifier.HandleMessage(context.Background(), msg))

	require.Len(t, channel.delivered, 1)
	assert.Contains(t, channel.delivered[0].Body, "pending")
	assert.Contains(t, channel.delivered[0].Body, "contacted")
}

func TestNotifier_UnknownEventTypeSkipped(t *testing.T) {
	notifier, channel := testNotifier()

	msg := eventMessage(t, "booking_request.vanished", map[string]string{"request_id": "req-1"})

	require.NoError(t, notifier.HandleMessage(context.Background(), msg))
	assert.Empty(t, channel.delivered)
}

func TestNotifier_MalformedPayloadFails(t *testing.T) {
	notifier, channel := testNotifier()

	msg := kafka.NewMessage().
		WithKey("glow-studio").
		WithRawValue([]byte("{not json")).
		WithEventType(requestevents.EventTypeRequestCreated).
		Build()

	require.Error(t, notifier.HandleMessage(context.Background(), msg))
	assert.Empty(t, channel.delivered)
}

func TestNotifier_ChannelErrorPropagates(t *testing.T) {
	notifier, channel := testNotifier()
	channel.err = errors.New("delivery down")

	msg := eventMessage(t, requestevents.EventTypeRequestCreated, requestevents.RequestCreatedEvent{
		RequestID: "req-1",
		StudioID:  "glow-studio",
	})

	assert.Error(t, notifier.HandleMessage(context.Background(), msg))
}
