package service

import (
	"context"

	"atelier/pkg/kafka"
	"atelier/pkg/logger"
	"atelier/pkg/model"
)

const (
	// TopicBookingRequests carries booking request lifecycle events,
	// keyed by studio ID so a studio's events stay ordered.
	TopicBookingRequests = "booking-requests"

	// TopicBookingRequestsDLQ receives events that could not be
	// delivered or processed.
	TopicBookingRequestsDLQ = "booking-requests.dlq"

	EventTypeRequestCreated       = "booking_request.created"
	EventTypeRequestStatusChanged = "booking_request.status_changed"

	eventSchemaVersion = "1"
)

// RequestCreatedEvent is the payload published when a booking request
// is persisted.
type RequestCreatedEvent struct {
	RequestID      string `json:"request_id"`
	StudioID       string `json:"studio_id"`
	ServiceID      string `json:"service_id"`
	ClientName     string `json:"client_name"`
	ClientPhone    string `json:"client_phone"`
	PreferredDates string `json:"preferred_dates"`
	CreatedAt      string `json:"created_at"`
}

// RequestStatusChangedEvent is the payload published when a studio
// moves a request through its pipeline.
type RequestStatusChangedEvent struct {
	RequestID string `json:"request_id"`
	StudioID  string `json:"studio_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// EventPublisher abstracts the broker so the service can be tested
// without one.
type EventPublisher interface {
	PublishRequestCreated(ctx context.Context, req *model.BookingRequest) error
	PublishStatusChanged(ctx context.Context, req *model.BookingRequest, oldStatus string) error
}

type kafkaEventPublisher struct {
	producer *kafka.Producer
	source   string
	log      *logger.Logger
}

func NewKafkaEventPublisher(producer *kafka.Producer, source string, log *logger.Logger) EventPublisher {
	return &kafkaEventPublisher{
		producer: producer,
		source:   source,
		log:      log,
	}
}

func (p *kafkaEventPublisher) PublishRequestCreated(ctx context.Context, req *model.BookingRequest) error {
	event := RequestCreatedEvent{
		RequestID:      req.ID,
		StudioID:       req.StudioID,
		ServiceID:      req.ServiceID,
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		PreferredDates: req.PreferredDates,
		CreatedAt:      req.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}

	msg := kafka.NewMessage().
		WithKey(req.StudioID).
		WithValue(event).
		WithEventID("").
		WithEventType(EventTypeRequestCreated).
		WithSchemaVersion(eventSchemaVersion).
		WithSource(p.source).
		Build()

	return p.producer.Publish(ctx, msg)
}

func (p *kafkaEventPublisher) PublishStatusChanged(ctx context.Context, req *model.BookingRequest, oldStatus string) error {
	event := RequestStatusChangedEvent{
		RequestID: req.ID,
		StudioID:  req.StudioID,
		OldStatus: oldStatus,
		NewStatus: req.Status,
	}

	msg := kafka.NewMessage().
		WithKey(req.StudioID).
		WithValue(event).
		WithEventID("").
		WithEventType(EventTypeRequestStatusChanged).
		WithSchemaVersion(eventSchemaVersion).
		WithSource(p.source).
		Build()

	return p.producer.Publish(ctx, msg)
}
