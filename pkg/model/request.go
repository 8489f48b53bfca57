package model

import "time"

const (
	RequestStatusPending   = "pending"
	RequestStatusContacted = "contacted"
	RequestStatusClosed    = "closed"
)

// BookingRequest is the persisted record produced by a successful workflow
// submission. It is distinct from a confirmed appointment, which is created
// by a separate approval step.
type BookingRequest struct {
	ID             string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	StudioID       string    `json:"studio_id" bson:"studio_id" validate:"required,min=2,max=60"`
	ServiceID      string    `json:"service_id" bson:"service_id" validate:"required,mongodb"`
	ClientName     string    `json:"client_name" bson:"client_name" validate:"required,min=2,max=100"`
	ClientPhone    string    `json:"client_phone" bson:"client_phone" validate:"required,e164"`
	Message        string    `json:"message" bson:"message" validate:"required,min=2,max=2000"`
	PreferredDates string    `json:"preferred_dates" bson:"preferred_dates" validate:"required,min=2,max=200"`
	Status         string    `json:"status" bson:"status" validate:"required,oneof=pending contacted closed"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type BookingRequestUpdate struct {
	Status string `json:"status,omitempty" validate:"omitempty,oneof=pending contacted closed"`
}

// BookingRequestInput is what the workflow hands to the submission
// collaborator. Client identity comes from the session, not the draft.
type BookingRequestInput struct {
	StudioID       string `json:"studio_id"`
	ServiceID      string `json:"service_id"`
	ClientName     string `json:"client_name,omitempty"`
	ClientPhone    string `json:"client_phone,omitempty"`
	Message        string `json:"message"`
	PreferredDates string `json:"preferred_dates"`
}
