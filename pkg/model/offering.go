package model

import "time"

// ServiceOffering is a bookable service in a studio's catalog. Duration is
// informational only: slot generation does not use it to suppress slots
// that would overrun closing time or the lunch break.
type ServiceOffering struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	StudioID     string    `json:"studio_id" bson:"studio_id" validate:"required,min=2,max=60"`
	Name         string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	DurationMin  int       `json:"duration_min,omitempty" bson:"duration_min" validate:"omitempty,min=5,max=480"`
	PriceCents   int64     `json:"price_cents,omitempty" bson:"price_cents" validate:"omitempty,min=0"`
	DepositCents int64     `json:"deposit_cents,omitempty" bson:"deposit_cents" validate:"omitempty,min=0"`
	Active       bool      `json:"active" bson:"active"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type ServiceOfferingUpdate struct {
	Name         string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	DurationMin  *int   `json:"duration_min,omitempty" validate:"omitempty,min=5,max=480"`
	PriceCents   *int64 `json:"price_cents,omitempty" validate:"omitempty,min=0"`
	DepositCents *int64 `json:"deposit_cents,omitempty" validate:"omitempty,min=0"`
	Active       *bool  `json:"active,omitempty"`
}
