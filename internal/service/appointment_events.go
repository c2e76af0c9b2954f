package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Appointment lifecycle event types
const (
	EventAppointmentBooked   = "appointment.booked"
	EventAppointmentUpdated  = "appointment.updated"
	EventAppointmentCanceled = "appointment.canceled"
	EventAppointmentDeleted  = "appointment.deleted"
)

// AppointmentEvent describes one lifecycle mutation
type AppointmentEvent struct {
	EventID       uuid.UUID `json:"event_id"`
	EventType     string    `json:"event_type"`
	AppointmentID int       `json:"appointment_id,omitempty"`
	Title         string    `json:"title"`
	UserID        uuid.UUID `json:"user_id"`
	DoctorID      int       `json:"doctor_id,omitempty"`
	PetID         int       `json:"pet_id,omitempty"`
	StartTime     time.Time `json:"start_time,omitempty"`
	EndTime       time.Time `json:"end_time,omitempty"`
	Status        string    `json:"status,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// AppointmentEventPublisher delivers lifecycle events to downstream consumers
type AppointmentEventPublisher interface {
	Publish(ctx context.Context, event AppointmentEvent) error
}

type noopEventPublisher struct{}

// NewNoopEventPublisher returns a publisher that drops every event.
// Used when no message broker is configured.
func NewNoopEventPublisher() AppointmentEventPublisher {
	return noopEventPublisher{}
}

func (noopEventPublisher) Publish(context.Context, AppointmentEvent) error {
	return nil
}
