package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs
// Times are accepted as RFC 3339 or as clinic-local "2006-01-02T15:04".

type CreateAppointmentRequest struct {
	Title     string `json:"title" validate:"required,notblank,max=100"`
	StartTime string `json:"start_time" validate:"required"`
	DoctorID  int    `json:"doctor_id" validate:"gt=0"`
	PetID     int    `json:"pet_id" validate:"gt=0"`
}

// AdminCreateAppointmentRequest books on behalf of another user
type AdminCreateAppointmentRequest struct {
	CreateAppointmentRequest
	UserID uuid.UUID `json:"user_id" validate:"required"`
}

// EditAppointmentRequest identifies the appointment by OldTitle.
// OldStartTime is optional; when empty the stored start time is used.
type EditAppointmentRequest struct {
	OldTitle     string `json:"old_title" validate:"required,notblank,max=100"`
	OldStartTime string `json:"old_start_time"`
	Title        string `json:"title" validate:"required,notblank,max=100"`
	StartTime    string `json:"start_time" validate:"required"`
	DoctorID     int    `json:"doctor_id" validate:"gt=0"`
	PetID        int    `json:"pet_id" validate:"gt=0"`
	Status       string `json:"status" validate:"omitempty,oneof=BOOKED CANCELED"`
}

type AdminEditAppointmentRequest struct {
	EditAppointmentRequest
	UserID uuid.UUID `json:"user_id" validate:"required"`
}

type CancelAppointmentRequest struct {
	Title string `json:"title" validate:"required,notblank,max=100"`
}

type AdminDeleteAppointmentRequest struct {
	Title  string    `json:"title" validate:"required,notblank,max=100"`
	UserID uuid.UUID `json:"user_id" validate:"required"`
}

// Response DTOs

type AppointmentResponse struct {
	ID        int             `json:"id"`
	Title     string          `json:"title"`
	StartTime time.Time       `json:"start_time"`
	EndTime   time.Time       `json:"end_time"`
	Status    string          `json:"status"`
	PetID     int             `json:"pet_id"`
	DoctorID  int             `json:"doctor_id"`
	UserID    uuid.UUID       `json:"user_id"`
	Pet       *PetResponse    `json:"pet,omitempty"`
	Doctor    *DoctorResponse `json:"doctor,omitempty"`
	User      *UserResponse   `json:"user,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

type FreeSlotsResponse struct {
	Date     string      `json:"date"`
	DoctorID int         `json:"doctor_id"`
	Slots    []time.Time `json:"slots"`
}

// BookingOptionsResponse lists the doctors and pets that may be booked
type BookingOptionsResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Pets    []PetResponse    `json:"pets"`
}
