package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusBooked   AppointmentStatus = "BOOKED"
	AppointmentStatusCanceled AppointmentStatus = "CANCELED"
)

// AppointmentDuration is the fixed length of every appointment
const AppointmentDuration = 30 * time.Minute

// Appointment represents a booking of a pet with a doctor made by a user
type Appointment struct {
	ID        int               `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string            `gorm:"type:varchar(100);not null;uniqueIndex:uq_appointments_user_title" json:"title"`
	StartTime time.Time         `gorm:"not null;uniqueIndex:uq_appointments_doctor_start" json:"start_time"`
	EndTime   time.Time         `gorm:"not null" json:"end_time"`
	Status    AppointmentStatus `gorm:"type:varchar(20);not null;default:'BOOKED';index" json:"status"`
	PetID     int               `gorm:"not null;index" json:"pet_id"`
	DoctorID  int               `gorm:"not null;uniqueIndex:uq_appointments_doctor_start" json:"doctor_id"`
	UserID    uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:uq_appointments_user_title" json:"user_id"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Pet    Pet    `gorm:"foreignKey:PetID" json:"pet,omitempty"`
	Doctor Doctor `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// Schedule sets the start time and derives the end time.
// The start is kept at minute precision.
func (a *Appointment) Schedule(start time.Time) {
	a.StartTime = start.Truncate(time.Minute)
	a.EndTime = a.StartTime.Add(AppointmentDuration)
}

// Cancel changes appointment status to canceled
func (a *Appointment) Cancel() {
	a.Status = AppointmentStatusCanceled
}

// IsValidAppointmentStatus reports whether s names a known status
func IsValidAppointmentStatus(s AppointmentStatus) bool {
	return s == AppointmentStatusBooked || s == AppointmentStatusCanceled
}
