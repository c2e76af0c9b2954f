package repository

import (
	"context"
	"time"

	"vet-clinic/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentRepository is the durable store behind the scheduling core.
// Start-time lookups match at minute precision.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	Update(ctx context.Context, appointment *entity.Appointment) error
	UpdateStatus(ctx context.Context, id int, status entity.AppointmentStatus) error
	DeleteByTitleAndUser(ctx context.Context, title string, userID uuid.UUID) error
	ExistsByStartTimeAndDoctor(ctx context.Context, startTime time.Time, doctorID int) (bool, error)
	ExistsByStartTimeAndUser(ctx context.Context, startTime time.Time, userID uuid.UUID) (bool, error)
	ExistsByTitleAndUser(ctx context.Context, title string, userID uuid.UUID) (bool, error)
	FindByTitleAndUser(ctx context.Context, title string, userID uuid.UUID) (*entity.Appointment, error)
	FindByTitleAndUserSurname(ctx context.Context, title, surname string) (*entity.Appointment, error)
	FindAllByUserFutureAndStatus(ctx context.Context, userID uuid.UUID, status entity.AppointmentStatus, now time.Time) ([]entity.Appointment, error)
	FindAll(ctx context.Context) ([]entity.Appointment, error)
	FindStartTimesByDoctorBetween(ctx context.Context, doctorID int, from, to time.Time) ([]time.Time, error)
}
