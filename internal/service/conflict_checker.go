package service

import (
	"context"
	"time"

	"vet-clinic/internal/domain/repository"

	"github.com/google/uuid"
)

// ConflictChecker reports whether a start time is already taken.
// Any stored appointment counts, canceled ones included.
type ConflictChecker interface {
	DoctorBusy(ctx context.Context, startTime time.Time, doctorID int) (bool, error)
	UserBusy(ctx context.Context, startTime time.Time, userID uuid.UUID) (bool, error)
}

type conflictChecker struct {
	appointmentRepo repository.AppointmentRepository
}

func NewConflictChecker(appointmentRepo repository.AppointmentRepository) ConflictChecker {
	return &conflictChecker{appointmentRepo: appointmentRepo}
}

func (c *conflictChecker) DoctorBusy(ctx context.Context, startTime time.Time, doctorID int) (bool, error) {
	return c.appointmentRepo.ExistsByStartTimeAndDoctor(ctx, startTime.Truncate(time.Minute), doctorID)
}

func (c *conflictChecker) UserBusy(ctx context.Context, startTime time.Time, userID uuid.UUID) (bool, error) {
	return c.appointmentRepo.ExistsByStartTimeAndUser(ctx, startTime.Truncate(time.Minute), userID)
}
