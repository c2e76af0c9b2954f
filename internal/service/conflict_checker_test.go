package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"vet-clinic/internal/domain/repository"

	"github.com/google/uuid"
)

// stubAppointmentRepo implements only the existence checks; the remaining
// methods come from the embedded nil interface and must not be called.
type stubAppointmentRepo struct {
	repository.AppointmentRepository

	existsByDoctor func(ctx context.Context, startTime time.Time, doctorID int) (bool, error)
	existsByUser   func(ctx context.Context, startTime time.Time, userID uuid.UUID) (bool, error)
}

func (s *stubAppointmentRepo) ExistsByStartTimeAndDoctor(ctx context.Context, startTime time.Time, doctorID int) (bool, error) {
	return s.existsByDoctor(ctx, startTime, doctorID)
}

func (s *stubAppointmentRepo) ExistsByStartTimeAndUser(ctx context.Context, startTime time.Time, userID uuid.UUID) (bool, error) {
	return s.existsByUser(ctx, startTime, userID)
}

func TestConflictCheckerDoctorBusy(t *testing.T) {
	booked := time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC)
	var gotStart time.Time

	repo := &stubAppointmentRepo{
		existsByDoctor: func(_ context.Context, startTime time.Time, doctorID int) (bool, error) {
			gotStart = startTime
			return doctorID == 7 && startTime.Equal(booked), nil
		},
	}
	checker := NewConflictChecker(repo)

	busy, err := checker.DoctorBusy(context.Background(), booked.Add(750*time.Millisecond), 7)
	if err != nil {
		t.Fatalf("DoctorBusy() error = %v", err)
	}
	if !busy {
		t.Fatalf("DoctorBusy() = false, want true")
	}
	if !gotStart.Equal(booked) {
		t.Fatalf("repository queried with %v, want %v", gotStart, booked)
	}

	busy, err = checker.DoctorBusy(context.Background(), booked, 8)
	if err != nil || busy {
		t.Fatalf("DoctorBusy(other doctor) = %v, %v, want false, nil", busy, err)
	}
}

func TestConflictCheckerUserBusy(t *testing.T) {
	userID := uuid.New()
	booked := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	repo := &stubAppointmentRepo{
		existsByUser: func(_ context.Context, startTime time.Time, id uuid.UUID) (bool, error) {
			return id == userID && startTime.Equal(booked), nil
		},
	}
	checker := NewConflictChecker(repo)

	if busy, _ := checker.UserBusy(context.Background(), booked.Add(30*time.Second), userID); !busy {
		t.Fatalf("UserBusy() = false, want true")
	}
	if busy, _ := checker.UserBusy(context.Background(), booked.Add(30*time.Minute), userID); busy {
		t.Fatalf("UserBusy(next slot) = true, want false")
	}
}

func TestConflictCheckerPropagatesErrors(t *testing.T) {
	storeErr := errors.New("connection refused")
	repo := &stubAppointmentRepo{
		existsByDoctor: func(context.Context, time.Time, int) (bool, error) {
			return false, storeErr
		},
	}

	_, err := NewConflictChecker(repo).DoctorBusy(context.Background(), time.Now(), 1)
	if !errors.Is(err, storeErr) {
		t.Fatalf("DoctorBusy() error = %v, want %v", err, storeErr)
	}
}
