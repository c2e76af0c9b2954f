package repository

import (
	"context"
	"time"

	"vet-clinic/internal/domain/entity"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindAll(ctx context.Context) ([]entity.User, error)
	FindAllByStatus(ctx context.Context, status entity.UserStatus) ([]entity.User, error)
	// SoftDelete marks the user deleted, deletes their pets and cancels their
	// upcoming booked appointments in one transaction.
	SoftDelete(ctx context.Context, id uuid.UUID, now time.Time) error
}
