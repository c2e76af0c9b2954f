package repository

import (
	"context"

	"vet-clinic/internal/domain/entity"

	"github.com/google/uuid"
)

type PetRepository interface {
	Create(ctx context.Context, pet *entity.Pet) error
	FindByIDAndOwner(ctx context.Context, id int, ownerID uuid.UUID) (*entity.Pet, error)
	FindByNameAndOwner(ctx context.Context, name string, ownerID uuid.UUID) (*entity.Pet, error)
	FindAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.Pet, error)
	FindAllByOwnerAndStatus(ctx context.Context, ownerID uuid.UUID, status entity.PetStatus) ([]entity.Pet, error)
	UpdateStatus(ctx context.Context, id int, status entity.PetStatus) error
}
