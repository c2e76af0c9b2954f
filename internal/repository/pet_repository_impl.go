package repository

import (
	"context"
	"errors"

	"vet-clinic/internal/domain/entity"
	domainRepo "vet-clinic/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type petRepository struct {
	db *gorm.DB
}

func NewPetRepository(db *gorm.DB) domainRepo.PetRepository {
	return &petRepository{db: db}
}

func (r *petRepository) Create(ctx context.Context, pet *entity.Pet) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(pet).Error
	if isDuplicateKeyError(err, "pets_owner_name") {
		return domainRepo.ErrPetNameTaken
	}
	return err
}

func (r *petRepository) FindByIDAndOwner(ctx context.Context, id int, ownerID uuid.UUID) (*entity.Pet, error) {
	var pet entity.Pet
	err := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).First(&pet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pet, nil
}

func (r *petRepository) FindByNameAndOwner(ctx context.Context, name string, ownerID uuid.UUID) (*entity.Pet, error) {
	var pet entity.Pet
	err := r.db.WithContext(ctx).Where("name = ? AND owner_id = ?", name, ownerID).First(&pet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pet, nil
}

func (r *petRepository) FindAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.Pet, error) {
	var pets []entity.Pet
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("name ASC").Find(&pets).Error; err != nil {
		return nil, err
	}
	return pets, nil
}

func (r *petRepository) FindAllByOwnerAndStatus(ctx context.Context, ownerID uuid.UUID, status entity.PetStatus) ([]entity.Pet, error) {
	var pets []entity.Pet
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND status = ?", ownerID, status).
		Order("name ASC").
		Find(&pets).Error
	if err != nil {
		return nil, err
	}
	return pets, nil
}

func (r *petRepository) UpdateStatus(ctx context.Context, id int, status entity.PetStatus) error {
	return r.db.WithContext(ctx).
		Model(&entity.Pet{}).
		Where("id = ?", id).
		Update("status", status).Error
}
