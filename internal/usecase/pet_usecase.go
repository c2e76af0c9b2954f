package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

	"vet-clinic/internal/converter"
	"vet-clinic/internal/delivery/dto"
	"vet-clinic/internal/domain/entity"
	"vet-clinic/internal/domain/repository"
	"vet-clinic/internal/service"
	"vet-clinic/pkg/clock"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrPetNotFound       = errors.New("pet not found")
	ErrPetNameExists     = errors.New("you already have a pet with this name")
	ErrInvalidWeight     = errors.New("weight must be greater than zero")
	ErrInvalidBirthday   = errors.New("birthday cannot be in the future")
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
)

type PetUsecase interface {
	CreatePet(ctx context.Context, ownerID uuid.UUID, req *dto.CreatePetRequest) (*dto.PetResponse, error)
	GetPets(ctx context.Context, ownerID uuid.UUID) (*dto.PetListResponse, error)
	GetBookablePets(ctx context.Context, ownerID uuid.UUID) (*dto.PetListResponse, error)
	DeletePet(ctx context.Context, ownerID uuid.UUID, name string) error
}

type petUsecase struct {
	log          *logrus.Logger
	clock        clock.Clock
	petRepo      repository.PetRepository
	auditService service.AuditService
}

func NewPetUsecase(
	log *logrus.Logger,
	clk clock.Clock,
	petRepo repository.PetRepository,
	auditService service.AuditService,
) PetUsecase {
	return &petUsecase{
		log:          log,
		clock:        clk,
		petRepo:      petRepo,
		auditService: auditService,
	}
}

func (u *petUsecase) CreatePet(ctx context.Context, ownerID uuid.UUID, req *dto.CreatePetRequest) (*dto.PetResponse, error) {
	now := u.clock.Now()
	birthday, err := time.ParseInLocation(dateLayout, req.Birthday, now.Location())
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	if birthday.After(now) {
		return nil, ErrInvalidBirthday
	}

	if !req.Weight.IsPositive() {
		return nil, ErrInvalidWeight
	}

	pet := &entity.Pet{
		Name:     req.Name,
		PetType:  entity.PetType(req.PetType),
		Size:     entity.PetSize(req.Size),
		Birthday: birthday,
		Weight:   req.Weight.Round(2),
		Gender:   req.Gender,
		OwnerID:  ownerID,
		Status:   entity.PetStatusPresent,
	}

	if err := u.petRepo.Create(ctx, pet); err != nil {
		if errors.Is(err, repository.ErrPetNameTaken) {
			return nil, ErrPetNameExists
		}
		u.log.Warnf("Failed to create pet: %+v", err)
		return nil, err
	}

	response := converter.PetToResponse(pet)
	u.auditService.LogCreate(ctx, &ownerID, entity.AuditActionPetCreate, "pet", strconv.Itoa(pet.ID), response)

	return response, nil
}

// GetPets lists every pet of the owner, deleted ones included
func (u *petUsecase) GetPets(ctx context.Context, ownerID uuid.UUID) (*dto.PetListResponse, error) {
	pets, err := u.petRepo.FindAllByOwner(ctx, ownerID)
	if err != nil {
		u.log.Warnf("Failed to find pets of %s: %+v", ownerID, err)
		return nil, err
	}

	return &dto.PetListResponse{
		Pets:  converter.PetsToResponses(pets),
		Total: len(pets),
	}, nil
}

// GetBookablePets lists the owner's pets that may be booked
func (u *petUsecase) GetBookablePets(ctx context.Context, ownerID uuid.UUID) (*dto.PetListResponse, error) {
	pets, err := u.petRepo.FindAllByOwnerAndStatus(ctx, ownerID, entity.PetStatusPresent)
	if err != nil {
		u.log.Warnf("Failed to find bookable pets of %s: %+v", ownerID, err)
		return nil, err
	}

	return &dto.PetListResponse{
		Pets:  converter.PetsToResponses(pets),
		Total: len(pets),
	}, nil
}

// DeletePet marks the pet DELETED. Its appointments are kept.
func (u *petUsecase) DeletePet(ctx context.Context, ownerID uuid.UUID, name string) error {
	pet, err := u.petRepo.FindByNameAndOwner(ctx, name, ownerID)
	if err != nil {
		u.log.Warnf("Failed to find pet %q: %+v", name, err)
		return err
	}
	if pet == nil || !pet.IsPresent() {
		return ErrPetNotFound
	}

	if err := u.petRepo.UpdateStatus(ctx, pet.ID, entity.PetStatusDeleted); err != nil {
		u.log.Warnf("Failed to delete pet %d: %+v", pet.ID, err)
		return err
	}

	u.auditService.LogDelete(ctx, &ownerID, entity.AuditActionPetDelete, "pet", strconv.Itoa(pet.ID), converter.PetToResponse(pet))
	return nil
}
