package usecase

import (
	"context"
	"errors"
	"testing"

	"vet-clinic/internal/delivery/dto"
	"vet-clinic/internal/domain/entity"
	"vet-clinic/pkg/clock"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func petReq(name, birthday, weight string) *dto.CreatePetRequest {
	return &dto.CreatePetRequest{
		Name:     name,
		PetType:  string(entity.PetTypeDog),
		Size:     string(entity.PetSizeMedium),
		Birthday: birthday,
		Weight:   decimal.RequireFromString(weight),
		Gender:   entity.GenderMale,
	}
}

func TestCreatePet(t *testing.T) {
	audit := &recordingAudit{}
	uc := NewPetUsecase(quietLogger(), clock.Fixed{T: testNow}, newMemPetRepo(), audit)
	ownerID := uuid.New()

	got, err := uc.CreatePet(context.Background(), ownerID, petReq("Rex", "2020-02-29", "12.345"))
	if err != nil {
		t.Fatalf("CreatePet() error = %v", err)
	}
	if got.OwnerID != ownerID || got.Status != string(entity.PetStatusPresent) {
		t.Fatalf("got = %+v", got)
	}
	if !got.Weight.Equal(decimal.RequireFromString("12.35")) {
		t.Fatalf("Weight = %s, want 12.35", got.Weight)
	}
	if got.Birthday != "2020-02-29" {
		t.Fatalf("Birthday = %q, want 2020-02-29", got.Birthday)
	}
	if len(audit.actions) != 1 || audit.actions[0] != entity.AuditActionPetCreate {
		t.Fatalf("audit actions = %v", audit.actions)
	}
}

func TestCreatePetValidation(t *testing.T) {
	ownerID := uuid.New()
	repo := newMemPetRepo(entity.Pet{ID: 1, Name: "Rex", OwnerID: ownerID, Status: entity.PetStatusPresent})
	uc := NewPetUsecase(quietLogger(), clock.Fixed{T: testNow}, repo, &recordingAudit{})

	tests := []struct {
		name string
		req  *dto.CreatePetRequest
		want error
	}{
		{"bad date", petReq("Tom", "29/02/2020", "3"), ErrInvalidDateFormat},
		{"future birthday", petReq("Tom", "2030-01-01", "3"), ErrInvalidBirthday},
		{"zero weight", petReq("Tom", "2020-01-01", "0"), ErrInvalidWeight},
		{"negative weight", petReq("Tom", "2020-01-01", "-1.5"), ErrInvalidWeight},
		{"name taken", petReq("Rex", "2020-01-01", "3"), ErrPetNameExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := uc.CreatePet(context.Background(), ownerID, tt.req); !errors.Is(err, tt.want) {
				t.Fatalf("CreatePet() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDeletePet(t *testing.T) {
	ownerID := uuid.New()
	repo := newMemPetRepo(
		entity.Pet{ID: 1, Name: "Rex", OwnerID: ownerID, Status: entity.PetStatusPresent},
		entity.Pet{ID: 2, Name: "Tom", OwnerID: ownerID, Status: entity.PetStatusPresent},
	)
	uc := NewPetUsecase(quietLogger(), clock.Fixed{T: testNow}, repo, &recordingAudit{})
	ctx := context.Background()

	if err := uc.DeletePet(ctx, ownerID, "Rex"); err != nil {
		t.Fatalf("DeletePet() error = %v", err)
	}
	if err := uc.DeletePet(ctx, ownerID, "Rex"); !errors.Is(err, ErrPetNotFound) {
		t.Fatalf("DeletePet() twice error = %v, want %v", err, ErrPetNotFound)
	}
	if err := uc.DeletePet(ctx, uuid.New(), "Tom"); !errors.Is(err, ErrPetNotFound) {
		t.Fatalf("DeletePet() by another owner error = %v, want %v", err, ErrPetNotFound)
	}

	all, err := uc.GetPets(ctx, ownerID)
	if err != nil {
		t.Fatalf("GetPets() error = %v", err)
	}
	if all.Total != 2 {
		t.Fatalf("GetPets().Total = %d, want 2", all.Total)
	}

	bookable, err := uc.GetBookablePets(ctx, ownerID)
	if err != nil {
		t.Fatalf("GetBookablePets() error = %v", err)
	}
	if bookable.Total != 1 || bookable.Pets[0].Name != "Tom" {
		t.Fatalf("GetBookablePets() = %+v, want only Tom", bookable.Pets)
	}
}
