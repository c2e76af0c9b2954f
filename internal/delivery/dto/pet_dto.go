package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreatePetRequest struct {
	Name     string          `json:"name" validate:"required,notblank,max=100"`
	PetType  string          `json:"pet_type" validate:"required,oneof=CAT DOG FISH RABBIT BIRD REPTILE RODENT"`
	Size     string          `json:"size" validate:"required,oneof=SMALL MEDIUM LARGE"`
	Birthday string          `json:"birthday" validate:"required"` // Format: YYYY-MM-DD
	Weight   decimal.Decimal `json:"weight"`
	Gender   string          `json:"gender" validate:"required,oneof=MALE FEMALE"`
}

// Response DTOs

type PetResponse struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	PetType   string          `json:"pet_type"`
	Size      string          `json:"size"`
	Birthday  string          `json:"birthday"`
	Weight    decimal.Decimal `json:"weight"`
	Gender    string          `json:"gender"`
	OwnerID   uuid.UUID       `json:"owner_id"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

type PetListResponse struct {
	Pets  []PetResponse `json:"pets"`
	Total int           `json:"total"`
}
