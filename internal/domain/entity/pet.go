package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PetStatus tells whether a pet is still registered at the clinic
type PetStatus string

const (
	PetStatusPresent PetStatus = "PRESENT"
	PetStatusDeleted PetStatus = "DELETED"
)

type PetType string

const (
	PetTypeCat     PetType = "CAT"
	PetTypeDog     PetType = "DOG"
	PetTypeFish    PetType = "FISH"
	PetTypeRabbit  PetType = "RABBIT"
	PetTypeBird    PetType = "BIRD"
	PetTypeReptile PetType = "REPTILE"
	PetTypeRodent  PetType = "RODENT"
)

type PetSize string

const (
	PetSizeSmall  PetSize = "SMALL"
	PetSizeMedium PetSize = "MEDIUM"
	PetSizeLarge  PetSize = "LARGE"
)

// Gender constants
const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
)

// Pet represents an animal owned by a user.
// Name is unique per owner.
type Pet struct {
	ID        int             `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string          `gorm:"type:varchar(100);not null;uniqueIndex:uq_pets_owner_name" json:"name"`
	PetType   PetType         `gorm:"type:varchar(20);not null" json:"pet_type"`
	Size      PetSize         `gorm:"type:varchar(20);not null" json:"size"`
	Birthday  time.Time       `gorm:"type:date" json:"birthday"`
	Weight    decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"weight"`
	Gender    string          `gorm:"type:varchar(10);not null" json:"gender"`
	OwnerID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_pets_owner_name" json:"owner_id"`
	Status    PetStatus       `gorm:"type:varchar(20);not null;default:'PRESENT';index" json:"status"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Owner User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

func (Pet) TableName() string {
	return "pets"
}

// IsPresent checks if the pet can be booked
func (p *Pet) IsPresent() bool {
	return p.Status == PetStatusPresent
}
