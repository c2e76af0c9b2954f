package converter

import (
	"vet-clinic/internal/delivery/dto"
	"vet-clinic/internal/domain/entity"
)

// PetToResponse converts a Pet entity to PetResponse DTO
func PetToResponse(pet *entity.Pet) *dto.PetResponse {
	if pet == nil {
		return nil
	}

	response := &dto.PetResponse{
		ID:        pet.ID,
		Name:      pet.Name,
		PetType:   string(pet.PetType),
		Size:      string(pet.Size),
		Weight:    pet.Weight,
		Gender:    pet.Gender,
		OwnerID:   pet.OwnerID,
		Status:    string(pet.Status),
		CreatedAt: pet.CreatedAt,
	}
	if !pet.Birthday.IsZero() {
		response.Birthday = pet.Birthday.Format("2006-01-02")
	}

	return response
}

// PetsToResponses converts a slice of Pet entities to slice of PetResponse DTOs
func PetsToResponses(pets []entity.Pet) []dto.PetResponse {
	responses := make([]dto.PetResponse, len(pets))
	for i := range pets {
		responses[i] = *PetToResponse(&pets[i])
	}
	return responses
}
