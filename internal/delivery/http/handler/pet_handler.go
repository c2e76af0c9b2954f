package handler

import (
	"net/http"

	"vet-clinic/internal/delivery/dto"
	"vet-clinic/internal/usecase"
	"vet-clinic/pkg/response"
	"vet-clinic/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type PetHandler struct {
	petUsecase usecase.PetUsecase
	validator  *validator.CustomValidator
}

func NewPetHandler(petUsecase usecase.PetUsecase, validator *validator.CustomValidator) *PetHandler {
	return &PetHandler{
		petUsecase: petUsecase,
		validator:  validator,
	}
}

func (h *PetHandler) CreatePet(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.CreatePetRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	pet, err := h.petUsecase.CreatePet(r.Context(), ownerID, &req)
	if err != nil {
		switch err {
		case usecase.ErrPetNameExists:
			response.Conflict(w, err.Error())
		case usecase.ErrInvalidDateFormat, usecase.ErrInvalidBirthday, usecase.ErrInvalidWeight:
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to create pet")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Pet created successfully", pet)
}

func (h *PetHandler) GetMyPets(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireUser(w, r)
	if !ok {
		return
	}
	h.writePets(w, r, ownerID)
}

func (h *PetHandler) GetBookablePets(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireUser(w, r)
	if !ok {
		return
	}

	pets, err := h.petUsecase.GetBookablePets(r.Context(), ownerID)
	if err != nil {
		response.InternalServerError(w, "Failed to get pets")
		return
	}

	response.Success(w, http.StatusOK, "Pets retrieved successfully", pets)
}

// GetUserPets lets an admin list the pets of any user
func (h *PetHandler) GetUserPets(w http.ResponseWriter, r *http.Request) {
	ownerID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}
	h.writePets(w, r, ownerID)
}

func (h *PetHandler) writePets(w http.ResponseWriter, r *http.Request, ownerID uuid.UUID) {
	pets, err := h.petUsecase.GetPets(r.Context(), ownerID)
	if err != nil {
		response.InternalServerError(w, "Failed to get pets")
		return
	}

	response.Success(w, http.StatusOK, "Pets retrieved successfully", pets)
}

func (h *PetHandler) DeletePet(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.petUsecase.DeletePet(r.Context(), ownerID, mux.Vars(r)["name"]); err != nil {
		if err == usecase.ErrPetNotFound {
			response.NotFound(w, "Pet not found")
			return
		}
		response.InternalServerError(w, "Failed to delete pet")
		return
	}

	response.Success(w, http.StatusOK, "Pet deleted successfully", nil)
}
