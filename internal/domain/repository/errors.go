package repository

import "errors"

// Constraint violations reported by repository implementations.
var (
	ErrDoctorSlotTaken = errors.New("doctor already has an appointment at this time")
	ErrTitleTaken      = errors.New("appointment title already exists for this user")
	ErrUnknownDoctor   = errors.New("referenced doctor does not exist")
	ErrUnknownPet      = errors.New("referenced pet does not exist")
	ErrUnknownUser     = errors.New("referenced user does not exist")
	ErrEmailTaken      = errors.New("email already exists")
	ErrPetNameTaken    = errors.New("pet name already exists for this owner")
)
