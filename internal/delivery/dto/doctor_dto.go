package dto

import "time"

// Request DTOs

type CreateDoctorRequest struct {
	Name           string `json:"name" validate:"required,min=2,max=100"`
	Surname        string `json:"surname" validate:"required,min=2,max=100"`
	Email          string `json:"email" validate:"required,email"`
	Specialization string `json:"specialization" validate:"required,oneof=COMPANION_ANIMAL EXOTIC_ANIMAL LARGE_ANIMAL"`
}

// Response DTOs

type DoctorResponse struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	Surname        string    `json:"surname"`
	Email          string    `json:"email,omitempty"`
	Specialization string    `json:"specialization"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
