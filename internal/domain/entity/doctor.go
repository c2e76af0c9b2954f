package entity

import "time"

// DoctorStatus tells whether a doctor still works at the clinic
type DoctorStatus string

const (
	DoctorStatusCurrentEmployee DoctorStatus = "CURRENT_EMPLOYEE"
	DoctorStatusExEmployee      DoctorStatus = "EX_EMPLOYEE"
)

// Specialization of a veterinary doctor
type Specialization string

const (
	SpecializationCompanionAnimal Specialization = "COMPANION_ANIMAL"
	SpecializationExoticAnimal    Specialization = "EXOTIC_ANIMAL"
	SpecializationLargeAnimal     Specialization = "LARGE_ANIMAL"
)

// Doctor represents a clinic doctor.
// Doctors are never physically removed, they become ex-employees.
type Doctor struct {
	ID             int            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string         `gorm:"type:varchar(100);not null" json:"name"`
	Surname        string         `gorm:"type:varchar(100);not null;index" json:"surname"`
	Email          string         `gorm:"type:varchar(255);uniqueIndex:uq_doctors_email;not null" json:"email"`
	Specialization Specialization `gorm:"type:varchar(50);not null" json:"specialization"`
	Status         DoctorStatus   `gorm:"type:varchar(30);not null;default:'CURRENT_EMPLOYEE';index" json:"status"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// IsBookable checks if the doctor can receive new appointments
func (d *Doctor) IsBookable() bool {
	return d.Status == DoctorStatusCurrentEmployee
}
