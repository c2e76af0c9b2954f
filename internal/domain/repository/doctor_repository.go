package repository

import (
	"context"

	"vet-clinic/internal/domain/entity"
)

type DoctorRepository interface {
	Create(ctx context.Context, doctor *entity.Doctor) error
	FindByID(ctx context.Context, id int) (*entity.Doctor, error)
	FindAll(ctx context.Context) ([]entity.Doctor, error)
	FindAllByStatus(ctx context.Context, status entity.DoctorStatus) ([]entity.Doctor, error)
	UpdateStatus(ctx context.Context, id int, status entity.DoctorStatus) (int64, error)
}
