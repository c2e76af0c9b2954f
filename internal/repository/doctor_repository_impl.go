package repository

import (
	"context"
	"errors"

	"vet-clinic/internal/domain/entity"
	domainRepo "vet-clinic/internal/domain/repository"

	"gorm.io/gorm"
)

type doctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) domainRepo.DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *entity.Doctor) error {
	err := r.db.WithContext(ctx).Create(doctor).Error
	if isDuplicateKeyError(err, "doctors_email") {
		return domainRepo.ErrEmailTaken
	}
	return err
}

func (r *doctorRepository) FindByID(ctx context.Context, id int) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindAll(ctx context.Context) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	if err := r.db.WithContext(ctx).Order("surname ASC, name ASC").Find(&doctors).Error; err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) FindAllByStatus(ctx context.Context, status entity.DoctorStatus) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("surname ASC, name ASC").
		Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

// UpdateStatus returns affected rows: 0 means the doctor does not exist
// or already has the requested status.
func (r *doctorRepository) UpdateStatus(ctx context.Context, id int, status entity.DoctorStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Doctor{}).
		Where("id = ? AND status != ?", id, status).
		Update("status", status)
	return result.RowsAffected, result.Error
}
