package repository

import (
	"context"
	"errors"
	"time"

	"vet-clinic/internal/domain/entity"
	domainRepo "vet-clinic/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) domainRepo.AppointmentRepository {
	return &appointmentRepository{db: db}
}

var appointmentConstraints = []constraintRule{
	{uniqueViolation, "doctor_start", domainRepo.ErrDoctorSlotTaken},
	{uniqueViolation, "user_title", domainRepo.ErrTitleTaken},
	{foreignKeyViolation, "appointments_doctor", domainRepo.ErrUnknownDoctor},
	{foreignKeyViolation, "appointments_pet", domainRepo.ErrUnknownPet},
	{foreignKeyViolation, "appointments_user", domainRepo.ErrUnknownUser},
}

// translateAppointmentError maps constraint violations raised by the
// appointments table onto the domain errors the usecases understand.
func translateAppointmentError(err error) error {
	return translate(err, appointmentConstraints)
}

// minuteWindow returns the half-open interval covering the minute of t.
func minuteWindow(t time.Time) (time.Time, time.Time) {
	from := t.Truncate(time.Minute)
	return from, from.Add(time.Minute)
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(appointment).Error
	if err != nil {
		return translateAppointmentError(err)
	}
	return nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *entity.Appointment) error {
	err := r.db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("id = ?", appointment.ID).
		Updates(map[string]interface{}{
			"title":      appointment.Title,
			"start_time": appointment.StartTime,
			"end_time":   appointment.EndTime,
			"status":     appointment.Status,
			"pet_id":     appointment.PetID,
			"doctor_id":  appointment.DoctorID,
		}).Error
	if err != nil {
		return translateAppointmentError(err)
	}
	return nil
}

// UpdateStatus touches only the status column so a concurrent edit of the
// other fields is not overwritten.
func (r *appointmentRepository) UpdateStatus(ctx context.Context, id int, status entity.AppointmentStatus) error {
	return r.db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// DeleteByTitleAndUser removes the matching row. Deleting a missing row is not an error.
func (r *appointmentRepository) DeleteByTitleAndUser(ctx context.Context, title string, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("title = ? AND user_id = ?", title, userID).
		Delete(&entity.Appointment{}).Error
}

func (r *appointmentRepository) ExistsByStartTimeAndDoctor(ctx context.Context, startTime time.Time, doctorID int) (bool, error) {
	from, to := minuteWindow(startTime)
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("doctor_id = ? AND start_time >= ? AND start_time < ?", doctorID, from, to).
		Count(&count).Error
	return count > 0, err
}

func (r *appointmentRepository) ExistsByStartTimeAndUser(ctx context.Context, startTime time.Time, userID uuid.UUID) (bool, error) {
	from, to := minuteWindow(startTime)
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("user_id = ? AND start_time >= ? AND start_time < ?", userID, from, to).
		Count(&count).Error
	return count > 0, err
}

func (r *appointmentRepository) ExistsByTitleAndUser(ctx context.Context, title string, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("title = ? AND user_id = ?", title, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *appointmentRepository) FindByTitleAndUser(ctx context.Context, title string, userID uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.db.WithContext(ctx).
		Preload("Pet").Preload("Doctor").Preload("User").
		Where("title = ? AND user_id = ?", title, userID).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByTitleAndUserSurname(ctx context.Context, title, surname string) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = appointments.user_id").
		Preload("Pet").Preload("Doctor").Preload("User").
		Where("appointments.title = ? AND users.surname = ?", title, surname).
		Order("appointments.start_time DESC").
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindAllByUserFutureAndStatus(ctx context.Context, userID uuid.UUID, status entity.AppointmentStatus, now time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := r.db.WithContext(ctx).
		Preload("Pet").Preload("Doctor").
		Where("user_id = ? AND status = ? AND start_time > ?", userID, status, now).
		Order("start_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindAll(ctx context.Context) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := r.db.WithContext(ctx).
		Preload("Pet").Preload("Doctor").Preload("User").
		Order("start_time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// FindStartTimesByDoctorBetween returns the start times of every appointment
// of the doctor in [from, to), whatever their status.
func (r *appointmentRepository) FindStartTimesByDoctorBetween(ctx context.Context, doctorID int, from, to time.Time) ([]time.Time, error) {
	var starts []time.Time
	err := r.db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("doctor_id = ? AND start_time >= ? AND start_time < ?", doctorID, from, to).
		Order("start_time ASC").
		Pluck("start_time", &starts).Error
	if err != nil {
		return nil, err
	}
	return starts, nil
}
