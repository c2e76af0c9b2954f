package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"vet-clinic/internal/converter"
	"vet-clinic/internal/delivery/dto"
	"vet-clinic/internal/domain/entity"
	"vet-clinic/internal/domain/repository"
	"vet-clinic/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrDoctorNotFound    = errors.New("doctor not found")
	ErrDoctorEmailExists = errors.New("doctor email already exists")
)

type DoctorUsecase interface {
	CreateDoctor(ctx context.Context, adminID uuid.UUID, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	GetDoctor(ctx context.Context, doctorID int) (*dto.DoctorResponse, error)
	GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	GetCurrentDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	DeleteDoctor(ctx context.Context, adminID uuid.UUID, doctorID int) error
}

type doctorUsecase struct {
	log          *logrus.Logger
	doctorRepo   repository.DoctorRepository
	auditService service.AuditService
}

func NewDoctorUsecase(
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		log:          log,
		doctorRepo:   doctorRepo,
		auditService: auditService,
	}
}

func (u *doctorUsecase) CreateDoctor(ctx context.Context, adminID uuid.UUID, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	doctor := &entity.Doctor{
		Name:           req.Name,
		Surname:        req.Surname,
		Email:          strings.ToLower(req.Email),
		Specialization: entity.Specialization(req.Specialization),
		Status:         entity.DoctorStatusCurrentEmployee,
	}

	if err := u.doctorRepo.Create(ctx, doctor); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, ErrDoctorEmailExists
		}
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	response := converter.DoctorToResponse(doctor)
	u.auditService.LogCreate(ctx, &adminID, entity.AuditActionDoctorCreate, "doctor", strconv.Itoa(doctor.ID), response)

	u.log.Infof("Doctor created: id=%d", doctor.ID)
	return response, nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, doctorID int) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find all doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

// GetCurrentDoctors lists the doctors that can be booked
func (u *doctorUsecase) GetCurrentDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAllByStatus(ctx, entity.DoctorStatusCurrentEmployee)
	if err != nil {
		u.log.Warnf("Failed to find current doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

// DeleteDoctor makes the doctor an ex-employee. Their appointments are kept.
func (u *doctorUsecase) DeleteDoctor(ctx context.Context, adminID uuid.UUID, doctorID int) error {
	doctor, err := u.doctorRepo.FindByID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", doctorID, err)
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}

	affected, err := u.doctorRepo.UpdateStatus(ctx, doctorID, entity.DoctorStatusExEmployee)
	if err != nil {
		u.log.Warnf("Failed to delete doctor %d: %+v", doctorID, err)
		return err
	}
	if affected == 0 {
		return nil
	}

	u.auditService.LogDelete(ctx, &adminID, entity.AuditActionDoctorDelete, "doctor", strconv.Itoa(doctorID), converter.DoctorToResponse(doctor))

	u.log.Infof("Doctor deleted: id=%d", doctorID)
	return nil
}
