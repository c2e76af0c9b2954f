package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

	"vet-clinic/internal/converter"
	"vet-clinic/internal/delivery/dto"
	"vet-clinic/internal/domain/entity"
	"vet-clinic/internal/domain/repository"
	"vet-clinic/internal/service"
	"vet-clinic/pkg/clock"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrDuplicateTitle      = errors.New("appointment with this title already exists")
	ErrSlotUnavailable     = errors.New("selected time slot is not available")
	ErrUserDoubleBooked    = errors.New("you already have an appointment at this time")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrInvalidStartTime    = errors.New("invalid start time, use YYYY-MM-DDTHH:MM or RFC 3339")
	ErrInvalidStatus       = errors.New("invalid appointment status")
)

// Accepted start time layouts, tried in order. Layouts without an offset are
// read in the clinic's location.
var startTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

const dateLayout = "2006-01-02"

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, userID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	EditAppointment(ctx context.Context, userID uuid.UUID, req *dto.EditAppointmentRequest) (*dto.AppointmentResponse, error)
	CancelAppointment(ctx context.Context, userID uuid.UUID, title string) error
	DeleteAppointment(ctx context.Context, userID uuid.UUID, title string) error
	GetUpcomingAppointments(ctx context.Context, userID uuid.UUID) (*dto.AppointmentListResponse, error)
	GetAllAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	GetAppointment(ctx context.Context, userID uuid.UUID, title string) (*dto.AppointmentResponse, error)
	GetAppointmentByUserSurname(ctx context.Context, title, surname string) (*dto.AppointmentResponse, error)
	GetFreeSlots(ctx context.Context, doctorID int, date string) (*dto.FreeSlotsResponse, error)
	GetBookingOptions(ctx context.Context, userID uuid.UUID) (*dto.BookingOptionsResponse, error)
}

type appointmentUsecase struct {
	log             *logrus.Logger
	clock           clock.Clock
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	petRepo         repository.PetRepository
	calendar        service.SlotCalendar
	conflicts       service.ConflictChecker
	locker          service.SlotLocker
	auditService    service.AuditService
	publisher       service.AppointmentEventPublisher
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	clk clock.Clock,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	petRepo repository.PetRepository,
	calendar service.SlotCalendar,
	conflicts service.ConflictChecker,
	locker service.SlotLocker,
	auditService service.AuditService,
	publisher service.AppointmentEventPublisher,
) AppointmentUsecase {
	return &appointmentUsecase{
		log:             log,
		clock:           clk,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		petRepo:         petRepo,
		calendar:        calendar,
		conflicts:       conflicts,
		locker:          locker,
		auditService:    auditService,
		publisher:       publisher,
	}
}

// CreateAppointment books a new appointment for userID.
//
// Flow:
// 1. Reject a title the user already uses (ErrDuplicateTitle)
// 2. Reject a doctor who is not a current employee (ErrDoctorNotFound)
// 3. Reject a pet the user does not own or that was removed (ErrPetNotFound)
// 4. Reject a start time off the slot grid or taken by the doctor (ErrSlotUnavailable)
// 5. Reject a start time the user already holds (ErrUserDoubleBooked)
// 6. Persist as BOOKED with end = start + 30m
//
// The store's unique (doctor_id, start_time) index backs step 2 against concurrent requests.
func (u *appointmentUsecase) CreateAppointment(ctx context.Context, userID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	start, err := u.parseStartTime(req.StartTime)
	if err != nil {
		return nil, err
	}

	titleTaken, err := u.appointmentRepo.ExistsByTitleAndUser(ctx, req.Title, userID)
	if err != nil {
		u.log.Warnf("Failed to check appointment title: %+v", err)
		return nil, err
	}
	if titleTaken {
		return nil, ErrDuplicateTitle
	}

	if err := u.requireDoctor(ctx, req.DoctorID); err != nil {
		return nil, err
	}
	if err := u.requirePet(ctx, req.PetID, userID); err != nil {
		return nil, err
	}

	if !u.calendar.IsValidSlot(start) {
		return nil, ErrSlotUnavailable
	}

	release, err := u.lockSlot(ctx, req.DoctorID, start)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := u.checkConflicts(ctx, start, req.DoctorID, userID); err != nil {
		return nil, err
	}

	appointment := &entity.Appointment{
		Title:    req.Title,
		Status:   entity.AppointmentStatusBooked,
		PetID:    req.PetID,
		DoctorID: req.DoctorID,
		UserID:   userID,
	}
	appointment.Schedule(start)

	if err := u.appointmentRepo.Create(ctx, appointment); err != nil {
		if mapped := mapStoreError(err); mapped != err {
			return nil, mapped
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	response := converter.AppointmentToResponse(appointment)
	u.auditService.LogCreate(ctx, &userID, entity.AuditActionAppointmentCreate, "appointment", strconv.Itoa(appointment.ID), response)
	u.publish(ctx, service.EventAppointmentBooked, appointment)

	u.log.Infof("Appointment booked: id=%d, doctor=%d, start=%s", appointment.ID, appointment.DoctorID, appointment.StartTime.Format(time.RFC3339))
	return response, nil
}

// EditAppointment rewrites the appointment identified by (OldTitle, userID).
// Title uniqueness is rechecked only when the title changes and slot checks run
// only when the start minute changes, so an unchanged appointment never
// conflicts with itself.
func (u *appointmentUsecase) EditAppointment(ctx context.Context, userID uuid.UUID, req *dto.EditAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByTitleAndUser(ctx, req.OldTitle, userID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %q: %+v", req.OldTitle, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	newStart, err := u.parseStartTime(req.StartTime)
	if err != nil {
		return nil, err
	}

	oldStart := appointment.StartTime
	if req.OldStartTime != "" {
		if oldStart, err = u.parseStartTime(req.OldStartTime); err != nil {
			return nil, err
		}
	}

	status := appointment.Status
	if req.Status != "" {
		status = entity.AppointmentStatus(req.Status)
		if !entity.IsValidAppointmentStatus(status) {
			return nil, ErrInvalidStatus
		}
	}

	if req.Title != req.OldTitle {
		titleTaken, err := u.appointmentRepo.ExistsByTitleAndUser(ctx, req.Title, userID)
		if err != nil {
			u.log.Warnf("Failed to check appointment title: %+v", err)
			return nil, err
		}
		if titleTaken {
			return nil, ErrDuplicateTitle
		}
	}

	// The stored start is compared as well so that a stale old_start_time
	// cannot skip the checks.
	timeChanged := !sameMinute(newStart, oldStart) || !sameMinute(newStart, appointment.StartTime)
	doctorChanged := req.DoctorID != appointment.DoctorID
	petChanged := req.PetID != appointment.PetID

	if doctorChanged {
		if err := u.requireDoctor(ctx, req.DoctorID); err != nil {
			return nil, err
		}
	}
	if petChanged {
		if err := u.requirePet(ctx, req.PetID, userID); err != nil {
			return nil, err
		}
	}

	if timeChanged || doctorChanged {
		if !u.calendar.IsValidSlot(newStart) {
			return nil, ErrSlotUnavailable
		}

		release, err := u.lockSlot(ctx, req.DoctorID, newStart)
		if err != nil {
			return nil, err
		}
		defer release()

		if timeChanged {
			if err := u.checkConflicts(ctx, newStart, req.DoctorID, userID); err != nil {
				return nil, err
			}
		} else if err := u.checkDoctor(ctx, newStart, req.DoctorID); err != nil {
			return nil, err
		}
	}

	before := converter.AppointmentToResponse(appointment)

	appointment.Title = req.Title
	appointment.Status = status
	appointment.Schedule(newStart)
	if petChanged {
		appointment.PetID = req.PetID
		appointment.Pet = entity.Pet{}
	}
	if doctorChanged {
		appointment.DoctorID = req.DoctorID
		appointment.Doctor = entity.Doctor{}
	}

	if err := u.appointmentRepo.Update(ctx, appointment); err != nil {
		if mapped := mapStoreError(err); mapped != err {
			return nil, mapped
		}
		u.log.Warnf("Failed to update appointment %d: %+v", appointment.ID, err)
		return nil, err
	}

	response := converter.AppointmentToResponse(appointment)
	u.auditService.LogUpdate(ctx, &userID, entity.AuditActionAppointmentUpdate, "appointment", strconv.Itoa(appointment.ID), before, response)
	u.publish(ctx, service.EventAppointmentUpdated, appointment)

	u.log.Infof("Appointment updated: id=%d", appointment.ID)
	return response, nil
}

// CancelAppointment marks the appointment CANCELED. Canceling an already
// canceled appointment succeeds; canceling an unknown one is ErrAppointmentNotFound.
func (u *appointmentUsecase) CancelAppointment(ctx context.Context, userID uuid.UUID, title string) error {
	appointment, err := u.appointmentRepo.FindByTitleAndUser(ctx, title, userID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %q: %+v", title, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	if err := u.appointmentRepo.UpdateStatus(ctx, appointment.ID, entity.AppointmentStatusCanceled); err != nil {
		u.log.Warnf("Failed to cancel appointment %d: %+v", appointment.ID, err)
		return err
	}

	before := converter.AppointmentToResponse(appointment)
	appointment.Cancel()

	u.auditService.LogUpdate(ctx, &userID, entity.AuditActionAppointmentCancel, "appointment", strconv.Itoa(appointment.ID), before, converter.AppointmentToResponse(appointment))
	u.publish(ctx, service.EventAppointmentCanceled, appointment)

	u.log.Infof("Appointment canceled: id=%d", appointment.ID)
	return nil
}

// DeleteAppointment removes the appointment whatever its status.
// Deleting an appointment that does not exist is not an error.
func (u *appointmentUsecase) DeleteAppointment(ctx context.Context, userID uuid.UUID, title string) error {
	appointment, err := u.appointmentRepo.FindByTitleAndUser(ctx, title, userID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %q: %+v", title, err)
		return err
	}

	if err := u.appointmentRepo.DeleteByTitleAndUser(ctx, title, userID); err != nil {
		u.log.Warnf("Failed to delete appointment %q: %+v", title, err)
		return err
	}

	if appointment == nil {
		return nil
	}

	u.auditService.LogDelete(ctx, &userID, entity.AuditActionAppointmentDelete, "appointment", strconv.Itoa(appointment.ID), converter.AppointmentToResponse(appointment))
	u.publish(ctx, service.EventAppointmentDeleted, appointment)

	u.log.Infof("Appointment deleted: id=%d", appointment.ID)
	return nil
}

// GetUpcomingAppointments returns the user's BOOKED appointments starting after now
func (u *appointmentUsecase) GetUpcomingAppointments(ctx context.Context, userID uuid.UUID) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindAllByUserFutureAndStatus(ctx, userID, entity.AppointmentStatusBooked, u.clock.Now())
	if err != nil {
		u.log.Warnf("Failed to find upcoming appointments for user %s: %+v", userID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) GetAllAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find all appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, userID uuid.UUID, title string) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByTitleAndUser(ctx, title, userID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %q: %+v", title, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetAppointmentByUserSurname(ctx context.Context, title, surname string) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByTitleAndUserSurname(ctx, title, surname)
	if err != nil {
		u.log.Warnf("Failed to find appointment %q of %q: %+v", title, surname, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	return converter.AppointmentToResponse(appointment), nil
}

// GetFreeSlots returns the slots of date that are still in the future and
// not taken by the doctor.
func (u *appointmentUsecase) GetFreeSlots(ctx context.Context, doctorID int, date string) (*dto.FreeSlotsResponse, error) {
	now := u.clock.Now()
	day, err := time.ParseInLocation(dateLayout, date, now.Location())
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	if err := u.requireDoctor(ctx, doctorID); err != nil {
		return nil, err
	}

	slots := u.calendar.SlotsForDay(day)
	free := make([]time.Time, 0, len(slots))

	if len(slots) > 0 {
		taken, err := u.appointmentRepo.FindStartTimesByDoctorBetween(ctx, doctorID, slots[0], slots[len(slots)-1].Add(service.SlotStep))
		if err != nil {
			u.log.Warnf("Failed to find appointments of doctor %d: %+v", doctorID, err)
			return nil, err
		}

		busy := make(map[int64]bool, len(taken))
		for _, t := range taken {
			busy[t.Truncate(time.Minute).Unix()] = true
		}

		for _, slot := range slots {
			if slot.After(now) && !busy[slot.Unix()] {
				free = append(free, slot)
			}
		}
	}

	return &dto.FreeSlotsResponse{
		Date:     day.Format(dateLayout),
		DoctorID: doctorID,
		Slots:    free,
	}, nil
}

// GetBookingOptions lists current doctors and the user's present pets
func (u *appointmentUsecase) GetBookingOptions(ctx context.Context, userID uuid.UUID) (*dto.BookingOptionsResponse, error) {
	doctors, err := u.doctorRepo.FindAllByStatus(ctx, entity.DoctorStatusCurrentEmployee)
	if err != nil {
		u.log.Warnf("Failed to find bookable doctors: %+v", err)
		return nil, err
	}

	pets, err := u.petRepo.FindAllByOwnerAndStatus(ctx, userID, entity.PetStatusPresent)
	if err != nil {
		u.log.Warnf("Failed to find bookable pets for user %s: %+v", userID, err)
		return nil, err
	}

	return &dto.BookingOptionsResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Pets:    converter.PetsToResponses(pets),
	}, nil
}

// parseStartTime reads s as clinic time. An explicit offset is honored and
// the instant is then moved into the clinic's location, which the slot grid
// is laid out in.
func (u *appointmentUsecase) parseStartTime(s string) (time.Time, error) {
	loc := u.clock.Now().Location()
	for _, layout := range startTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, ErrInvalidStartTime
}

// requireDoctor rejects doctors that are unknown or no longer employed
func (u *appointmentUsecase) requireDoctor(ctx context.Context, doctorID int) error {
	doctor, err := u.doctorRepo.FindByID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", doctorID, err)
		return err
	}
	if doctor == nil || !doctor.IsBookable() {
		return ErrDoctorNotFound
	}
	return nil
}

// requirePet rejects pets that belong to someone else or were removed
func (u *appointmentUsecase) requirePet(ctx context.Context, petID int, userID uuid.UUID) error {
	pet, err := u.petRepo.FindByIDAndOwner(ctx, petID, userID)
	if err != nil {
		u.log.Warnf("Failed to find pet %d: %+v", petID, err)
		return err
	}
	if pet == nil || !pet.IsPresent() {
		return ErrPetNotFound
	}
	return nil
}

func (u *appointmentUsecase) lockSlot(ctx context.Context, doctorID int, start time.Time) (func(), error) {
	release, err := u.locker.Lock(ctx, doctorID, start)
	if err != nil {
		if errors.Is(err, service.ErrSlotLocked) {
			return nil, ErrSlotUnavailable
		}
		u.log.Warnf("Failed to lock slot of doctor %d: %+v", doctorID, err)
		return nil, err
	}
	return release, nil
}

func (u *appointmentUsecase) checkDoctor(ctx context.Context, start time.Time, doctorID int) error {
	busy, err := u.conflicts.DoctorBusy(ctx, start, doctorID)
	if err != nil {
		u.log.Warnf("Failed to check doctor %d availability: %+v", doctorID, err)
		return err
	}
	if busy {
		return ErrSlotUnavailable
	}
	return nil
}

func (u *appointmentUsecase) checkConflicts(ctx context.Context, start time.Time, doctorID int, userID uuid.UUID) error {
	if err := u.checkDoctor(ctx, start, doctorID); err != nil {
		return err
	}

	busy, err := u.conflicts.UserBusy(ctx, start, userID)
	if err != nil {
		u.log.Warnf("Failed to check user %s availability: %+v", userID, err)
		return err
	}
	if busy {
		return ErrUserDoubleBooked
	}
	return nil
}

// publish sends a lifecycle event. Delivery failures are logged only.
func (u *appointmentUsecase) publish(ctx context.Context, eventType string, appointment *entity.Appointment) {
	event := service.AppointmentEvent{
		EventID:       uuid.New(),
		EventType:     eventType,
		AppointmentID: appointment.ID,
		Title:         appointment.Title,
		UserID:        appointment.UserID,
		DoctorID:      appointment.DoctorID,
		PetID:         appointment.PetID,
		StartTime:     appointment.StartTime,
		EndTime:       appointment.EndTime,
		Status:        string(appointment.Status),
		OccurredAt:    u.clock.Now(),
	}

	if err := u.publisher.Publish(ctx, event); err != nil {
		u.log.Warnf("Failed to publish %s for appointment %d: %+v", eventType, appointment.ID, err)
	}
}

// mapStoreError turns constraint violations reported by the store into usecase errors
func mapStoreError(err error) error {
	switch {
	case errors.Is(err, repository.ErrDoctorSlotTaken):
		return ErrSlotUnavailable
	case errors.Is(err, repository.ErrTitleTaken):
		return ErrDuplicateTitle
	case errors.Is(err, repository.ErrUnknownDoctor):
		return ErrDoctorNotFound
	case errors.Is(err, repository.ErrUnknownPet):
		return ErrPetNotFound
	case errors.Is(err, repository.ErrUnknownUser):
		return ErrUserNotFound
	}
	return err
}

func sameMinute(a, b time.Time) bool {
	return a.Truncate(time.Minute).Equal(b.Truncate(time.Minute))
}
