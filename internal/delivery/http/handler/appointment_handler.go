package handler

import (
	"net/http"
	"strconv"

	"vet-clinic/internal/delivery/dto"
	"vet-clinic/internal/usecase"
	"vet-clinic/pkg/response"
	"vet-clinic/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

// CreateAppointment handles booking by the authenticated user
// @Summary Book an appointment
// @Description Book a 30 minute slot with a doctor for one of the user's pets
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateAppointmentRequest true "Create Appointment Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments [post]
func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.CreateAppointmentRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	h.create(w, r, userID, &req)
}

// AdminCreateAppointment books on behalf of the user named in the body
func (h *AppointmentHandler) AdminCreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.AdminCreateAppointmentRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	h.create(w, r, req.UserID, &req.CreateAppointmentRequest)
}

func (h *AppointmentHandler) create(w http.ResponseWriter, r *http.Request, userID uuid.UUID, req *dto.CreateAppointmentRequest) {
	appointment, err := h.appointmentUsecase.CreateAppointment(r.Context(), userID, req)
	if err != nil {
		writeAppointmentError(w, err, "Failed to create appointment")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

// EditAppointment handles rescheduling or renaming an appointment
// @Summary Edit an appointment
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.EditAppointmentRequest true "Edit Appointment Request"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments [put]
func (h *AppointmentHandler) EditAppointment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.EditAppointmentRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	h.edit(w, r, userID, &req)
}

func (h *AppointmentHandler) AdminEditAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.AdminEditAppointmentRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	h.edit(w, r, req.UserID, &req.EditAppointmentRequest)
}

func (h *AppointmentHandler) edit(w http.ResponseWriter, r *http.Request, userID uuid.UUID, req *dto.EditAppointmentRequest) {
	appointment, err := h.appointmentUsecase.EditAppointment(r.Context(), userID, req)
	if err != nil {
		writeAppointmentError(w, err, "Failed to update appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment updated successfully", appointment)
}

// CancelAppointment marks one of the user's appointments CANCELED
// @Summary Cancel an appointment
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CancelAppointmentRequest true "Cancel Appointment Request"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /appointments/cancel [post]
func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.CancelAppointmentRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	if err := h.appointmentUsecase.CancelAppointment(r.Context(), userID, req.Title); err != nil {
		writeAppointmentError(w, err, "Failed to cancel appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment canceled successfully", nil)
}

// DeleteAppointment removes one of the user's appointments by title
func (h *AppointmentHandler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	h.delete(w, r, userID, mux.Vars(r)["title"])
}

func (h *AppointmentHandler) AdminDeleteAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.AdminDeleteAppointmentRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	h.delete(w, r, req.UserID, req.Title)
}

func (h *AppointmentHandler) delete(w http.ResponseWriter, r *http.Request, userID uuid.UUID, title string) {
	if err := h.appointmentUsecase.DeleteAppointment(r.Context(), userID, title); err != nil {
		writeAppointmentError(w, err, "Failed to delete appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment deleted successfully", nil)
}

// GetUpcomingAppointments lists the user's booked appointments that have not started
// @Summary List upcoming appointments
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /appointments [get]
func (h *AppointmentHandler) GetUpcomingAppointments(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	appointments, err := h.appointmentUsecase.GetUpcomingAppointments(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetAllAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentUsecase.GetAllAppointments(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// GetAppointment looks up one of the user's appointments by ?title=
func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	title := r.URL.Query().Get("title")
	if title == "" {
		response.BadRequest(w, "title is required")
		return
	}

	appointment, err := h.appointmentUsecase.GetAppointment(r.Context(), userID, title)
	if err != nil {
		writeAppointmentError(w, err, "Failed to get appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

// LookupAppointment finds an appointment by ?title= and the owner's ?surname=
func (h *AppointmentHandler) LookupAppointment(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	title, surname := query.Get("title"), query.Get("surname")
	if title == "" || surname == "" {
		response.BadRequest(w, "title and surname are required")
		return
	}

	appointment, err := h.appointmentUsecase.GetAppointmentByUserSurname(r.Context(), title, surname)
	if err != nil {
		writeAppointmentError(w, err, "Failed to get appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

// GetFreeSlots lists the open slots of ?doctor_id= on ?date=YYYY-MM-DD
// @Summary List free slots
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param doctor_id query int true "Doctor ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /appointments/slots [get]
func (h *AppointmentHandler) GetFreeSlots(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	doctorID, err := strconv.Atoi(query.Get("doctor_id"))
	if err != nil || doctorID <= 0 {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	slots, err := h.appointmentUsecase.GetFreeSlots(r.Context(), doctorID, query.Get("date"))
	if err != nil {
		writeAppointmentError(w, err, "Failed to get free slots")
		return
	}

	response.Success(w, http.StatusOK, "Free slots retrieved successfully", slots)
}

func (h *AppointmentHandler) GetBookingOptions(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	options, err := h.appointmentUsecase.GetBookingOptions(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to get booking options")
		return
	}

	response.Success(w, http.StatusOK, "Booking options retrieved successfully", options)
}

func writeAppointmentError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrDuplicateTitle, usecase.ErrSlotUnavailable, usecase.ErrUserDoubleBooked:
		response.Conflict(w, err.Error())
	case usecase.ErrAppointmentNotFound, usecase.ErrDoctorNotFound, usecase.ErrPetNotFound, usecase.ErrUserNotFound:
		response.NotFound(w, err.Error())
	case usecase.ErrInvalidStartTime, usecase.ErrInvalidStatus, usecase.ErrInvalidDateFormat:
		response.BadRequest(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}
