package handler

import (
	"net/http"
	"strconv"

	"vet-clinic/internal/delivery/dto"
	"vet-clinic/internal/usecase"
	"vet-clinic/pkg/response"
	"vet-clinic/pkg/validator"

	"github.com/gorilla/mux"
)

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
	}
}

// CreateDoctor hires a doctor
// @Summary Create doctor
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateDoctorRequest true "Doctor"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/doctors [post]
func (h *DoctorHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	adminID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.CreateDoctorRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	doctor, err := h.doctorUsecase.CreateDoctor(r.Context(), adminID, &req)
	switch err {
	case nil:
		response.Success(w, http.StatusCreated, "Doctor created successfully", doctor)
	case usecase.ErrDoctorEmailExists:
		response.Conflict(w, "Email already exists")
	default:
		response.InternalServerError(w, "Failed to create doctor")
	}
}

// GetDoctor returns one doctor, ex-employees included
// @Summary Get doctor
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param id path int true "Doctor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/doctors/{id} [get]
func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := doctorIDParam(w, r)
	if !ok {
		return
	}

	doctor, err := h.doctorUsecase.GetDoctor(r.Context(), doctorID)
	switch err {
	case nil:
		response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
	case usecase.ErrDoctorNotFound:
		response.NotFound(w, "Doctor not found")
	default:
		response.InternalServerError(w, "Failed to get doctor")
	}
}

// GetAllDoctors lists every doctor, or only current employees with ?current=true
// @Summary List doctors
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param current query bool false "Only current employees"
// @Success 200 {object} response.Response
// @Router /admin/doctors [get]
func (h *DoctorHandler) GetAllDoctors(w http.ResponseWriter, r *http.Request) {
	list := h.doctorUsecase.GetAllDoctors
	if current, _ := strconv.ParseBool(r.URL.Query().Get("current")); current {
		list = h.doctorUsecase.GetCurrentDoctors
	}

	doctors, err := list(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

// DeleteDoctor turns the doctor into an ex-employee, past appointments keep pointing at them
// @Summary Delete doctor
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param id path int true "Doctor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/doctors/{id} [delete]
func (h *DoctorHandler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	adminID, ok := requireUser(w, r)
	if !ok {
		return
	}
	doctorID, ok := doctorIDParam(w, r)
	if !ok {
		return
	}

	err := h.doctorUsecase.DeleteDoctor(r.Context(), adminID, doctorID)
	switch err {
	case nil:
		response.Success(w, http.StatusOK, "Doctor deleted successfully", nil)
	case usecase.ErrDoctorNotFound:
		response.NotFound(w, "Doctor not found")
	default:
		response.InternalServerError(w, "Failed to delete doctor")
	}
}

func doctorIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		response.BadRequest(w, "Invalid doctor ID")
		return 0, false
	}
	return id, true
}
