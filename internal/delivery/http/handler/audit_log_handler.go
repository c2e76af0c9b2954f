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

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
	validator       *validator.CustomValidator
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase, validator *validator.CustomValidator) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
		validator:       validator,
	}
}

// GetAuditLog handles getting a single audit trail entry
// @Summary Get audit log
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param id path int true "Audit log ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/audit-logs/{id} [get]
func (h *AuditLogHandler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		response.Error(w, http.StatusBadRequest, "Invalid audit log ID", nil)
		return
	}

	auditLog, err := h.auditLogUsecase.GetAuditLog(r.Context(), id)
	switch err {
	case nil:
		response.Success(w, http.StatusOK, "Audit log retrieved successfully", auditLog)
	case usecase.ErrAuditLogNotFound:
		response.NotFound(w, "Audit log not found")
	default:
		response.InternalServerError(w, "Failed to get audit log")
	}
}

// GetAuditLogs lists the audit trail, newest first
// @Summary List audit logs
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param action query string false "Action, e.g. appointment.create"
// @Param entity query string false "Entity name, e.g. appointment"
// @Param entity_id query string false "Entity identifier"
// @Param user_id query string false "Acting user ID"
// @Param limit query int false "Maximum entries (1-500)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/audit-logs [get]
func (h *AuditLogHandler) GetAuditLogs(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	query := dto.AuditLogQuery{
		Action:   values.Get("action"),
		Entity:   values.Get("entity"),
		EntityID: values.Get("entity_id"),
		UserID:   values.Get("user_id"),
	}
	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			response.ValidationError(w, map[string]string{"limit": "limit must be a number"})
			return
		}
		query.Limit = limit
	}

	if err := h.validator.Validate(&query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	auditLogs, err := h.auditLogUsecase.GetAuditLogs(r.Context(), &query)
	if err != nil {
		response.InternalServerError(w, "Failed to get audit logs")
		return
	}

	response.Success(w, http.StatusOK, "Audit logs retrieved successfully", auditLogs)
}
