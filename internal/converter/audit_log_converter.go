package converter

import (
	"vet-clinic/internal/delivery/dto"
	"vet-clinic/internal/domain/entity"

	"github.com/google/uuid"
)

// AuditLogToResponse maps an audit entry to its API shape, nil stays nil
func AuditLogToResponse(log *entity.AuditLog) *dto.AuditLogResponse {
	if log == nil {
		return nil
	}

	return &dto.AuditLogResponse{
		ID:        log.ID,
		User:      UserToResponse(log.User),
		Action:    log.Action,
		Entity:    log.Entity,
		EntityID:  log.EntityID,
		OldValue:  log.OldValue,
		NewValue:  log.NewValue,
		CreatedAt: log.CreatedAt,
	}
}

func AuditLogsToListResponse(logs []entity.AuditLog) *dto.AuditLogListResponse {
	out := &dto.AuditLogListResponse{
		Logs:  make([]dto.AuditLogResponse, 0, len(logs)),
		Total: len(logs),
	}
	for i := range logs {
		out.Logs = append(out.Logs, *AuditLogToResponse(&logs[i]))
	}
	return out
}

// AuditLogQueryToFilter expects a validated query, a malformed user id is dropped
func AuditLogQueryToFilter(q *dto.AuditLogQuery) entity.AuditLogFilter {
	filter := entity.AuditLogFilter{
		Action:   q.Action,
		Entity:   q.Entity,
		EntityID: q.EntityID,
		Limit:    q.Limit,
	}
	if id, err := uuid.Parse(q.UserID); err == nil {
		filter.UserID = &id
	}
	return filter
}
