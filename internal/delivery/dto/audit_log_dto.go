package dto

import (
	"time"

	"vet-clinic/internal/domain/entity"
)

// AuditLogQuery carries the audit trail filters taken from the query string
type AuditLogQuery struct {
	Action   string `json:"action" validate:"omitempty,max=100"`
	Entity   string `json:"entity" validate:"omitempty,max=50"`
	EntityID string `json:"entity_id" validate:"omitempty,max=64"`
	UserID   string `json:"user_id" validate:"omitempty,uuid"`
	Limit    int    `json:"limit" validate:"omitempty,min=1,max=500"`
}

type AuditLogResponse struct {
	ID        int64           `json:"id"`
	User      *UserResponse   `json:"user,omitempty"`
	Action    string          `json:"action"`
	Entity    string          `json:"entity"`
	EntityID  string          `json:"entity_id"`
	OldValue  entity.Snapshot `json:"old_value,omitempty"`
	NewValue  entity.Snapshot `json:"new_value,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int                `json:"total"`
}
