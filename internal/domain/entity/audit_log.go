package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AuditLog is one entry of the trail of state-changing actions.
// OldValue and NewValue hold the DTO snapshots around the change.
type AuditLog struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Action    string     `gorm:"type:varchar(100);not null;index" json:"action"`
	Entity    string     `gorm:"type:varchar(50);not null;index:idx_audit_logs_entity" json:"entity"`
	EntityID  string     `gorm:"type:varchar(64);not null;index:idx_audit_logs_entity" json:"entity_id"`
	OldValue  Snapshot   `gorm:"type:jsonb" json:"old_value,omitempty"`
	NewValue  Snapshot   `gorm:"type:jsonb" json:"new_value,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// AuditLogFilter narrows an audit log listing. Zero fields match everything.
type AuditLogFilter struct {
	Action   string
	Entity   string
	EntityID string
	UserID   *uuid.UUID
	Limit    int
}

// Snapshot is raw JSON stored in a jsonb column
type Snapshot json.RawMessage

// NewSnapshot marshals v, a nil v gives an empty snapshot
func NewSnapshot(v interface{}) (Snapshot, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(raw) == "null" {
		return nil, nil
	}
	return Snapshot(raw), nil
}

func (s Snapshot) Value() (driver.Value, error) {
	if len(s) == 0 {
		return nil, nil
	}
	return []byte(s), nil
}

func (s *Snapshot) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*s = nil
	case []byte:
		*s = append((*s)[:0], v...)
	case string:
		*s = Snapshot(v)
	default:
		return fmt.Errorf("cannot scan %T into Snapshot", value)
	}
	return nil
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	if len(s) == 0 {
		return []byte("null"), nil
	}
	return s, nil
}

func (s *Snapshot) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = nil
		return nil
	}
	*s = append((*s)[:0], data...)
	return nil
}

// Audit actions
const (
	AuditActionUserLogin         = "user.login"
	AuditActionUserLogout        = "user.logout"
	AuditActionUserRegister      = "user.register"
	AuditActionUserDelete        = "user.delete"
	AuditActionAppointmentCreate = "appointment.create"
	AuditActionAppointmentUpdate = "appointment.update"
	AuditActionAppointmentCancel = "appointment.cancel"
	AuditActionAppointmentDelete = "appointment.delete"
	AuditActionDoctorCreate      = "doctor.create"
	AuditActionDoctorDelete      = "doctor.delete"
	AuditActionPetCreate         = "pet.create"
	AuditActionPetDelete         = "pet.delete"
)
