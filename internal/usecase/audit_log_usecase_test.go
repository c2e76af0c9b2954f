package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"vet-clinic/internal/delivery/dto"
	"vet-clinic/internal/domain/entity"

	"github.com/google/uuid"
)

type memAuditLogRepo struct {
	logs    []entity.AuditLog
	filters []entity.AuditLogFilter
	err     error
}

func (r *memAuditLogRepo) Create(_ context.Context, log *entity.AuditLog) error {
	log.ID = int64(len(r.logs) + 1)
	r.logs = append(r.logs, *log)
	return nil
}

func (r *memAuditLogRepo) Find(_ context.Context, filter entity.AuditLogFilter) ([]entity.AuditLog, error) {
	r.filters = append(r.filters, filter)
	if r.err != nil {
		return nil, r.err
	}
	var out []entity.AuditLog
	for i := len(r.logs) - 1; i >= 0; i-- {
		l := r.logs[i]
		if filter.Action != "" && l.Action != filter.Action {
			continue
		}
		if filter.Entity != "" && l.Entity != filter.Entity {
			continue
		}
		if filter.EntityID != "" && l.EntityID != filter.EntityID {
			continue
		}
		if filter.UserID != nil && (l.UserID == nil || *l.UserID != *filter.UserID) {
			continue
		}
		out = append(out, l)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (r *memAuditLogRepo) FindByID(_ context.Context, id int64) (*entity.AuditLog, error) {
	if r.err != nil {
		return nil, r.err
	}
	for i := range r.logs {
		if r.logs[i].ID == id {
			return &r.logs[i], nil
		}
	}
	return nil, nil
}

func seededAuditRepo(actor uuid.UUID) *memAuditLogRepo {
	repo := &memAuditLogRepo{}
	at := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	entries := []entity.AuditLog{
		{UserID: &actor, Action: entity.AuditActionAppointmentCreate, Entity: "appointment", EntityID: "1", NewValue: entity.Snapshot(`{"title":"Checkup"}`)},
		{UserID: &actor, Action: entity.AuditActionAppointmentCancel, Entity: "appointment", EntityID: "1"},
		{Action: entity.AuditActionDoctorCreate, Entity: "doctor", EntityID: "4"},
	}
	for i := range entries {
		entries[i].CreatedAt = at.Add(time.Duration(i) * time.Minute)
		_ = repo.Create(context.Background(), &entries[i])
	}
	return repo
}

func TestGetAuditLogsFilters(t *testing.T) {
	actor := uuid.New()

	tests := []struct {
		name    string
		query   *dto.AuditLogQuery
		actions []string
	}{
		{"everything newest first", nil, []string{entity.AuditActionDoctorCreate, entity.AuditActionAppointmentCancel, entity.AuditActionAppointmentCreate}},
		{"by entity", &dto.AuditLogQuery{Entity: "appointment", EntityID: "1"}, []string{entity.AuditActionAppointmentCancel, entity.AuditActionAppointmentCreate}},
		{"by action", &dto.AuditLogQuery{Action: entity.AuditActionDoctorCreate}, []string{entity.AuditActionDoctorCreate}},
		{"by user", &dto.AuditLogQuery{UserID: actor.String()}, []string{entity.AuditActionAppointmentCancel, entity.AuditActionAppointmentCreate}},
		{"limited", &dto.AuditLogQuery{Limit: 1}, []string{entity.AuditActionDoctorCreate}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewAuditLogUsecase(quietLogger(), seededAuditRepo(actor))

			res, err := uc.GetAuditLogs(context.Background(), tt.query)
			if err != nil {
				t.Fatalf("GetAuditLogs() error = %v", err)
			}
			if res.Total != len(tt.actions) {
				t.Fatalf("Total = %d, want %d", res.Total, len(tt.actions))
			}
			for i, want := range tt.actions {
				if res.Logs[i].Action != want {
					t.Fatalf("Logs[%d].Action = %q, want %q", i, res.Logs[i].Action, want)
				}
			}
		})
	}
}

func TestGetAuditLogsAppliesDefaultLimit(t *testing.T) {
	repo := &memAuditLogRepo{}
	uc := NewAuditLogUsecase(quietLogger(), repo)

	if _, err := uc.GetAuditLogs(context.Background(), &dto.AuditLogQuery{}); err != nil {
		t.Fatalf("GetAuditLogs() error = %v", err)
	}
	if got := repo.filters[0].Limit; got != defaultAuditLogLimit {
		t.Fatalf("Limit = %d, want %d", got, defaultAuditLogLimit)
	}
	if res, _ := uc.GetAuditLogs(context.Background(), nil); res.Logs == nil {
		t.Fatalf("Logs should be an empty list, not nil")
	}
}

func TestGetAuditLog(t *testing.T) {
	repo := seededAuditRepo(uuid.New())
	uc := NewAuditLogUsecase(quietLogger(), repo)

	got, err := uc.GetAuditLog(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetAuditLog() error = %v", err)
	}
	if got.Entity != "appointment" || string(got.NewValue) != `{"title":"Checkup"}` {
		t.Fatalf("GetAuditLog() = %+v", got)
	}

	if _, err := uc.GetAuditLog(context.Background(), 99); err != ErrAuditLogNotFound {
		t.Fatalf("missing entry error = %v, want %v", err, ErrAuditLogNotFound)
	}

	repo.err = errors.New("connection reset")
	if _, err := uc.GetAuditLog(context.Background(), 1); err != repo.err {
		t.Fatalf("store error = %v, want %v", err, repo.err)
	}
	if _, err := uc.GetAuditLogs(context.Background(), nil); err != repo.err {
		t.Fatalf("listing store error = %v, want %v", err, repo.err)
	}
}
