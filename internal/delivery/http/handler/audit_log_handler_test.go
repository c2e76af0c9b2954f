package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"vet-clinic/internal/delivery/dto"
	"vet-clinic/internal/usecase"
	"vet-clinic/pkg/validator"

	"github.com/gorilla/mux"
)

type stubAuditLogUsecase struct {
	query *dto.AuditLogQuery
	err   error
}

func (s *stubAuditLogUsecase) GetAuditLogs(_ context.Context, query *dto.AuditLogQuery) (*dto.AuditLogListResponse, error) {
	s.query = query
	if s.err != nil {
		return nil, s.err
	}
	return &dto.AuditLogListResponse{Logs: []dto.AuditLogResponse{}}, nil
}

func (s *stubAuditLogUsecase) GetAuditLog(_ context.Context, id int64) (*dto.AuditLogResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.AuditLogResponse{ID: id}, nil
}

func TestGetAuditLogsHandler(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		status int
	}{
		{"no filters", "", http.StatusOK},
		{"entity filter", "?entity=appointment&entity_id=4&limit=10", http.StatusOK},
		{"bad user id", "?user_id=abc", http.StatusBadRequest},
		{"limit not a number", "?limit=ten", http.StatusBadRequest},
		{"limit too large", "?limit=1000", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubAuditLogUsecase{}
			h := NewAuditLogHandler(stub, validator.NewValidator())

			rec := httptest.NewRecorder()
			h.GetAuditLogs(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/audit-logs"+tt.query, nil))

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body.String())
			}
			if tt.status == http.StatusOK && stub.query == nil {
				t.Fatalf("usecase was not called")
			}
		})
	}
}

func TestGetAuditLogsHandlerPassesFilters(t *testing.T) {
	stub := &stubAuditLogUsecase{}
	h := NewAuditLogHandler(stub, validator.NewValidator())

	h.GetAuditLogs(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/admin/audit-logs?action=pet.delete&entity=pet&entity_id=2&limit=5", nil))

	want := dto.AuditLogQuery{Action: "pet.delete", Entity: "pet", EntityID: "2", Limit: 5}
	if *stub.query != want {
		t.Fatalf("query = %+v, want %+v", *stub.query, want)
	}
}

func TestGetAuditLogHandler(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		err    error
		status int
	}{
		{"found", "12", nil, http.StatusOK},
		{"missing", "12", usecase.ErrAuditLogNotFound, http.StatusNotFound},
		{"bad id", "0", nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuditLogHandler(&stubAuditLogUsecase{err: tt.err}, validator.NewValidator())

			req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/v1/admin/audit-logs/"+tt.id, nil), map[string]string{"id": tt.id})
			rec := httptest.NewRecorder()
			h.GetAuditLog(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}
}
