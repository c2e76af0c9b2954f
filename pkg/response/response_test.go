package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, http.StatusCreated, "Appointment booked", map[string]string{"title": "Checkup"})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type = %q, want application/json", ct)
	}

	var body Response
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if !body.Success || body.Message != "Appointment booked" {
		t.Fatalf("body = %+v", body)
	}
}

func TestConflictDefaultsMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	Conflict(rec, "")

	var body Response
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if rec.Code != http.StatusConflict || body.Success || body.Message != "Conflict" {
		t.Fatalf("status = %d, body = %+v", rec.Code, body)
	}
}

func TestErrorDefaultsToStatusText(t *testing.T) {
	tests := []struct {
		write  func(http.ResponseWriter)
		status int
	}{
		{func(w http.ResponseWriter) { NotFound(w, "") }, http.StatusNotFound},
		{func(w http.ResponseWriter) { TooManyRequests(w, "") }, http.StatusTooManyRequests},
		{func(w http.ResponseWriter) { Unauthorized(w, "") }, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		tt.write(rec)

		var body Response
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode error = %v", err)
		}
		if rec.Code != tt.status || body.Message != http.StatusText(tt.status) {
			t.Fatalf("status = %d, message = %q", rec.Code, body.Message)
		}
	}
}

func TestValidationErrorCarriesFields(t *testing.T) {
	rec := httptest.NewRecorder()
	ValidationError(rec, map[string]string{"title": "title is required"})

	var body struct {
		Success bool              `json:"success"`
		Message string            `json:"message"`
		Error   map[string]string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if rec.Code != http.StatusBadRequest || body.Error["title"] != "title is required" {
		t.Fatalf("status = %d, body = %+v", rec.Code, body)
	}
}
