package handler

import (
	"encoding/json"
	"net/http"

	"vet-clinic/internal/delivery/http/middleware"
	"vet-clinic/pkg/response"
	"vet-clinic/pkg/validator"

	"github.com/google/uuid"
)

const maxBodyBytes = 1 << 20

// bindJSON decodes the body into req and validates it.
// It writes the 400 response itself and reports whether the handler may continue.
func bindJSON(w http.ResponseWriter, r *http.Request, v *validator.CustomValidator, req interface{}) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return false
	}

	if err := v.Validate(req); err != nil {
		response.ValidationError(w, v.FormatValidationErrors(err))
		return false
	}
	return true
}

// requireUser returns the authenticated user id or writes a 401
func requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
	}
	return userID, ok
}
