package handler

import (
	"encoding/json"
	"net/http"

	"vet-clinic/internal/delivery/dto"
	"vet-clinic/internal/delivery/http/middleware"
	"vet-clinic/internal/usecase"
	"vet-clinic/pkg/response"
	"vet-clinic/pkg/validator"
)

// AuthHandler serves account registration and the token lifecycle
type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *validator.CustomValidator
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, validator *validator.CustomValidator) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator,
	}
}

// Register creates a pet owner account
// @Summary Register a pet owner
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Owner details"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	user, err := h.authUsecase.Register(r.Context(), &req)
	switch err {
	case nil:
		response.Success(w, http.StatusCreated, "User registered successfully", user)
	case usecase.ErrEmailAlreadyExists:
		response.Conflict(w, "Email already exists")
	default:
		response.InternalServerError(w, "Failed to register user")
	}
}

// Login exchanges credentials for an access and refresh token pair
// @Summary Login
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	tokens, err := h.authUsecase.Login(r.Context(), &req)
	switch err {
	case nil:
		response.Success(w, http.StatusOK, "Login successful", tokens)
	case usecase.ErrInvalidCredentials:
		response.Unauthorized(w, "Invalid email or password")
	case usecase.ErrUserInactive:
		response.Forbidden(w, "User account is deleted")
	default:
		response.InternalServerError(w, "Failed to login")
	}
}

// Logout revokes the presented access token and an optional refresh token
// @Summary Logout
// @Tags Auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest false "Refresh token to revoke as well"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	tokenID, ok := middleware.GetTokenIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	// An empty or unreadable body only skips the refresh token revocation
	var req dto.RefreshTokenRequest
	_ = json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req)

	if err := h.authUsecase.Logout(r.Context(), userID, tokenID, req.RefreshToken); err != nil {
		response.InternalServerError(w, "Failed to logout")
		return
	}

	response.Success(w, http.StatusOK, "Logout successful", nil)
}

// RefreshToken rotates a refresh token into a new token pair
// @Summary Refresh tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/refresh-token [post]
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshTokenRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	tokens, err := h.authUsecase.RefreshToken(r.Context(), &req)
	switch err {
	case nil:
		response.Success(w, http.StatusOK, "Token refreshed successfully", tokens)
	case usecase.ErrInvalidToken, usecase.ErrTokenRevoked, usecase.ErrUserInactive, usecase.ErrUserNotFound:
		response.Unauthorized(w, err.Error())
	default:
		response.InternalServerError(w, "Failed to refresh token")
	}
}

// GetCurrentUser returns the authenticated account
// @Summary Current user
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	user, err := h.authUsecase.GetCurrentUser(r.Context(), userID)
	switch err {
	case nil:
		response.Success(w, http.StatusOK, "User retrieved successfully", user)
	case usecase.ErrUserNotFound:
		response.NotFound(w, "User not found")
	default:
		response.InternalServerError(w, "Failed to get user info")
	}
}
