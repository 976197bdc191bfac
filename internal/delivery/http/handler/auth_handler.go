package handler

import (
	"encoding/json"
	"net/http"

	"doctor-finder/internal/converter"
	"doctor-finder/internal/delivery/dto"
	"doctor-finder/internal/delivery/http/middleware"
	"doctor-finder/internal/usecase"
	"doctor-finder/internal/validation"
	"doctor-finder/pkg/response"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	rules       *validation.CredentialRules
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, rules *validation.CredentialRules) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		rules:       rules,
	}
}

// Login handles the login form
// @Summary Login user
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if errs := h.rules.Login.Validate(req.Form()); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	state, err := h.authUsecase.Login(r.Context(), clientID(r), &req)
	if err != nil {
		response.Error(w, http.StatusUnauthorized, "Login failed", nil)
		return
	}

	response.Success(w, http.StatusOK, "Login successful", state)
}

// Signup handles the signup form
// @Summary Register a new user
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Signup Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if errs := h.rules.Signup.Validate(req.Form()); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	state, err := h.authUsecase.Signup(r.Context(), clientID(r), &req)
	if err != nil {
		response.Error(w, http.StatusUnauthorized, "Signup failed", nil)
		return
	}

	response.Success(w, http.StatusCreated, "User registered successfully", state)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	state := h.authUsecase.Logout(r.Context(), clientID(r))
	response.Success(w, http.StatusOK, "Logout successful", state)
}

func (h *AuthHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	state := h.authUsecase.Session(r.Context(), clientID(r))
	response.Success(w, http.StatusOK, "Session retrieved successfully", state)
}

// GetCurrentUser serves protected routes; AuthMiddleware has already
// checked the session token.
func (h *AuthHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid session")
		return
	}

	response.Success(w, http.StatusOK, "User retrieved successfully", converter.UserToResponse(user))
}
