package controllers

import (
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"staffline/internal/delivery/http/helpers"
	"staffline/internal/delivery/http/middleware"
	"staffline/internal/domain"
)

// emailRegex matches a simple email format (local@domain with at least one dot in domain).
var emailRegex = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

type AuthController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

func NewAuthController(logger *slog.Logger, svc domain.UserService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// SignUpRequest is the request body for POST /auth/signup.
type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	OrgID    string `json:"org_id"`
}

// Validate implements Validator.
func (s SignUpRequest) Validate() []string {
	var errs []string
	if s.Email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegex.MatchString(strings.TrimSpace(s.Email)) {
		errs = append(errs, "email must be a valid email address")
	}
	if len(s.Password) < 8 {
		errs = append(errs, "password must be at least 8 characters")
	}
	if strings.TrimSpace(s.OrgID) == "" {
		errs = append(errs, "org_id is required")
	}
	return errs
}

// SignUpSuccessResponse is the success response envelope for POST /auth/signup (201).
type SignUpSuccessResponse struct {
	Data  *domain.Profile   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SignUp godoc
// @Summary Register a new user
// @Description Creates a profile in the given organization. The first user of an organization becomes its admin; later signups are staff pending validation.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body SignUpRequest true "Signup data"
// @Success 201 {object} controllers.SignUpSuccessResponse "data contains the created profile"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (no such organization)"
// @Failure 409 {object} helpers.APIResponse "error.code: bad_request (email already registered)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/signup [post]
func (c *AuthController) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	profile, err := c.Service.SignUp(r.Context(), req.Email, req.Password, req.FullName, req.OrgID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, profile)
}

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (l LoginRequest) Validate() []string {
	var errs []string
	if l.Email == "" {
		errs = append(errs, "email is required")
	}
	if l.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// LoginResponse is the data payload for POST /auth/login (200).
type LoginResponse struct {
	Token   string          `json:"token"`
	Profile *domain.Profile `json:"profile"`
}

// LoginSuccessResponse is the success response envelope for POST /auth/login (200).
type LoginSuccessResponse struct {
	Data  LoginResponse     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Login godoc
// @Summary Log in
// @Description Verifies credentials and returns a Bearer token plus the profile. Inactive accounts and bad credentials both return 401.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} controllers.LoginSuccessResponse "data contains token and profile"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	token, profile, err := c.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, LoginResponse{Token: token, Profile: profile})
}

// MeSuccessResponse is the success response envelope for GET /me (200).
type MeSuccessResponse struct {
	Data  *domain.Profile   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Me godoc
// @Summary Get the authenticated profile
// @Description Returns the profile of the Bearer token's user.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.MeSuccessResponse "data contains the profile"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /me [get]
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	profile, err := c.Service.GetProfile(r.Context(), userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, profile)
}

// ListStaffSuccessResponse is the success response envelope for GET /staff (200).
type ListStaffSuccessResponse struct {
	Data  []*domain.Profile `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListStaff godoc
// @Summary List staff in the caller's organization
// @Description Returns the staff profiles of the admin's organization.
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListStaffSuccessResponse "data is an array of profiles"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not admin)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /staff [get]
func (c *AuthController) ListStaff(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	staff, err := c.Service.ListStaff(r.Context(), userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	if staff == nil {
		staff = []*domain.Profile{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, staff)
}

// ValidateStaffResponse is the data payload for POST /staff/{staffID}/validate (200).
type ValidateStaffResponse struct {
	Status string `json:"status"`
}

// ValidateStaffSuccessResponse is the success response envelope for POST /staff/{staffID}/validate (200).
type ValidateStaffSuccessResponse struct {
	Data  ValidateStaffResponse `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// ValidateStaff godoc
// @Summary Mark a staff member as validated
// @Description Flags the staff profile as validated by an admin of the same organization.
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Param staffID path string true "Staff profile ID (UUID)"
// @Success 200 {object} controllers.ValidateStaffSuccessResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not admin)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /staff/{staffID}/validate [post]
func (c *AuthController) ValidateStaff(w http.ResponseWriter, r *http.Request) {
	staffID := r.PathValue("staffID")
	if staffID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing staffID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.ValidateStaff(r.Context(), userID, staffID); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ValidateStaffResponse{Status: "validated"})
}

// SetStaffStatusRequest is the request body for PATCH /staff/{staffID}/status.
type SetStaffStatusRequest struct {
	Status string `json:"status"`
}

// Validate implements Validator.
func (s SetStaffStatusRequest) Validate() []string {
	if s.Status != domain.ProfileStatusActive && s.Status != domain.ProfileStatusInactive {
		return []string{"status must be active or inactive"}
	}
	return nil
}

// SetStaffStatusSuccessResponse is the success response envelope for PATCH /staff/{staffID}/status (200).
type SetStaffStatusSuccessResponse struct {
	Data  ValidateStaffResponse `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// SetStaffStatus godoc
// @Summary Activate or deactivate a staff member
// @Description Sets the staff profile's status. Inactive staff cannot log in.
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param staffID path string true "Staff profile ID (UUID)"
// @Param body body SetStaffStatusRequest true "New status (active or inactive)"
// @Success 200 {object} controllers.SetStaffStatusSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not admin)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /staff/{staffID}/status [patch]
func (c *AuthController) SetStaffStatus(w http.ResponseWriter, r *http.Request) {
	staffID := r.PathValue("staffID")
	if staffID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing staffID")
		return
	}
	var req SetStaffStatusRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.SetStaffStatus(r.Context(), userID, staffID, req.Status); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ValidateStaffResponse{Status: req.Status})
}
