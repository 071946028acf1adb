package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/agisfl/agisfl/internal/api/dto"
	"github.com/agisfl/agisfl/internal/api/middleware"
	"github.com/agisfl/agisfl/internal/auth"
	"github.com/agisfl/agisfl/internal/config"
	"github.com/agisfl/agisfl/internal/domain/user"
	"github.com/agisfl/agisfl/internal/pkg/errors"
	"github.com/agisfl/agisfl/internal/pkg/logger"
	"github.com/agisfl/agisfl/internal/pkg/utils"
	"github.com/agisfl/agisfl/internal/pkg/validator"
)

type AuthHandler struct {
	userService user.Service
	config      *config.Config
	logger      *logger.Logger
	validator   *validator.Validator
}

func NewAuthHandler(
	userService user.Service,
	cfg *config.Config,
	log *logger.Logger,
	val *validator.Validator,
) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		config:      cfg,
		logger:      log,
		validator:   val,
	}
}

// Login handles user login
// @Summary User login
// @Description Authenticate user with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse "Successfully authenticated"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 401 {object} utils.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	account, err := h.userService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.WithFields(map[string]interface{}{"email": req.Email}).Warn("Authentication failed")
		writeServiceError(w, err, "Authentication failed")
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"user_id": account.ID,
		"email":   account.Email,
	}).Info("User logged in")

	h.issueTokens(w, account, http.StatusOK)
}

// Register handles user registration
// @Summary Register a new user
// @Description Create a user account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.AuthResponse "User created"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 409 {object} utils.ErrorResponse "Email already registered"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	// Admin accounts are provisioned out of band, never self-registered.
	role := req.Role
	if role == user.RoleAdmin {
		role = user.RoleAnalyst
	}

	account, err := h.userService.Register(r.Context(), req.Email, req.Username, req.Password, role)
	if err != nil {
		writeServiceError(w, err, "Failed to register user")
		return
	}

	h.issueTokens(w, account, http.StatusCreated)
}

// Refresh exchanges a refresh token for a new token pair
// @Summary Refresh tokens
// @Description Exchange a refresh token for a new access/refresh pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.AuthResponse "New token pair"
// @Failure 401 {object} utils.ErrorResponse "Invalid refresh token"
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Fall back to the cookie set at login
		cookie, cerr := r.Cookie("refreshToken")
		if cerr != nil {
			utils.WriteError(w, errors.BadRequest("Invalid request body"))
			return
		}
		req.RefreshToken = cookie.Value
	}

	claims, err := auth.ParseClaims(req.RefreshToken, h.config.Auth.JWTSecret)
	if err != nil {
		utils.WriteError(w, errors.Unauthorized("Invalid or expired refresh token"))
		return
	}

	account, err := h.userService.GetByID(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, err, "Failed to load user")
		return
	}

	h.issueTokens(w, account, http.StatusOK)
}

// Me returns the authenticated user
// @Summary Current user
// @Description Get the authenticated user's profile
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.UserDTO "Current user"
// @Failure 401 {object} utils.ErrorResponse "Not authenticated"
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Not authenticated"))
		return
	}

	account, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, "Failed to load user")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, toUserDTO(account))
}

// decodeAndValidate parses the body into req and runs struct validation,
// writing the error response itself on failure.
func (h *AuthHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return false
	}
	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return false
	}
	return true
}

// issueTokens mints a token pair for the account, sets the auth cookies
// and writes the auth response.
func (h *AuthHandler) issueTokens(w http.ResponseWriter, account *user.User, status int) {
	tokens, err := auth.MintTokens(
		account.ID,
		account.Email,
		account.Role,
		h.config.Auth.JWTSecret,
		h.config.Auth.AccessTokenExpiry,
		h.config.Auth.RefreshTokenExpiry,
	)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to generate tokens")
		utils.WriteError(w, errors.Internal("Failed to generate tokens", err))
		return
	}

	h.setAuthCookies(w, tokens)

	utils.WriteSuccess(w, status, dto.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         toUserDTO(account),
	})
}

func (h *AuthHandler) setAuthCookies(w http.ResponseWriter, tokens auth.TokenPair) {
	secure := h.config.Server.Environment == "production"

	http.SetCookie(w, &http.Cookie{
		Name:     "accessToken",
		Value:    tokens.AccessToken,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   int(h.config.Auth.AccessTokenExpiry.Seconds()),
	})

	http.SetCookie(w, &http.Cookie{
		Name:     "refreshToken",
		Value:    tokens.RefreshToken,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   int(h.config.Auth.RefreshTokenExpiry.Seconds()),
	})
}

func toUserDTO(u *user.User) *dto.UserDTO {
	return &dto.UserDTO{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Username,
		Role:     u.Role,
	}
}
