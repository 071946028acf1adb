package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/agisfl/agisfl/internal/api/middleware"
	"github.com/agisfl/agisfl/internal/config"
	"github.com/agisfl/agisfl/internal/domain/user"
	"github.com/agisfl/agisfl/internal/pkg/validator"
	"github.com/agisfl/agisfl/internal/services"
	"github.com/agisfl/agisfl/internal/testutil"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Environment: "test"},
		Auth: config.AuthConfig{
			JWTSecret:          "test-secret",
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 24 * time.Hour,
			BCryptCost:         4,
		},
	}
}

func newAuthTestRouter() (chi.Router, user.Service) {
	log := testLogger()
	cfg := testAuthConfig()
	service := services.NewUserService(testutil.NewMockUserRepository(), cfg.Auth.BCryptCost, log)
	handler := NewAuthHandler(service, cfg, log, validator.New())

	r := chi.NewRouter()
	r.Post("/api/auth/register", handler.Register)
	r.Post("/api/auth/login", handler.Login)
	r.Post("/api/auth/refresh", handler.Refresh)
	r.Get("/api/auth/me", handler.Me)
	return r, service
}

type authResponseBody struct {
	Success bool `json:"success"`
	Data    struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
		User         struct {
			ID    int64  `json:"id"`
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	} `json:"data"`
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name:           "valid registration",
			body:           `{"email":"new@agisfl.local","username":"new","password":"secret123"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "invalid email",
			body:           `{"email":"not-an-email","username":"new","password":"secret123"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "short password",
			body:           `{"email":"new@agisfl.local","username":"new","password":"abc"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid role",
			body:           `{"email":"new@agisfl.local","username":"new","password":"secret123","role":"root"}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newAuthTestRouter()

			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d, body: %s", rr.Code, tt.expectedStatus, rr.Body.String())
			}
		})
	}
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	router, _ := newAuthTestRouter()
	body := `{"email":"dup@agisfl.local","username":"dup","password":"secret123"}`

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("first register status = %d, want 201", rr.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString(body))
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusConflict {
		t.Errorf("second register status = %d, want 409", rr.Code)
	}
}

func TestAuthHandler_LoginFlow(t *testing.T) {
	router, service := newAuthTestRouter()

	if _, err := service.Register(context.Background(), "admin@agisfl.local", "admin", "admin123", user.RoleAdmin); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		bytes.NewBufferString(`{"email":"admin@agisfl.local","password":"admin123"}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("login status = %d, want 200, body: %s", rr.Code, rr.Body.String())
	}

	var resp authResponseBody
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.Data.AccessToken == "" || resp.Data.RefreshToken == "" {
		t.Error("login did not return tokens")
	}
	if resp.Data.User.Role != user.RoleAdmin {
		t.Errorf("user role = %v, want admin", resp.Data.User.Role)
	}

	// Tokens also land in HttpOnly cookies
	var sawAccess, sawRefresh bool
	for _, c := range rr.Result().Cookies() {
		switch c.Name {
		case "accessToken":
			sawAccess = c.HttpOnly
		case "refreshToken":
			sawRefresh = c.HttpOnly
		}
	}
	if !sawAccess || !sawRefresh {
		t.Error("login did not set HttpOnly auth cookies")
	}

	// The refresh token mints a fresh pair
	refreshBody, _ := json.Marshal(map[string]string{"refreshToken": resp.Data.RefreshToken})
	req = httptest.NewRequest(http.MethodPost, "/api/auth/refresh", bytes.NewBuffer(refreshBody))
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("refresh status = %d, want 200, body: %s", rr.Code, rr.Body.String())
	}
	var refreshed authResponseBody
	if err := json.Unmarshal(rr.Body.Bytes(), &refreshed); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if refreshed.Data.AccessToken == "" {
		t.Error("refresh did not return a new access token")
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	router, service := newAuthTestRouter()

	if _, err := service.Register(context.Background(), "admin@agisfl.local", "admin", "admin123", user.RoleAdmin); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name string
		body string
	}{
		{name: "wrong password", body: `{"email":"admin@agisfl.local","password":"wrong"}`},
		{name: "unknown email", body: `{"email":"ghost@agisfl.local","password":"admin123"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			if rr.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rr.Code)
			}
		})
	}
}

func TestAuthHandler_Refresh_InvalidToken(t *testing.T) {
	router, _ := newAuthTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh",
		bytes.NewBufferString(`{"refreshToken":"garbage"}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	router, service := newAuthTestRouter()

	u, err := service.Register(context.Background(), "me@agisfl.local", "me", "secret123", user.RoleViewer)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req = req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, u.ID))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var resp struct {
		Data struct {
			Email string `json:"email"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.Data.Email != "me@agisfl.local" {
		t.Errorf("email = %v, want me@agisfl.local", resp.Data.Email)
	}

	// Without identity in context
	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated status = %d, want 401", rr.Code)
	}
}
