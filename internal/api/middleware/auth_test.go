package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/agisfl/agisfl/internal/auth"
	"github.com/agisfl/agisfl/internal/domain/user"
)

const testSecret = "test-secret"

func identityEcho(t *testing.T, wantID int64, wantRole string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetUserID(r)
		if !ok || id != wantID {
			t.Errorf("user id = %v (%v), want %v", id, ok, wantID)
		}
		role, ok := GetUserRole(r)
		if !ok || role != wantRole {
			t.Errorf("role = %v (%v), want %v", role, ok, wantRole)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	tokens, err := auth.MintTokens(42, "analyst@agisfl.local", user.RoleAnalyst, testSecret, time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("MintTokens() error = %v", err)
	}

	handler := AuthMiddleware(testSecret, false)(identityEcho(t, 42, user.RoleAnalyst))

	req := httptest.NewRequest(http.MethodGet, "/api/incidents", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
}

func TestAuthMiddleware_CookieToken(t *testing.T) {
	tokens, err := auth.MintTokens(7, "viewer@agisfl.local", user.RoleViewer, testSecret, time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("MintTokens() error = %v", err)
	}

	handler := AuthMiddleware(testSecret, false)(identityEcho(t, 7, user.RoleViewer))

	req := httptest.NewRequest(http.MethodGet, "/api/incidents", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: tokens.AccessToken})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	handler := AuthMiddleware(testSecret, false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without a token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/incidents", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	handler := AuthMiddleware(testSecret, false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached with a bad token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/incidents", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	tokens, err := auth.MintTokens(1, "a@b.c", user.RoleViewer, testSecret, -time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("MintTokens() error = %v", err)
	}

	handler := AuthMiddleware(testSecret, false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached with an expired token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/incidents", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
}

// Demo mode only substitutes an identity when no token is supplied; a bad
// token is still rejected
func TestAuthMiddleware_DemoMode(t *testing.T) {
	handler := AuthMiddleware(testSecret, true)(identityEcho(t, 1, user.RoleAdmin))

	req := httptest.NewRequest(http.MethodGet, "/api/incidents", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 under demo mode", rr.Code)
	}

	rejecting := AuthMiddleware(testSecret, true)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached with a bad token in demo mode")
	}))
	req = httptest.NewRequest(http.MethodGet, "/api/incidents", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rr = httptest.NewRecorder()
	rejecting.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for bad token in demo mode", rr.Code)
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name           string
		role           string
		allowed        []string
		expectedStatus int
	}{
		{name: "allowed role", role: user.RoleAdmin, allowed: []string{user.RoleAdmin, user.RoleAnalyst}, expectedStatus: http.StatusOK},
		{name: "denied role", role: user.RoleViewer, allowed: []string{user.RoleAdmin}, expectedStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := auth.MintTokens(1, "u@agisfl.local", tt.role, testSecret, time.Minute, time.Hour)
			if err != nil {
				t.Fatalf("MintTokens() error = %v", err)
			}

			handler := AuthMiddleware(testSecret, false)(
				RequireRole(tt.allowed...)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusOK)
				})),
			)

			req := httptest.NewRequest(http.MethodGet, "/api/fl/start", nil)
			req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}
		})
	}
}

func TestRequireRole_NoIdentity(t *testing.T) {
	handler := RequireRole(user.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without identity")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/fl/start", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rr.Code)
	}
}
