package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/agisfl/agisfl/internal/domain/threat"
	"github.com/agisfl/agisfl/internal/pkg/validator"
	"github.com/agisfl/agisfl/internal/services"
	"github.com/agisfl/agisfl/internal/testutil"
)

func newThreatTestRouter(repo *testutil.MockThreatRepository) (chi.Router, threat.Service) {
	log := testLogger()
	service := services.NewThreatService(repo, log)
	handler := NewThreatHandler(service, log, validator.New())

	r := chi.NewRouter()
	r.Get("/api/threats", handler.List)
	r.Post("/api/threats", handler.Create)
	r.Get("/api/threats/{id}", handler.Get)
	r.Post("/api/threats/{id}/mitigate", handler.Mitigate)
	return r, service
}

func TestThreatHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name:           "valid threat",
			body:           `{"name":"SYN flood","type":"dos","severity":"high","sourceIp":"203.0.113.7"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "unknown type",
			body:           `{"name":"x","type":"ransomware","severity":"high"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad source ip",
			body:           `{"name":"x","type":"dos","severity":"high","sourceIp":"not-an-ip"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "confidence out of range",
			body:           `{"name":"x","type":"dos","severity":"high","confidence":1.5}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newThreatTestRouter(testutil.NewMockThreatRepository())

			req := httptest.NewRequest(http.MethodPost, "/api/threats", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d, body: %s", rr.Code, tt.expectedStatus, rr.Body.String())
			}
		})
	}
}

func TestThreatHandler_Create_GeneratesCode(t *testing.T) {
	router, _ := newThreatTestRouter(testutil.NewMockThreatRepository())

	req := httptest.NewRequest(http.MethodPost, "/api/threats",
		bytes.NewBufferString(`{"name":"SYN flood","type":"dos","severity":"high"}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rr.Code)
	}

	var resp struct {
		Data struct {
			ID       int64  `json:"id"`
			ThreatID string `json:"threatId"`
			IsActive bool   `json:"isActive"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.Data.ID <= 0 {
		t.Errorf("id = %d, want the assigned row ID", resp.Data.ID)
	}
	if !regexp.MustCompile(`^THR-\d+-\d+$`).MatchString(resp.Data.ThreatID) {
		t.Errorf("threatId = %q, want THR-<unix>-<n>", resp.Data.ThreatID)
	}
	if !resp.Data.IsActive {
		t.Error("created threat not active")
	}
}

func TestThreatHandler_Mitigate(t *testing.T) {
	repo := testutil.NewMockThreatRepository()
	router, service := newThreatTestRouter(repo)

	if _, err := service.Create(context.Background(), &threat.Threat{
		Name: "Beaconing", Type: threat.TypeMalware, Severity: threat.SeverityCritical,
	}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Repeated mitigation keeps returning 200 with the same state
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/threats/1/mitigate", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("mitigate %d status = %d, want 200", i+1, rr.Code)
		}
		var resp struct {
			Data struct {
				IsActive bool `json:"isActive"`
			} `json:"data"`
		}
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response JSON: %v", err)
		}
		if resp.Data.IsActive {
			t.Errorf("mitigate %d left threat active", i+1)
		}
	}
}

func TestThreatHandler_Mitigate_NotFound(t *testing.T) {
	router, _ := newThreatTestRouter(testutil.NewMockThreatRepository())

	req := httptest.NewRequest(http.MethodPost, "/api/threats/77/mitigate", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}

func TestThreatHandler_List_ActiveFilter(t *testing.T) {
	repo := testutil.NewMockThreatRepository()
	router, service := newThreatTestRouter(repo)
	ctx := context.Background()

	id, _ := service.Create(ctx, &threat.Threat{Name: "a", Type: threat.TypeDoS, Severity: threat.SeverityLow})
	if _, err := service.Create(ctx, &threat.Threat{Name: "b", Type: threat.TypeDoS, Severity: threat.SeverityLow}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := service.Mitigate(ctx, id); err != nil {
		t.Fatalf("Mitigate() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/threats?active=true", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var resp struct {
		Data struct {
			Data       []json.RawMessage `json:"data"`
			TotalItems int64             `json:"total_items"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.Data.TotalItems != 1 {
		t.Errorf("total_items = %d, want 1 active threat", resp.Data.TotalItems)
	}
}
