package client

import (
	"fmt"
	"net/http"
)

// APIError is the decoded error envelope from a non-2xx response.
type APIError struct {
	StatusCode int                    `json:"-"`
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("api error: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("api error %s: %s (status %d)", e.Code, e.Message, e.StatusCode)
}

func (e *APIError) IsNotFound() bool { return e.StatusCode == http.StatusNotFound }

func (e *APIError) IsUnauthorized() bool { return e.StatusCode == http.StatusUnauthorized }

func (e *APIError) IsForbidden() bool { return e.StatusCode == http.StatusForbidden }

func (e *APIError) IsConflict() bool { return e.StatusCode == http.StatusConflict }

// IsValidationError reports whether the request was rejected before
// reaching storage, typically for missing or malformed fields.
func (e *APIError) IsValidationError() bool { return e.StatusCode == http.StatusBadRequest }

func (e *APIError) IsServerError() bool { return e.StatusCode >= 500 }
