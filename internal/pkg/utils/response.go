// Package utils holds the JSON envelope shared by every API response.
package utils

import (
	"encoding/json"
	"net/http"

	"github.com/agisfl/agisfl/internal/pkg/errors"
)

// SuccessResponse is the envelope for 2xx responses.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorResponse is the envelope for every non-2xx response.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, body interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) error {
	return WriteJSON(w, status, SuccessResponse{Success: true, Data: data})
}

func WriteSuccessWithMessage(w http.ResponseWriter, status int, message string, data interface{}) error {
	return WriteJSON(w, status, SuccessResponse{Success: true, Message: message, Data: data})
}

// WriteError renders an AppError with its own status code.
func WriteError(w http.ResponseWriter, err *errors.AppError) error {
	detail := ErrorDetail{Code: err.Code, Message: err.Message, Details: err.Details}
	return WriteJSON(w, err.StatusCode, ErrorResponse{Error: detail})
}

// WriteErrorMessage renders an ad-hoc error without building an AppError.
func WriteErrorMessage(w http.ResponseWriter, status int, code, message string) error {
	detail := ErrorDetail{Code: code, Message: message}
	return WriteJSON(w, status, ErrorResponse{Error: detail})
}
