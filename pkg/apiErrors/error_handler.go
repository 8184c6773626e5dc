package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Error codes returned to the UI pages.
const (
	// Validation errors (VAL)
	ErrInvalidRequest      = "VAL_001" // request body could not be decoded
	ErrMissingRequiredData = "VAL_002" // required fields absent
	ErrInvalidFormat       = "VAL_003" // field format invalid
	ErrValidationFailed    = "VAL_004" // record rejected by the validation gate

	// Resource errors (RES)
	ErrRecordNotFound = "RES_001"

	// Server/storage errors (SRV)
	ErrInternalServer   = "SRV_001"
	ErrStorageOperation = "SRV_002" // persistence write failed (non-fatal)
	ErrBackupOperation  = "SRV_003"
)

var httpStatusMap = map[string]int{
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrMissingRequiredData: http.StatusBadRequest,
	ErrInvalidFormat:       http.StatusBadRequest,
	ErrValidationFailed:    http.StatusUnprocessableEntity,
	ErrRecordNotFound:      http.StatusNotFound,
	ErrInternalServer:      http.StatusInternalServerError,
	ErrStorageOperation:    http.StatusInternalServerError,
	ErrBackupOperation:     http.StatusInternalServerError,
}

// APIError is the standard error body.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// WriteError writes the standardized error to the response.
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}
