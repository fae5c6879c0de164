// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	domainerror "github.com/cardledger/backend/internal/domain/error"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// FieldErrorResponse represents one field-level validation failure.
type FieldErrorResponse struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationErrorResponse represents a validation failure with per-field detail.
type ValidationErrorResponse struct {
	Error  string               `json:"error"`
	Code   string               `json:"code"`
	Fields []FieldErrorResponse `json:"fields"`
}

// ToValidationErrorResponse converts a domain ValidationError to its DTO.
func ToValidationErrorResponse(ve *domainerror.ValidationError) ValidationErrorResponse {
	fields := make([]FieldErrorResponse, len(ve.Fields))
	for i, fieldError := range ve.Fields {
		fields[i] = FieldErrorResponse{
			Field:   fieldError.Field,
			Code:    string(fieldError.Code),
			Message: fieldError.Message,
		}
	}
	return ValidationErrorResponse{
		Error:  "Validation failed",
		Code:   string(domainerror.ErrCodeValidationFailed),
		Fields: fields,
	}
}
