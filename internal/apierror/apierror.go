// Package apierror holds the JSON envelope every 4xx/5xx answer of the local
// API uses. Store causes never reach the UI: only the operator message does.
package apierror

import (
	"net/http"

	"negocioapp/internal/apperror"
)

const msgInterno = "Error interno del servidor"

// APIError is the error body the register UI shows to the cashier. Tipo lets
// the UI tell a conflict from a validation problem without parsing Detail.
type APIError struct {
	Detail string `json:"detail"`
	Tipo   string `json:"tipo,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Interno is the body of any unexpected failure.
func Interno() *APIError {
	return &APIError{Detail: msgInterno, Tipo: apperror.KindStore.String()}
}

// ValidationError lists the offending request fields with the failed rule.
type ValidationError struct {
	Detail string            `json:"detail"`
	Tipo   string            `json:"tipo"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Tipo: apperror.KindValidation.String(), Fields: fields}
}

// FromError maps a service error to its status and body. ok is false for
// errors without a kind; those are answered with Interno and must be logged
// by the caller.
func FromError(err error) (status int, body *APIError, ok bool) {
	kind := apperror.KindOf(err)
	switch kind {
	case apperror.KindValidation:
		status = http.StatusUnprocessableEntity
	case apperror.KindConflict:
		status = http.StatusConflict
	case apperror.KindNotFound:
		status = http.StatusNotFound
	case apperror.KindStore:
		return http.StatusInternalServerError, &APIError{Detail: apperror.Message(err), Tipo: kind.String()}, true
	default:
		return http.StatusInternalServerError, Interno(), false
	}
	return status, &APIError{Detail: apperror.Message(err), Tipo: kind.String()}, true
}
