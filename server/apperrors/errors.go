// Package apperrors definuje aplikační chyby s HTTP statusem a kontextem.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError chyba aplikace s HTTP statusem. Vnitřní chyba je určena jen
// pro logy a neserializuje se.
type AppError struct {
	Code    int    `json:"status_code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implementuje rozhraní error.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap vrátí vloženou chybu pro errors.Is a errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode vrátí HTTP status chyby.
func (e *AppError) StatusCode() int {
	return e.Code
}

// UserMessage vrátí zprávu určenou uživateli.
func (e *AppError) UserMessage() string {
	return e.Message
}

// NewValidationError vytvoří chybu 400 Bad Request.
func NewValidationError(message string, err error) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
		Err:     err,
	}
}

// NewInternalError vytvoří chybu 500. Uživateli se vrací obecná zpráva,
// detaily zůstávají jen v logu.
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: "Vnitřní chyba serveru",
		Err:     errors.Join(errors.New(message), err),
	}
}

// NewUpstreamError vytvoří chybu 502 pro selhání externí služby
// (generátor názvů, rejstřík).
func NewUpstreamError(message string, err error) *AppError {
	return &AppError{
		Code:    http.StatusBadGateway,
		Message: message,
		Err:     err,
	}
}

// NewUnavailableError vytvoří chybu 503 pro funkci, která není
// nakonfigurována nebo je dočasně nedostupná.
func NewUnavailableError(message string, err error) *AppError {
	return &AppError{
		Code:    http.StatusServiceUnavailable,
		Message: message,
		Err:     err,
	}
}
