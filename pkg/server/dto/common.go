// Package dto defines the request and response shapes of the HTTP API.
package dto

import "errors"

// Validation errors
var (
	ErrEmptyTexts      = errors.New("texts cannot be empty")
	ErrEmptyText       = errors.New("text cannot be empty")
	ErrEmptyQuery      = errors.New("query cannot be empty")
	ErrEmptyCandidates = errors.New("candidates cannot be empty")
	ErrTooManyTexts    = errors.New("texts count exceeds maximum (2048)")
	ErrTextTooLong     = errors.New("text exceeds maximum length (1MB)")
)

// Maximum request sizes to prevent abuse
const (
	MaxTextsCount = 2048
	MaxTextLength = 1024 * 1024 // 1MB
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}
