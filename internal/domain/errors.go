// Package domain defines domain-specific errors.
// These errors represent renderer failures and are independent of the host toolkit.
package domain

import (
	"errors"
	"fmt"
)

// Common errors that services can return.
var (
	// ErrMissingSurface is returned when activation is attempted without a drawing surface.
	ErrMissingSurface = errors.New("no drawing surface available")

	// ErrInvalidDimensions is reported when the surface has a zero or negative width or height.
	ErrInvalidDimensions = errors.New("invalid surface dimensions")

	// ErrNotRunning is returned when an operation requires an active renderer.
	ErrNotRunning = errors.New("renderer not running")

	// ErrAlreadyActive is returned when activating a renderer that is already running.
	ErrAlreadyActive = errors.New("renderer already active")

	// ErrInvalidVariant is returned for an unknown wave variant name.
	ErrInvalidVariant = errors.New("invalid wave variant")

	// ErrPresetNotFound is returned when a preset file does not exist.
	ErrPresetNotFound = errors.New("preset not found")
)

// RepositoryError represents an error from a repository.
// This wraps persistence layer errors with additional context.
type RepositoryError struct {
	Op      string // Operation that failed (e.g., "save", "load")
	Type    string // Repository type (e.g., "settings")
	Message string // Error message
	Err     error  // Underlying error
}

// Error implements the error interface.
func (e *RepositoryError) Error() string {
	return fmt.Sprintf("repository %s.%s failed: %s", e.Type, e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// NewRepositoryError creates a new RepositoryError.
func NewRepositoryError(op, repoType, message string, err error) *RepositoryError {
	return &RepositoryError{
		Op:      op,
		Type:    repoType,
		Message: message,
		Err:     err,
	}
}

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string // Field that failed validation
	Value   any    // Value that failed validation
	Message string // Error message
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s (value: %v)", e.Field, e.Message, e.Value)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// ServiceError represents an error from a service layer operation.
type ServiceError struct {
	Service string // Service name (e.g., "RendererService", "SettingsService")
	Op      string // Operation that failed
	Message string // Error message
	Err     error  // Underlying error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("service %s.%s failed: %s", e.Service, e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, op, message string, err error) *ServiceError {
	return &ServiceError{
		Service: service,
		Op:      op,
		Message: message,
		Err:     err,
	}
}
