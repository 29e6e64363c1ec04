package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// ConflictError indicates the write would break a uniqueness rule
	ConflictError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string   { return e.Message }
func (e *ValidationError) Error() string { return e.Message }
func (e *ConflictError) Error() string   { return e.Message }

func (e *NotFoundError) StatusCode() int   { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }
func (e *ConflictError) StatusCode() int   { return http.StatusConflict }

// Is allows errors.Is() to match the typed errors against their sentinels
func (e *NotFoundError) Is(target error) bool   { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
func (e *ConflictError) Is(target error) bool   { return target == ErrConflict }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")

	// ErrNoSuchRelation is returned when a connector type is created for a
	// (language, target module) pair that has no relation in the project.
	ErrNoSuchRelation = errors.New("no such relation")

	// ErrInvalidRecord is returned when a stored record cannot be projected,
	// e.g. because it carries no identifier.
	ErrInvalidRecord = errors.New("invalid record")
)

// ConnectionError indicates the document store is misconfigured or unreachable.
// It is fatal at startup and never retried.
type ConnectionError struct {
	Driver string
	Err    error
}

func (e *ConnectionError) Error() string {
	if e.Err == nil {
		return "connect " + e.Driver + " store"
	}
	return "connect " + e.Driver + " store: " + e.Err.Error()
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// StatusCode implements the HTTPError interface
func (e *ConnectionError) StatusCode() int { return http.StatusServiceUnavailable }
