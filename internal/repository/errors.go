// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package repository

import (
	"errors"

	"github.com/jeranaias/vicas-tui/internal/vi"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrorType categorizes repository errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeUnavailable
	ErrTypeTimeout
	ErrTypeNotFound
	ErrTypeInvalidResponse
	ErrTypeUpstream
)

func (t ErrorType) String() string {
	switch t {
	case ErrTypeUnavailable:
		return "unavailable"
	case ErrTypeTimeout:
		return "timeout"
	case ErrTypeNotFound:
		return "not_found"
	case ErrTypeInvalidResponse:
		return "invalid_response"
	case ErrTypeUpstream:
		return "upstream"
	default:
		return "unknown"
	}
}

// FetchError is returned by every Repository implementation.
type FetchError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// Is matches sentinel errors by type.
func (e *FetchError) Is(target error) bool {
	var t *FetchError
	if errors.As(target, &t) {
		return t.Type == e.Type && t.Cause == nil
	}
	return false
}

// Sentinel errors for easy checking.
var (
	ErrUnavailable = &FetchError{Type: ErrTypeUnavailable, Message: "reference data source is unavailable"}
	ErrTimeout     = &FetchError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrNotFound    = &FetchError{Type: ErrTypeNotFound, Message: "CAS not found"}
)

// IsNotFound reports whether err means the requested CAS does not exist.
func IsNotFound(err error) bool {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Type == ErrTypeNotFound
	}
	return false
}

// IsTimeout reports whether err is a timeout.
func IsTimeout(err error) bool {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Type == ErrTypeTimeout
	}
	return false
}

// UserMessage returns the text to show for a load failure: the upstream
// envelope's message when there is one, the fallback phrase otherwise.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *vi.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}
	return vi.FallbackErrorMessage
}
