// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package vi

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// FallbackErrorMessage is shown when the source gives no usable message.
const FallbackErrorMessage = "Ocorreu um erro inesperado."

// Messages is an error message that may arrive as a single string or as a
// list of strings.
type Messages []string

// UnmarshalJSON accepts either "msg" or ["msg1", "msg2"].
func (m *Messages) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		if one == "" {
			*m = nil
		} else {
			*m = Messages{one}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("errorMessage must be a string or a list of strings: %w", err)
	}
	*m = Messages(many)
	return nil
}

// MarshalJSON writes a single message as a plain string.
func (m Messages) MarshalJSON() ([]byte, error) {
	if len(m) == 1 {
		return json.Marshal(m[0])
	}
	return json.Marshal([]string(m))
}

// String joins the messages with "; ".
func (m Messages) String() string {
	return strings.Join(m, "; ")
}

// APIError is the error envelope returned by the reference data service.
type APIError struct {
	StatusCode   int      `json:"statusCode"`
	ErrorMessage Messages `json:"errorMessage"`
	Timestamp    string   `json:"timestamp"`
	Path         string   `json:"path"`
}

// NewAPIError builds an envelope stamped with the current time.
func NewAPIError(status int, path, message string) *APIError {
	return &APIError{
		StatusCode:   status,
		ErrorMessage: Messages{message},
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		Path:         path,
	}
}

func (e *APIError) Error() string {
	if e == nil {
		return FallbackErrorMessage
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Path, e.Message())
	}
	return e.Message()
}

// Message returns the user-facing message, or the fallback phrase when the
// envelope carries none.
func (e *APIError) Message() string {
	if e == nil || len(e.ErrorMessage) == 0 {
		return FallbackErrorMessage
	}
	msg := strings.TrimSpace(e.ErrorMessage.String())
	if msg == "" {
		return FallbackErrorMessage
	}
	return msg
}
