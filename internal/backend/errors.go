// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/taibuivan/authgate/internal/platform/apperr"
)

var (
	// ErrServiceRoleMissing is returned before any network call when a privileged
	// operation is attempted without a service role key.
	ErrServiceRoleMissing = errors.New("backend: service role key is not configured")

	// ErrProfileNotFound is returned when no profile matches a username.
	ErrProfileNotFound = errors.New("backend: profile not found")
)

// AuthError is a backend rejection, carrying the status and the verbatim message.
type AuthError struct {
	Status  int
	Code    string
	Message string
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("backend %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("backend %d: %s", e.Status, e.Message)
}

// IsClientError reports whether the backend blamed the request (4xx).
func (e *AuthError) IsClientError() bool {
	return e.Status >= 400 && e.Status < 500
}

// AsAuthError extracts the [*AuthError] from err's chain.
func AsAuthError(err error) (*AuthError, bool) {
	var authError *AuthError
	if errors.As(err, &authError) {
		return authError, true
	}
	return nil, false
}

// parseErrorResponse reads the message from whichever field the backend used.
// The auth API uses msg or error_description, the data API uses message.
func parseErrorResponse(status int, body []byte) *AuthError {
	authError := &AuthError{Status: status}

	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err == nil {
		for _, key := range []string{"msg", "error_description", "message", "error"} {
			if value, ok := fields[key].(string); ok && strings.TrimSpace(value) != "" {
				authError.Message = value
				break
			}
		}
		for _, key := range []string{"error_code", "code", "error"} {
			if value, ok := fields[key].(string); ok && value != "" && value != authError.Message {
				authError.Code = value
				break
			}
		}
	}

	if authError.Message == "" {
		authError.Message = strings.TrimSpace(string(body))
	}
	if authError.Message == "" {
		authError.Message = http.StatusText(status)
	}

	return authError
}

// ToAppError maps a backend failure onto the gateway taxonomy.
//
// 4xx rejections pass through with their status and message. Backend 5xx and
// transport failures become a generic internal error.
func ToAppError(err error) error {
	if err == nil {
		return nil
	}
	if appError := apperr.As(err); appError != nil {
		return appError
	}
	if authError, ok := AsAuthError(err); ok && authError.IsClientError() {
		return apperr.BackendAuth(authError.Status, authError.Message, err)
	}
	return apperr.Internal(err)
}
