package upstream

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrSessionExpired is returned for any 401. The session must be cleared
	// and the user sent back to login, regardless of which call tripped it.
	ErrSessionExpired = errors.New("session expired")
	// ErrTrialExpired is returned for 403 responses whose detail indicates
	// trial expiry or denied access. The user is sent to pricing.
	ErrTrialExpired = errors.New("trial expired")
)

// APIError is a non-2xx upstream response that is not a session-policy error.
// Detail carries the backend's message verbatim for notifications.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("upstream returned status %d", e.StatusCode)
}

func classifyError(resp *http.Response) error {
	var body struct {
		Detail string `json:"detail"`
	}
	// Best effort; an empty detail still classifies by status.
	_ = json.NewDecoder(resp.Body).Decode(&body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrSessionExpired, body.Detail)
	case resp.StatusCode == http.StatusForbidden &&
		(strings.Contains(body.Detail, "trial has expired") || strings.Contains(body.Detail, "Access denied")):
		return fmt.Errorf("%w: %s", ErrTrialExpired, body.Detail)
	}

	return &APIError{StatusCode: resp.StatusCode, Detail: body.Detail}
}
