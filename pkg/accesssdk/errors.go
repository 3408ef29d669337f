package accesssdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error codes carried in ErrorResponse.Code.
const (
	CodeInvalidRequest   = "invalid_request"
	CodeValidationFailed = "validation_failed"
	CodeUnauthorized     = "unauthorized"
	CodeForbidden        = "forbidden"
	CodeNotFound         = "not_found"
	CodeConflict         = "conflict"
	CodeInvalidState     = "invalid_transition"
	CodeRateLimited      = "rate_limit_exceeded"
	CodeServerError      = "server_error"

	// Terminal invitation codes, returned with 410.
	CodeInvitationAccepted = "accepted"
	CodeInvitationExpired  = "expired"
	CodeInvitationRevoked  = "revoked"
)

// APIError is returned for any non-success response.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Fields     []FieldError
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("access api: %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("access api: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// IsGone reports whether err is a 410 for an invitation that can no longer
// be used.
func IsGone(err error) bool { return hasStatus(err, http.StatusGone) }

// IsNotFound reports whether err is a 404.
func IsNotFound(err error) bool { return hasStatus(err, http.StatusNotFound) }

// IsForbidden reports whether err is a 403.
func IsForbidden(err error) bool { return hasStatus(err, http.StatusForbidden) }

func hasStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

func parseErrorResponse(resp *http.Response, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       errResp.Code,
			Message:    errResp.Error,
			Fields:     errResp.Fields,
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       CodeServerError,
		Message:    http.StatusText(resp.StatusCode),
	}
}
