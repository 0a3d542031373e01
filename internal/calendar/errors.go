package calendar

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Validation errors.
var (
	ErrMissingStartDate = errors.New("start date is required")
)

// needsScopesCode marks a push rejected for missing calendar scopes;
// it is recoverable through step-up authorization.
const needsScopesCode = "NEEDS_SCOPES"

// APIError is a non-2xx response from the calendar API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	AuthURL    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("calendar api: %s (%s)", e.Message, e.Code)
	}
	return fmt.Sprintf("calendar api: %s", e.Message)
}

// NeedsScopes reports whether the error is the step-up authorization
// case: 403, the NEEDS_SCOPES code, and an authorization URL to send
// the user to.
func (e *APIError) NeedsScopes() bool {
	return e.StatusCode == http.StatusForbidden && e.Code == needsScopesCode && e.AuthURL != ""
}

// errorBody is the error envelope the API wraps failures in.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		AuthURL string `json:"authUrl"`
	} `json:"error"`
}

// decodeError turns a non-2xx response into an APIError, falling back
// to generic text when the body carries no usable message.
func decodeError(resp *http.Response, fallback string) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    fallback,
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return apiErr
	}

	var envelope errorBody
	if err := json.Unmarshal(body, &envelope); err != nil {
		return apiErr
	}

	apiErr.Code = envelope.Error.Code
	apiErr.AuthURL = envelope.Error.AuthURL
	if envelope.Error.Message != "" {
		apiErr.Message = envelope.Error.Message
	}
	return apiErr
}
