package llm

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyResponse indicates the provider answered without any choice or content
	ErrEmptyResponse = errors.New("empty completion response")

	// ErrMissingAPIKey indicates the configured api_key_env variable is empty
	ErrMissingAPIKey = errors.New("API key not set")
)

// APIError is a non-2xx answer from the provider.
type APIError struct {
	StatusCode int
	Type       string
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("llm API error (status %d, %s): %s", e.StatusCode, e.Type, e.Message)
	}
	return fmt.Sprintf("llm API error (status %d): %s", e.StatusCode, e.Message)
}

// IsAuth reports whether the provider rejected the credentials.
func (e *APIError) IsAuth() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// IsRateLimit reports whether the provider throttled the request.
func (e *APIError) IsRateLimit() bool {
	return e.StatusCode == 429
}

// RefusalError is returned when the model declines to produce the
// structured output.
type RefusalError struct {
	Refusal string
}

func (e *RefusalError) Error() string {
	return "model refused to answer: " + e.Refusal
}
