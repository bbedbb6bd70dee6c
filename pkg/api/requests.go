package api

import "encoding/json"

// AnonymizeRequest is the body of POST /v1/anonymize/request.
type AnonymizeRequest struct {
	// Request is the HTTP request to anonymize. Only its headers and
	// cookies are read.
	Request json.RawMessage `json:"request"`

	// FilterValuesOverLength defaults to the configured cutoff when absent.
	FilterValuesOverLength *int `json:"filter_values_over_length"`

	RunID     string `json:"run_id"`
	UserID    string `json:"user_id"`
	TeamID    string `json:"team_id"`
	DebugMode bool   `json:"debug_mode"`
}
