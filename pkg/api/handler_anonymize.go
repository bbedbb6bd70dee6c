package api

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codeready-toolchain/anonymizer/pkg/anonymizer"
)

// anonymizeRequestHandler handles POST /v1/anonymize/request.
func (s *Server) anonymizeRequestHandler(c *gin.Context) {
	var body AnonymizeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		abortWithError(c, invalidRequest("malformed body: %v", err))
		return
	}

	req, opts, err := parseAnonymizeRequest(&body)
	if err != nil {
		abortWithError(c, err)
		return
	}

	clean, err := s.anonymizer.CleanHeadersCookies(c.Request.Context(), req, opts)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, clean)
}

// parseAnonymizeRequest validates the body and converts it to pipeline
// input. All failures wrap ErrInvalidRequest.
func parseAnonymizeRequest(body *AnonymizeRequest) (anonymizer.Request, anonymizer.Options, error) {
	raw := bytes.TrimSpace(body.Request)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return anonymizer.Request{}, anonymizer.Options{}, invalidRequest("request is required")
	}
	if raw[0] != '{' {
		return anonymizer.Request{}, anonymizer.Options{}, invalidRequest("request must be a JSON object")
	}

	var req anonymizer.Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return anonymizer.Request{}, anonymizer.Options{}, invalidRequest("request: %v", err)
	}

	if body.FilterValuesOverLength != nil && *body.FilterValuesOverLength < 0 {
		return anonymizer.Request{}, anonymizer.Options{}, invalidRequest("filter_values_over_length must not be negative")
	}

	return req, anonymizer.Options{
		FilterValuesOverLength: body.FilterValuesOverLength,
		RunID:                  body.RunID,
		UserID:                 body.UserID,
		TeamID:                 body.TeamID,
		Debug:                  body.DebugMode,
	}, nil
}
