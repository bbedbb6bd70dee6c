package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeready-toolchain/anonymizer/pkg/anonymizer"
	"github.com/codeready-toolchain/anonymizer/pkg/database"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAnonymizer struct {
	result anonymizer.CleanRequest
	err    error

	gotReq  anonymizer.Request
	gotOpts anonymizer.Options
	called  bool
}

func (f *fakeAnonymizer) CleanHeadersCookies(_ context.Context, req anonymizer.Request, opts anonymizer.Options) (anonymizer.CleanRequest, error) {
	f.called = true
	f.gotReq = req
	f.gotOpts = opts
	return f.result, f.err
}

type fakeDB struct{ err error }

func (f *fakeDB) Health(context.Context) (*database.HealthStatus, error) {
	if f.err != nil {
		return &database.HealthStatus{Status: "unhealthy"}, f.err
	}
	return &database.HealthStatus{Status: "healthy"}, nil
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestPing(t *testing.T) {
	rec := doRequest(t, NewServer(&fakeAnonymizer{}), http.MethodGet, "/v1/ping", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ping":"pong"}`, rec.Body.String())
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		db         DatabaseHealth
		wantCode   int
		wantStatus string
		wantChecks int
	}{
		{name: "no history store", wantCode: http.StatusOK, wantStatus: "healthy"},
		{name: "database reachable", db: &fakeDB{}, wantCode: http.StatusOK, wantStatus: "healthy", wantChecks: 1},
		{name: "database down", db: &fakeDB{err: errors.New("connection refused")}, wantCode: http.StatusServiceUnavailable, wantStatus: "unhealthy", wantChecks: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewServer(&fakeAnonymizer{})
			if tt.db != nil {
				s.SetDatabase(tt.db)
			}

			rec := doRequest(t, s, http.MethodGet, "/v1/health", "")
			assert.Equal(t, tt.wantCode, rec.Code)

			var resp HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.NotEmpty(t, resp.Version)
			assert.Len(t, resp.Checks, tt.wantChecks)
		})
	}
}

func TestAnonymizeRequest(t *testing.T) {
	fake := &fakeAnonymizer{result: anonymizer.CleanRequest{
		Headers: []anonymizer.Entry{{Name: "Authorization", Value: "Bearer zzz"}},
		Cookies: []anonymizer.Entry{},
	}}
	s := NewServer(fake)

	body := `{
		"request": {
			"url": "https://example.com",
			"headers": [{"name": "Authorization", "value": "Bearer abc"}],
			"cookies": [{"name": "session"}]
		},
		"filter_values_over_length": 100,
		"run_id": "r1",
		"user_id": "u1",
		"team_id": "t1",
		"debug_mode": true
	}`
	rec := doRequest(t, s, http.MethodPost, "/v1/anonymize/request", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"headers":[{"name":"Authorization","value":"Bearer zzz"}],"cookies":[]}`, rec.Body.String())

	assert.Equal(t, []anonymizer.Entry{{Name: "Authorization", Value: "Bearer abc"}}, fake.gotReq.Headers)
	assert.Equal(t, []anonymizer.Entry{{Name: "session", Value: ""}}, fake.gotReq.Cookies)
	require.NotNil(t, fake.gotOpts.FilterValuesOverLength)
	assert.Equal(t, 100, *fake.gotOpts.FilterValuesOverLength)
	assert.Equal(t, "r1", fake.gotOpts.RunID)
	assert.Equal(t, "u1", fake.gotOpts.UserID)
	assert.Equal(t, "t1", fake.gotOpts.TeamID)
	assert.True(t, fake.gotOpts.Debug)
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func TestAnonymizeRequestDefaults(t *testing.T) {
	fake := &fakeAnonymizer{}
	rec := doRequest(t, NewServer(fake), http.MethodPost, "/v1/anonymize/request", `{"request":{}}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, fake.gotOpts.FilterValuesOverLength)
	assert.False(t, fake.gotOpts.Debug)
	assert.Empty(t, fake.gotReq.Headers)
}

func TestAnonymizeRequestBadInput(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		errMsg string
	}{
		{name: "empty body", body: ``, errMsg: "malformed body"},
		{name: "not JSON", body: `headers please`, errMsg: "malformed body"},
		{name: "missing request", body: `{"run_id":"r1"}`, errMsg: "request is required"},
		{name: "null request", body: `{"request":null}`, errMsg: "request is required"},
		{name: "request not an object", body: `{"request":[1,2]}`, errMsg: "request must be a JSON object"},
		{name: "headers not a list", body: `{"request":{"headers":{"a":"b"}}}`, errMsg: "request:"},
		{name: "negative threshold", body: `{"request":{},"filter_values_over_length":-1}`, errMsg: "must not be negative"},
		{name: "threshold not a number", body: `{"request":{},"filter_values_over_length":"big"}`, errMsg: "malformed body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeAnonymizer{}
			rec := doRequest(t, NewServer(fake), http.MethodPost, "/v1/anonymize/request", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Contains(t, resp.Error, tt.errMsg)
			assert.False(t, fake.called)
		})
	}
}

func TestAnonymizeRequestPipelineError(t *testing.T) {
	fake := &fakeAnonymizer{err: errors.New("llm API error (status 500): secret upstream detail")}
	rec := doRequest(t, NewServer(fake), http.MethodPost, "/v1/anonymize/request", `{"request":{}}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestRecoveryFromPanic(t *testing.T) {
	s := NewServer(&fakeAnonymizer{})
	s.engine.GET("/v1/boom", func(*gin.Context) { panic("boom") })

	rec := doRequest(t, s, http.MethodGet, "/v1/boom", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestShutdownBeforeStart(t *testing.T) {
	assert.NoError(t, NewServer(&fakeAnonymizer{}).Shutdown(context.Background()))
}
