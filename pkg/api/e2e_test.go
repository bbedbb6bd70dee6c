package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeready-toolchain/anonymizer/pkg/anonymizer"
	"github.com/codeready-toolchain/anonymizer/pkg/config"
)

// modelServer is a minimal chat-completions endpoint answering each
// assistant by its response_format schema name.
func modelServer(t *testing.T, replies map[string]string) (*httptest.Server, func() []map[string]any) {
	t.Helper()
	var (
		mu       sync.Mutex
		requests []map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		mu.Lock()
		requests = append(requests, body)
		mu.Unlock()

		format := body["response_format"].(map[string]any)
		name := format["json_schema"].(map[string]any)["name"].(string)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":    "chatcmpl-1",
			"model": body["model"],
			"choices": []any{map[string]any{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": replies[name]},
			}},
			"usage": map[string]any{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
		})
	}))
	t.Cleanup(srv.Close)

	return srv, func() []map[string]any {
		mu.Lock()
		defer mu.Unlock()
		return append([]map[string]any(nil), requests...)
	}
}

func TestAnonymizeRequestEndToEnd(t *testing.T) {
	srv, requests := modelServer(t, map[string]string{
		config.AssistantSniffSensitiveInfo: `{"headers":["Authorization"],"cookies":[]}`,
		config.AssistantCleanSensitiveInfo: `{"headers":[{"name":"Authorization","value":"Bearer q8w7e6"}],"cookies":[]}`,
	})
	t.Setenv("E2E_MODEL_KEY", "sk-test")

	cfg := &config.Config{
		Defaults: &config.Defaults{LLMProvider: "local", FilterValuesOverLength: config.DefaultFilterValuesOverLength},
		Assistants: map[string]*config.AssistantConfig{
			config.AssistantSniffSensitiveInfo: {},
			config.AssistantCleanSensitiveInfo: {},
		},
		History: &config.HistoryConfig{},
		LLMProviderRegistry: config.NewLLMProviderRegistry(map[string]*config.LLMProviderConfig{
			"local": {
				Type:      config.LLMProviderTypeOpenAICompatible,
				Model:     "local-model",
				APIKeyEnv: "E2E_MODEL_KEY",
				BaseURL:   srv.URL + "/v1",
			},
		}),
	}
	svc, err := anonymizer.NewServiceFromConfig(cfg, nil, nil)
	require.NoError(t, err)

	large := strings.Repeat("z", 5000)
	body := `{"request":{"headers":[{"name":"Authorization","value":"Bearer abc123"},{"name":"X-Large","value":"` + large + `"}],"cookies":[]},"user_id":"u-42"}`
	rec := doRequest(t, NewServer(svc), http.MethodPost, "/v1/anonymize/request", body)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var clean anonymizer.CleanRequest
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &clean))
	require.Len(t, clean.Headers, 1)
	assert.Equal(t, "Authorization", clean.Headers[0].Name)
	assert.True(t, strings.HasPrefix(clean.Headers[0].Value, "Bearer "))
	assert.Len(t, clean.Headers[0].Value, len("Bearer abc123"))
	assert.Empty(t, clean.Cookies)

	sent := requests()
	require.Len(t, sent, 2)
	for _, req := range sent {
		assert.Equal(t, "local-model", req["model"])
		assert.Equal(t, "u-42", req["user"])
		raw, err := json.Marshal(req["messages"])
		require.NoError(t, err)
		assert.NotContains(t, string(raw), large)
	}
}
