package anonymizer

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/codeready-toolchain/anonymizer/pkg/assistant"
	"github.com/codeready-toolchain/anonymizer/pkg/config"
	"github.com/codeready-toolchain/anonymizer/pkg/llm"
)

// scriptedClient answers each assistant by schema name and records what it
// was sent.
type scriptedClient struct {
	mu      sync.Mutex
	replies map[string]string
	errs    map[string]error
	calls   []*llm.CompletionRequest
}

func newScriptedClient(sniff, clean string) *scriptedClient {
	return &scriptedClient{
		replies: map[string]string{
			config.AssistantSniffSensitiveInfo: sniff,
			config.AssistantCleanSensitiveInfo: clean,
		},
		errs: map[string]error{},
	}
}

func (c *scriptedClient) Complete(_ context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, req)
	if req.Schema == nil {
		return nil, errors.New("no schema")
	}
	if err := c.errs[req.Schema.Name]; err != nil {
		return nil, err
	}
	reply, ok := c.replies[req.Schema.Name]
	if !ok {
		return nil, errors.New("unexpected assistant " + req.Schema.Name)
	}
	return &llm.CompletionResponse{Content: reply, FinishReason: "stop"}, nil
}

func (c *scriptedClient) Model() string { return "scripted" }

// callsFor returns the requests sent for one assistant.
func (c *scriptedClient) callsFor(name string) []*llm.CompletionRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*llm.CompletionRequest
	for _, call := range c.calls {
		if call.Schema != nil && call.Schema.Name == name {
			out = append(out, call)
		}
	}
	return out
}

func newTestService(client llm.Client, threshold int) *Service {
	resolved := &config.ResolvedAssistant{MaxTokens: 256}
	sniff := assistant.New(SniffSensitiveInfo, client, resolved)
	clean := assistant.New(CleanSensitiveInfo, client, resolved)
	return NewService(NewDetector(sniff), NewCleaner(clean), threshold)
}

// userPayload decodes the user message of a model call.
func userPayload[T any](req *llm.CompletionRequest) (T, error) {
	var v T
	for _, m := range req.Messages {
		if m.Role == llm.RoleUser {
			err := json.Unmarshal([]byte(m.Content), &v)
			return v, err
		}
	}
	return v, errors.New("no user message")
}
