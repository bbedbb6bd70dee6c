// Package llm is the chat-completions client used by the assistants.
//
// Only the non-streaming, structured-output subset of the OpenAI API is
// spoken: one request with a system and a user message and a JSON schema
// response format, one reply whose content is the JSON document.
package llm

import (
	"context"
	"fmt"

	"github.com/codeready-toolchain/anonymizer/pkg/config"
)

// Client is the Go-side interface for one structured chat completion.
// Implementations must be safe for concurrent use.
type Client interface {
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)
	// Model is the provider model name, for logging and history records.
	Model() string
}

// Role values for Message.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// JSONSchema names and describes the structured reply. Strict asks the
// provider to constrain decoding to the schema.
type JSONSchema struct {
	Name   string         `json:"name"`
	Schema map[string]any `json:"schema"`
	Strict bool           `json:"strict"`
}

// CompletionRequest is the provider-neutral request.
type CompletionRequest struct {
	Messages    []Message
	MaxTokens   int
	Temperature *float64
	Schema      *JSONSchema
	// User is forwarded for provider-side abuse attribution
	User string
}

// Usage reports token consumption for one call.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// CompletionResponse is the first choice of a completion.
type CompletionResponse struct {
	ID           string
	Model        string
	Content      string
	FinishReason string
	Usage        Usage
}

// NewClient creates the client for a configured provider.
func NewClient(providerName string, cfg *config.LLMProviderConfig) (Client, error) {
	switch cfg.Type {
	case config.LLMProviderTypeOpenAI, config.LLMProviderTypeOpenAICompatible:
		return NewOpenAIClient(cfg)
	default:
		return nil, fmt.Errorf("llm provider %s: unsupported type %q", providerName, cfg.Type)
	}
}
