package config

// LLMProviderType identifies the wire protocol spoken by an LLM provider.
type LLMProviderType string

const (
	// LLMProviderTypeOpenAI speaks the OpenAI chat-completions API
	LLMProviderTypeOpenAI LLMProviderType = "openai"
	// LLMProviderTypeOpenAICompatible is any server exposing the same API
	// (vLLM, LM Studio, Azure deployments behind a gateway)
	LLMProviderTypeOpenAICompatible LLMProviderType = "openai-compatible"
)

// IsValid checks if the provider type is supported
func (t LLMProviderType) IsValid() bool {
	switch t {
	case LLMProviderTypeOpenAI, LLMProviderTypeOpenAICompatible:
		return true
	default:
		return false
	}
}

// Assistant names. They double as the structured-output schema names sent
// to the model and as the assistant_name column of the history store.
const (
	AssistantSniffSensitiveInfo = "sniff_sensitive_info"
	AssistantCleanSensitiveInfo = "clean_sensitive_info"
)

// AssistantNames lists every assistant the service runs, in pipeline order.
func AssistantNames() []string {
	return []string{AssistantSniffSensitiveInfo, AssistantCleanSensitiveInfo}
}
