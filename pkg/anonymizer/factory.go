package anonymizer

import (
	"fmt"

	"github.com/codeready-toolchain/anonymizer/pkg/assistant"
	"github.com/codeready-toolchain/anonymizer/pkg/config"
	"github.com/codeready-toolchain/anonymizer/pkg/llm"
)

// ClientFactory builds a model client for a named provider.
type ClientFactory func(providerName string, cfg *config.LLMProviderConfig) (llm.Client, error)

// NewServiceFromConfig wires both assistants from cfg. Assistants sharing a
// provider share one client. history may be nil.
func NewServiceFromConfig(cfg *config.Config, newClient ClientFactory, history assistant.HistoryRecorder) (*Service, error) {
	if newClient == nil {
		newClient = llm.NewClient
	}
	clients := make(map[string]llm.Client)

	build := func(def assistant.Definition) (*assistant.Assistant, error) {
		resolved, err := cfg.ResolveAssistant(def.Name)
		if err != nil {
			return nil, err
		}
		client, ok := clients[resolved.ProviderName]
		if !ok {
			client, err = newClient(resolved.ProviderName, resolved.Provider)
			if err != nil {
				return nil, fmt.Errorf("assistant %s: %w", def.Name, err)
			}
			clients[resolved.ProviderName] = client
		}
		var opts []assistant.Option
		if history != nil {
			opts = append(opts, assistant.WithHistory(history))
		}
		return assistant.New(def, client, resolved, opts...), nil
	}

	sniff, err := build(SniffSensitiveInfo)
	if err != nil {
		return nil, err
	}
	clean, err := build(CleanSensitiveInfo)
	if err != nil {
		return nil, err
	}

	return NewService(NewDetector(sniff), NewCleaner(clean), cfg.FilterValuesOverLength()), nil
}
