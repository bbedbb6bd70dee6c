package anonymizer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeready-toolchain/anonymizer/pkg/config"
	"github.com/codeready-toolchain/anonymizer/pkg/llm"
)

func testConfig() *config.Config {
	return &config.Config{
		Defaults: &config.Defaults{LLMProvider: "primary", FilterValuesOverLength: 1200},
		Assistants: map[string]*config.AssistantConfig{
			config.AssistantSniffSensitiveInfo: {},
			config.AssistantCleanSensitiveInfo: {LLMProvider: "secondary"},
		},
		History: &config.HistoryConfig{},
		LLMProviderRegistry: config.NewLLMProviderRegistry(map[string]*config.LLMProviderConfig{
			"primary":   {Type: config.LLMProviderTypeOpenAI, Model: "gpt-4"},
			"secondary": {Type: config.LLMProviderTypeOpenAI, Model: "gpt-4o"},
		}),
	}
}

func TestNewServiceFromConfig(t *testing.T) {
	var built []string
	factory := func(name string, cfg *config.LLMProviderConfig) (llm.Client, error) {
		built = append(built, name+"/"+cfg.Model)
		return newScriptedClient("", ""), nil
	}

	svc, err := NewServiceFromConfig(testConfig(), factory, nil)
	require.NoError(t, err)

	assert.Equal(t, 1200, svc.DefaultThreshold())
	assert.Equal(t, []string{"primary/gpt-4", "secondary/gpt-4o"}, built)
}

func TestNewServiceFromConfigSharesClients(t *testing.T) {
	cfg := testConfig()
	cfg.Assistants[config.AssistantCleanSensitiveInfo].LLMProvider = ""

	calls := 0
	factory := func(string, *config.LLMProviderConfig) (llm.Client, error) {
		calls++
		return newScriptedClient("", ""), nil
	}

	_, err := NewServiceFromConfig(cfg, factory, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestNewServiceFromConfigErrors(t *testing.T) {
	t.Run("missing assistant", func(t *testing.T) {
		cfg := testConfig()
		delete(cfg.Assistants, config.AssistantCleanSensitiveInfo)

		_, err := NewServiceFromConfig(cfg, func(string, *config.LLMProviderConfig) (llm.Client, error) {
			return newScriptedClient("", ""), nil
		}, nil)
		require.ErrorIs(t, err, config.ErrAssistantNotFound)
	})

	t.Run("client construction fails", func(t *testing.T) {
		_, err := NewServiceFromConfig(testConfig(), func(string, *config.LLMProviderConfig) (llm.Client, error) {
			return nil, errors.New("no key")
		}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no key")
	})
}
