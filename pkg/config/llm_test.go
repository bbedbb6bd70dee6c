package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLLMProviderRegistry(t *testing.T) {
	source := map[string]*LLMProviderConfig{
		"b": {Type: LLMProviderTypeOpenAI, Model: "gpt-4"},
		"a": {Type: LLMProviderTypeOpenAICompatible, Model: "local", BaseURL: "http://localhost:8000/v1"},
	}
	registry := NewLLMProviderRegistry(source)

	// later changes to the source map are not visible
	source["c"] = &LLMProviderConfig{}

	got, err := registry.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "local", got.Model)

	_, err = registry.Get("c")
	assert.ErrorIs(t, err, ErrLLMProviderNotFound)

	assert.True(t, registry.Has("b"))
	assert.False(t, registry.Has("c"))
	assert.Equal(t, []string{"a", "b"}, registry.Names())
	assert.Equal(t, 2, registry.Len())

	all := registry.GetAll()
	delete(all, "a")
	assert.Equal(t, 2, registry.Len())
}
