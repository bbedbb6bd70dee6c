package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeready-toolchain/anonymizer/pkg/assistant"
	"github.com/codeready-toolchain/anonymizer/pkg/llm"
	"github.com/codeready-toolchain/anonymizer/test/util"
)

func TestStoreRecordAndList(t *testing.T) {
	store := NewStore(util.SetupTestDatabase(t))
	ctx := context.Background()
	started := time.Now().UTC().Truncate(time.Millisecond)

	sniff := &assistant.RunRecord{
		RunID:         "run-1",
		AssistantName: "sniff_sensitive_info",
		UserID:        "u1",
		TeamID:        "t1",
		Model:         "gpt-4",
		Input:         `{"headers":[],"cookies":[]}`,
		Output:        `{"headers":[],"cookies":[]}`,
		Usage:         llm.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
		StartedAt:     started,
		Duration:      1500 * time.Millisecond,
	}
	clean := &assistant.RunRecord{
		RunID:         "run-1",
		AssistantName: "clean_sensitive_info",
		Model:         "gpt-4",
		Input:         `{"headers":[],"cookies":[]}`,
		Error:         "boom",
		StartedAt:     started.Add(2 * time.Second),
	}
	other := &assistant.RunRecord{RunID: "run-2", AssistantName: "sniff_sensitive_info", Model: "gpt-4", Input: "{}", StartedAt: started}

	for _, rec := range []*assistant.RunRecord{sniff, clean, other} {
		require.NoError(t, store.RecordRun(ctx, rec))
	}

	runs, err := store.ListRuns(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, "sniff_sensitive_info", runs[0].AssistantName)
	assert.Equal(t, "u1", runs[0].UserID)
	assert.Equal(t, 15, runs[0].Usage.TotalTokens)
	assert.Equal(t, 1500*time.Millisecond, runs[0].Duration)
	assert.True(t, started.Equal(runs[0].StartedAt))

	assert.Equal(t, "clean_sensitive_info", runs[1].AssistantName)
	assert.Equal(t, "boom", runs[1].Error)
	assert.Empty(t, runs[1].Output)

	none, err := store.ListRuns(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStoreDeleteBefore(t *testing.T) {
	store := NewStore(util.SetupTestDatabase(t))
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, store.RecordRun(ctx, &assistant.RunRecord{RunID: "old", AssistantName: "a", Model: "m", Input: "{}", StartedAt: now.Add(-48 * time.Hour)}))
	require.NoError(t, store.RecordRun(ctx, &assistant.RunRecord{RunID: "new", AssistantName: "a", Model: "m", Input: "{}", StartedAt: now}))

	deleted, err := store.DeleteBefore(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	runs, err := store.ListRuns(ctx, "new")
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
