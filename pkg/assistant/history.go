package assistant

import (
	"context"
	"time"

	"github.com/codeready-toolchain/anonymizer/pkg/llm"
)

// RunRecord is one assistant invocation as stored in the conversation
// history.
type RunRecord struct {
	RunID         string
	AssistantName string
	UserID        string
	TeamID        string
	Model         string
	Input         string
	Output        string // empty when the call failed
	Error         string // empty on success
	Usage         llm.Usage
	StartedAt     time.Time
	Duration      time.Duration
}

// HistoryRecorder persists assistant runs. Failures are logged by the
// assistant and never fail the run.
type HistoryRecorder interface {
	RecordRun(ctx context.Context, rec *RunRecord) error
}
