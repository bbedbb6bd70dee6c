// Package assistant runs named, fixed-instruction language-model calls whose
// reply must be a JSON document of a declared shape.
package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/codeready-toolchain/anonymizer/pkg/config"
	"github.com/codeready-toolchain/anonymizer/pkg/llm"
)

// Definition is the fixed part of an assistant.
type Definition struct {
	Name         string
	Description  string
	Instructions []string
}

// Assistant binds a Definition to a model client and generation settings.
// It holds no per-run state and is safe for concurrent use.
type Assistant struct {
	def         Definition
	client      llm.Client
	maxTokens   int
	temperature *float64
	history     HistoryRecorder
}

// Option customises an Assistant.
type Option func(*Assistant)

// WithHistory records every run to h.
func WithHistory(h HistoryRecorder) Option {
	return func(a *Assistant) { a.history = h }
}

// New creates an assistant from its definition and resolved configuration.
func New(def Definition, client llm.Client, resolved *config.ResolvedAssistant, opts ...Option) *Assistant {
	a := &Assistant{
		def:         def,
		client:      client,
		maxTokens:   resolved.MaxTokens,
		temperature: resolved.Temperature,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name returns the assistant name.
func (a *Assistant) Name() string { return a.def.Name }

// RunOptions carries caller attribution for one run. All fields are optional.
type RunOptions struct {
	RunID  string
	UserID string
	TeamID string
	Debug  bool
}

// Output declares the structured reply: the JSON schema sent to the model
// and the decoder that turns the raw content into T. Replies are validated
// against Schema before Decode runs, so Decode only checks what the schema
// cannot express. Its error becomes the reason of a SchemaViolationError.
type Output[T any] struct {
	Schema map[string]any
	Decode func(raw []byte) (T, error)

	compiled *jsonschema.Schema
}

// Compile returns a copy of o with its schema compiled, so Run does not
// compile it on every call.
func (o Output[T]) Compile(name string) (Output[T], error) {
	compiled, err := compileSchema(name, o.Schema)
	if err != nil {
		return o, err
	}
	o.compiled = compiled
	return o, nil
}

// MustCompile is like Compile but panics on error. It is meant for
// package-level outputs whose schema is fixed.
func MustCompile[T any](name string, o Output[T]) Output[T] {
	compiled, err := o.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("assistant %s: %v", name, err))
	}
	return compiled
}

// Run sends input (marshaled to JSON) to the model and decodes the reply.
// Model-call errors are returned wrapped; replies that do not match the
// declared shape yield *SchemaViolationError.
func Run[T any](ctx context.Context, a *Assistant, input any, out Output[T], opts RunOptions) (T, error) {
	var zero T

	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	log := slog.With("assistant", a.def.Name, "run_id", opts.RunID)

	validator := out.compiled
	if validator == nil {
		compiled, err := compileSchema(a.def.Name, out.Schema)
		if err != nil {
			return zero, fmt.Errorf("assistant %s: %w", a.def.Name, err)
		}
		validator = compiled
	}

	userMessage, err := json.Marshal(input)
	if err != nil {
		return zero, fmt.Errorf("assistant %s: marshaling input: %w", a.def.Name, err)
	}

	req := &llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: a.systemPrompt()},
			{Role: llm.RoleUser, Content: string(userMessage)},
		},
		MaxTokens:   a.maxTokens,
		Temperature: a.temperature,
		User:        opts.UserID,
		Schema: &llm.JSONSchema{
			Name:   a.def.Name,
			Schema: out.Schema,
			Strict: true,
		},
	}

	if opts.Debug {
		log.Info("Assistant request",
			"model", a.client.Model(),
			"system", req.Messages[0].Content,
			"user", req.Messages[1].Content)
	}

	start := time.Now()
	resp, err := a.client.Complete(ctx, req)
	record := &RunRecord{
		RunID:         opts.RunID,
		AssistantName: a.def.Name,
		UserID:        opts.UserID,
		TeamID:        opts.TeamID,
		Model:         a.client.Model(),
		Input:         string(userMessage),
		StartedAt:     start,
		Duration:      time.Since(start),
	}

	if err != nil {
		record.Error = err.Error()
		a.record(ctx, log, record)
		return zero, fmt.Errorf("assistant %s: %w", a.def.Name, err)
	}

	record.Output = resp.Content
	record.Usage = resp.Usage

	if opts.Debug {
		log.Info("Assistant response",
			"content", resp.Content,
			"finish_reason", resp.FinishReason,
			"total_tokens", resp.Usage.TotalTokens,
			"duration", record.Duration)
	}

	result, err := decodeReply(validator, out, resp.Content)
	if err != nil {
		violation := &SchemaViolationError{
			Assistant: a.def.Name,
			Reason:    err.Error(),
			Raw:       resp.Content,
		}
		record.Error = violation.Error()
		a.record(ctx, log, record)
		return zero, violation
	}

	a.record(ctx, log, record)
	return result, nil
}

func decodeReply[T any](validator *jsonschema.Schema, out Output[T], content string) (T, error) {
	if err := validateReply(validator, content); err != nil {
		var zero T
		return zero, err
	}
	return out.Decode([]byte(content))
}

func (a *Assistant) record(ctx context.Context, log *slog.Logger, rec *RunRecord) {
	if a.history == nil {
		return
	}
	// A cancelled request still gets its run recorded
	if err := a.history.RecordRun(context.WithoutCancel(ctx), rec); err != nil {
		log.Warn("Failed to record assistant run", "error", err)
	}
}

func (a *Assistant) systemPrompt() string {
	var b strings.Builder
	b.WriteString(a.def.Description)
	if len(a.def.Instructions) > 0 {
		b.WriteString("\n\n## Instructions\n")
		for i, instruction := range a.def.Instructions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, instruction)
		}
	}
	b.WriteString("\nRespond only with a JSON object that conforms to the provided schema.")
	return b.String()
}

// IsSchemaViolation reports whether err carries a SchemaViolationError.
func IsSchemaViolation(err error) bool {
	var v *SchemaViolationError
	return errors.As(err, &v)
}
