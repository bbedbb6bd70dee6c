package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/codeready-toolchain/anonymizer/pkg/assistant"
	"github.com/codeready-toolchain/anonymizer/pkg/database"
	"github.com/codeready-toolchain/anonymizer/pkg/history"
)

var historyCmd = &cobra.Command{
	Use:   "history RUN_ID",
	Short: "Print the recorded assistant runs of one anonymization",
	Long: `Reads the history store (DB_* environment variables) and prints every
assistant run recorded under RUN_ID, detector first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		envPath := filepath.Join(configDir, ".env")
		if err := godotenv.Load(envPath); err != nil {
			slog.Debug("No .env file loaded", "path", envPath, "error", err)
		}

		dbConfig, err := database.LoadConfigFromEnv()
		if err != nil {
			return fmt.Errorf("failed to load database config: %w", err)
		}
		client, err := database.NewClient(cmd.Context(), dbConfig)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer func() { _ = client.Close() }()

		return printRuns(cmd.Context(), cmd.OutOrStdout(), history.NewStore(client), args[0])
	},
}

type runLister interface {
	ListRuns(ctx context.Context, runID string) ([]*assistant.RunRecord, error)
}

// historyRun is the printed form of a RunRecord.
type historyRun struct {
	Assistant  string    `json:"assistant"`
	Model      string    `json:"model"`
	UserID     string    `json:"user_id,omitempty"`
	TeamID     string    `json:"team_id,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	DurationMS int64     `json:"duration_ms"`
	Tokens     int       `json:"total_tokens"`
	Input      string    `json:"input"`
	Output     string    `json:"output,omitempty"`
	Error      string    `json:"error,omitempty"`
}

func printRuns(ctx context.Context, w io.Writer, store runLister, runID string) error {
	runs, err := store.ListRuns(ctx, runID)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		return fmt.Errorf("no runs recorded for %s", runID)
	}

	out := make([]historyRun, 0, len(runs))
	for _, r := range runs {
		out = append(out, historyRun{
			Assistant:  r.AssistantName,
			Model:      r.Model,
			UserID:     r.UserID,
			TeamID:     r.TeamID,
			StartedAt:  r.StartedAt.UTC(),
			DurationMS: r.Duration.Milliseconds(),
			Tokens:     r.Usage.TotalTokens,
			Input:      r.Input,
			Output:     r.Output,
			Error:      r.Error,
		})
	}
	return writeJSON(w, out)
}
