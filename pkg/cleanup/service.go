// Package cleanup enforces retention on the conversation-history store.
package cleanup

import (
	"context"
	"log/slog"
	"time"

	"github.com/codeready-toolchain/anonymizer/pkg/config"
)

// Pruner deletes history older than a cutoff.
type Pruner interface {
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Service periodically deletes assistant runs older than the retention
// window. Deletion is idempotent and safe to run from multiple pods.
type Service struct {
	config *config.RetentionConfig
	pruner Pruner
	now    func() time.Time

	cancel context.CancelFunc
	done   chan struct{}
}

// NewService creates a new cleanup service.
func NewService(cfg *config.RetentionConfig, pruner Pruner) *Service {
	return &Service{
		config: cfg,
		pruner: pruner,
		now:    time.Now,
	}
}

// Start launches the background cleanup loop. A zero retention window keeps
// runs forever and starts nothing.
func (s *Service) Start(ctx context.Context) {
	if s.cancel != nil || s.config.RetentionDays == 0 {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	go s.run(ctx)

	slog.Info("Cleanup service started",
		"retention_days", s.config.RetentionDays,
		"interval", s.config.CleanupInterval)
}

// Stop signals the cleanup loop to exit and waits for it to finish.
func (s *Service) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	slog.Info("Cleanup service stopped")
}

func (s *Service) run(ctx context.Context) {
	defer close(s.done)

	s.deleteOldRuns(ctx)

	ticker := time.NewTicker(s.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.deleteOldRuns(ctx)
		}
	}
}

func (s *Service) deleteOldRuns(ctx context.Context) {
	cutoff := s.now().AddDate(0, 0, -s.config.RetentionDays)
	count, err := s.pruner.DeleteBefore(ctx, cutoff)
	if err != nil {
		slog.Error("Retention: deleting old assistant runs failed", "error", err)
		return
	}
	if count > 0 {
		slog.Info("Retention: deleted old assistant runs", "count", count, "cutoff", cutoff)
	}
}
