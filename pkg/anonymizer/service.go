package anonymizer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/codeready-toolchain/anonymizer/pkg/assistant"
)

// SensitivityDetector flags sensitive entries by name.
type SensitivityDetector interface {
	Detect(ctx context.Context, filtered FilteredRequest, opts assistant.RunOptions) (SensitiveFieldNames, error)
}

// ValueCleaner produces replacement values for the given entries.
type ValueCleaner interface {
	Clean(ctx context.Context, toClean FilteredRequest, opts assistant.RunOptions) (CleanRequest, error)
}

// Options tunes one CleanHeadersCookies call.
type Options struct {
	// FilterValuesOverLength overrides the service default when non-nil.
	// Values of this many characters or more are never sent to the model.
	FilterValuesOverLength *int
	RunID                  string
	UserID                 string
	TeamID                 string
	Debug                  bool
}

// Service runs the filter, detect, resolve, clean pipeline.
type Service struct {
	detector         SensitivityDetector
	cleaner          ValueCleaner
	defaultThreshold int
}

// NewService creates a pipeline over the given detector and cleaner.
func NewService(detector SensitivityDetector, cleaner ValueCleaner, defaultThreshold int) *Service {
	return &Service{
		detector:         detector,
		cleaner:          cleaner,
		defaultThreshold: defaultThreshold,
	}
}

// DefaultThreshold returns the cutoff used when Options leaves it unset.
func (s *Service) DefaultThreshold() int { return s.defaultThreshold }

// CleanHeadersCookies returns anonymized replacements for the sensitive
// headers and cookies of req. Only entries the detector flagged and the
// filter kept appear in the result. The input is not modified.
func (s *Service) CleanHeadersCookies(ctx context.Context, req Request, opts Options) (CleanRequest, error) {
	threshold := s.defaultThreshold
	if opts.FilterValuesOverLength != nil {
		threshold = *opts.FilterValuesOverLength
	}
	if threshold < 0 {
		return CleanRequest{}, fmt.Errorf("filter_values_over_length must not be negative, got %d", threshold)
	}

	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	runOpts := assistant.RunOptions{
		RunID:  runID,
		UserID: opts.UserID,
		TeamID: opts.TeamID,
		Debug:  opts.Debug,
	}
	log := slog.With("run_id", runID)

	filtered := FilterRequest(req, threshold)
	log.Info("Anonymizing request",
		"headers", len(req.Headers),
		"cookies", len(req.Cookies),
		"filtered_headers", len(filtered.Headers),
		"filtered_cookies", len(filtered.Cookies),
		"threshold", threshold)

	names, err := s.detector.Detect(ctx, filtered, runOpts)
	if err != nil {
		return CleanRequest{}, fmt.Errorf("detecting sensitive fields: %w", err)
	}
	log.Info("Sensitive fields detected",
		"headers", names.Headers,
		"cookies", names.Cookies)

	toClean := ResolveSensitive(names, filtered)

	cleaned, err := s.cleaner.Clean(ctx, toClean, runOpts)
	if err != nil {
		return CleanRequest{}, fmt.Errorf("cleaning sensitive fields: %w", err)
	}
	log.Info("Request anonymized",
		"headers", len(cleaned.Headers),
		"cookies", len(cleaned.Cookies))

	return CleanRequest{
		Headers: nonNil(cleaned.Headers),
		Cookies: nonNil(cleaned.Cookies),
	}, nil
}
