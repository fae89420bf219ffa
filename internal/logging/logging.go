// Package logging wraps go.uber.org/zap in a single sugared logger shared
// by every pipeline stage. The teacher already lists zap and
// go.uber.org/multierr in go.mod without importing either; this is where
// they get used, replacing ad hoc fmt.Fprintf(os.Stderr, ...) diagnostics
// with leveled, structured fields (region, stage, mutation_type).
package logging

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// NewPipelineLogger builds the sugared logger every stage shares. verbose
// selects development-mode (human-readable, debug-enabled) output;
// otherwise a production JSON encoder is used, matching the two-mode split
// most zap-based CLIs offer.
func NewPipelineLogger(verbose bool) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

// StageLogger returns a child logger with a "stage" field set, used by
// cmd/genovo to tag every message emitted while running one pipeline stage.
func StageLogger(base *zap.SugaredLogger, stage string) *zap.SugaredLogger {
	return base.With("stage", stage)
}

// RegionWarning logs a per-region, non-fatal failure (SkippableRegionError,
// SamplingAbsentButExpected) at Warn with structured region/mutation_type
// fields, instead of aborting the run.
func RegionWarning(logger *zap.SugaredLogger, region string, mutationType string, err error) {
	fields := []any{"region", region}
	if mutationType != "" {
		fields = append(fields, "mutation_type", mutationType)
	}
	logger.Warnw(err.Error(), fields...)
}

// JoinWarnings combines every warning collected during one pass of a stage
// into a single multierr error, so a run can report every skipped region at
// the end instead of only the first.
func JoinWarnings(errs ...error) error {
	var combined error
	for _, e := range errs {
		if e != nil {
			combined = multierr.Append(combined, e)
		}
	}
	return combined
}
