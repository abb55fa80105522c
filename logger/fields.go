package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Identity and context
	FieldRunID     = "run_id"
	FieldComponent = "component"

	// Pipeline
	FieldStage   = "stage"
	FieldCluster = "cluster"
	FieldSeed    = "seed"

	// Counts and sizes
	FieldCount      = "count"
	FieldSize       = "size"
	FieldRows       = "rows"
	FieldColumns    = "columns"
	FieldDimensions = "dims"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Files and paths
	FieldFile = "file"
	FieldPath = "path"
)

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	gen := generate.New(src, logger.ComponentLogger("generate"))
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// RunLogger returns a component logger tagged with a run identifier so all
// lines of one invocation can be correlated in JSON output.
func RunLogger(name, runID string) *zap.SugaredLogger {
	return ComponentLogger(name).With(FieldRunID, runID)
}
