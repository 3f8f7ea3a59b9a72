package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across partgen.
// Use these constants instead of raw strings to ensure consistency.
const (
	FieldRunID = "run_id"

	// Selection
	FieldMode      = "mode"
	FieldAlgorithm = "algorithm"
	FieldVisitor   = "visitor"

	// Input
	FieldN     = "n"
	FieldK     = "k"
	FieldPairs = "pairs"
	FieldFile  = "file"

	// Results
	FieldResult     = "result"
	FieldCount      = "count"
	FieldCached     = "cached"
	FieldPartition  = "partition"
	FieldDurationMS = "duration_ms"
	FieldRSSBytes   = "rss_bytes"

	FieldError = "error"
)

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	type Runner struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func New() *Runner {
//	    return &Runner{logger: logger.ComponentLogger("engine")}
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
// Use for sub-operations that need extra context fields.
//
// Example:
//
//	runLogger := logger.ChildLogger(baseLogger, logger.FieldRunID, id)
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
