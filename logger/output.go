package logger

// Output controls what categories of information are shown at each verbosity level.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed regardless of severity.
//
// Verbosity Levels:
//
//	0 (default) - Results, errors with hints, total elapsed time
//	1 (-v)      - + One line per (n, k) pair, resolved algorithm/visitor
//	2 (-vv)     - + Per-pair timing, effective configuration, process memory
//	3 (-vvv)    - + Every emitted partition echoed to the log

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults OutputCategory = iota // Result records, elapsed total
	OutputErrors                        // Errors with hints listing legal values

	// Level 1 (-v) - Informational
	OutputProgress  // One line per (n, k) pair
	OutputSelection // Resolved mode, algorithm and visitor

	// Level 2 (-vv) - Detailed
	OutputTiming    // Per-pair elapsed time
	OutputConfig    // Config values loaded/applied
	OutputResources // Process memory after the batch

	// Level 3 (-vvv) - Trace
	OutputPartitions // Every emitted partition
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	OutputResults: VerbosityUser,
	OutputErrors:  VerbosityUser,

	OutputProgress:  VerbosityInfo,
	OutputSelection: VerbosityInfo,

	OutputTiming:    VerbosityDebug,
	OutputConfig:    VerbosityDebug,
	OutputResources: VerbosityDebug,

	OutputPartitions: VerbosityTrace,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		// Unknown category, default to highest verbosity required
		return verbosity >= VerbosityTrace
	}
	return verbosity >= minLevel
}
