package logger

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global logger instance
	Logger *zap.SugaredLogger
	// Verbosity is the -v count the logger was initialized with
	Verbosity int
)

func init() {
	// No-op logger at package load time
	// so packages can log before InitializeWithWriter runs
	Logger = zap.NewNop().Sugar()
}

// InitializeWithWriter sets up the global logger writing to w, which is
// stderr in the CLI. Stdout is left to the partition and result sinks.
func InitializeWithWriter(w io.Writer, jsonOutput bool, verbosity int) error {
	Verbosity = verbosity

	level := VerbosityToLevel(verbosity)

	var encoder zapcore.Encoder
	if jsonOutput {
		// JSON structured output for machine consumption
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		// Human-readable console output with minimal, calm formatting
		encoder = newMinimalEncoder()
	}

	zapLogger := zap.New(zapcore.NewCore(encoder, zapcore.AddSync(w), level))
	Logger = zapLogger.Sugar()
	return nil
}

// Cleanup flushes any buffered log entries
func Cleanup() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}
