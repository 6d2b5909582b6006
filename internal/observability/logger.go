package observability

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the process logger: JSON at info level normally, console
// output at debug level when verbose.
func NewLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return cfg.Build()
	}

	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

// MustNewLogger is NewLogger that falls back to a no-op logger when construction fails.
func MustNewLogger(verbose bool) *zap.Logger {
	logger, err := NewLogger(verbose)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
