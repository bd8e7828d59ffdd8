package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls how the process logger is built. Level, when set, wins
// over Verbose and accepts the usual zap level names ("debug", "info", ...).
type Options struct {
	Verbose bool
	Level   string
	JSON    bool
}

// New builds a zap logger writing to stderr. The default console encoding
// is for humans; JSON switches to production output for log collectors.
func New(opts Options) (*zap.Logger, error) {
	level, err := pickLevel(opts)
	if err != nil {
		return nil, err
	}

	var cfg zap.Config
	if opts.JSON {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.TimeKey = ""
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.EncoderConfig.EncodeCaller = nil
	}

	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = level > zapcore.DebugLevel

	return cfg.Build()
}

func pickLevel(opts Options) (zapcore.Level, error) {
	if opts.Level != "" {
		level, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return 0, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		return level, nil
	}
	if opts.Verbose {
		return zapcore.DebugLevel, nil
	}
	return zapcore.InfoLevel, nil
}
