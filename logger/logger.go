// Package logger builds the zap based loggers that are handed to the trackers and the command line tools.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/iotaledger/hive.go/ierrors"
)

var (
	// ErrUnknownLevel is returned if the configured log level can not be parsed.
	ErrUnknownLevel = ierrors.New("unknown log level")
	// ErrUnknownEncoding is returned if the configured encoding is neither "json" nor "console".
	ErrUnknownEncoding = ierrors.New("unknown log encoding")
)

// Logger is the logger type used throughout the module.
type Logger = zap.SugaredLogger

// NewRootLogger creates a new root logger from the provided configuration.
func NewRootLogger(cfg Config) (*Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, ierrors.Wrapf(ErrUnknownLevel, "'%s'", cfg.Level)
	}

	switch cfg.Encoding {
	case "json", "console":
	default:
		return nil, ierrors.Wrapf(ErrUnknownEncoding, "'%s'", cfg.Encoding)
	}

	outputPaths := cfg.OutputPaths
	if len(outputPaths) == 0 {
		outputPaths = DefaultConfig().OutputPaths
	}

	zapCfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		DisableCaller:     cfg.DisableCaller,
		DisableStacktrace: cfg.DisableStacktrace,
		Encoding:          cfg.Encoding,
		EncoderConfig:     defaultEncoderConfig,
		OutputPaths:       outputPaths,
		ErrorOutputPaths:  []string{"stderr"},
	}

	zapLogger, err := zapCfg.Build()
	if err != nil {
		return nil, ierrors.Wrap(err, "failed to build zap logger")
	}

	return zapLogger.Sugar(), nil
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() *Logger {
	return zap.NewNop().Sugar()
}
