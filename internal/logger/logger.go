// Package logger builds the zap loggers shared by the API server and nearbyctl.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kailas-cloud/nearby/internal/config"
)

// Output encodings accepted in logging.format.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// New creates a logger for env. prod defaults to JSON at info, local and dev to
// colored console output at debug. cfg.Level and cfg.Format override either.
// Every entry carries the component name (api, cli).
func New(env, component string, cfg config.LoggingConfig) (*zap.Logger, error) {
	var zc zap.Config
	switch env {
	case "prod":
		zc = zap.NewProductionConfig()
	case "local", "dev", "docker":
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return nil, fmt.Errorf("unknown environment %q for logger", env)
	}

	if cfg.Level != "" {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		zc.Level = zap.NewAtomicLevelAt(level)
	}

	switch cfg.Format {
	case "":
	case FormatJSON:
		zc.Encoding = FormatJSON
		zc.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
	case FormatConsole:
		zc.Encoding = FormatConsole
	default:
		return nil, fmt.Errorf("invalid log format %q: want json or console", cfg.Format)
	}

	// the CLI writes its report to stdout, keep logs off it
	if component == "cli" {
		zc.OutputPaths = []string{"stderr"}
	}

	l, err := zc.Build(
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.Fields(zap.String("component", component)),
	)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return l, nil
}
