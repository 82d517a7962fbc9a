package config

import (
	"fmt"
	"strings"

	"github.com/gookit/slog"
)

// SetupLogger configures the default gookit/slog logger from cfg.
func SetupLogger(cfg LoggerConfig) error {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return err
	}
	slog.SetLogLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "json":
		slog.SetFormatter(slog.NewJSONFormatter(func(f *slog.JSONFormatter) {
			f.PrettyPrint = cfg.PrettyPrint
		}))
	case "", "text":
		slog.SetFormatter(slog.NewTextFormatter())
	default:
		return fmt.Errorf("%w: unknown logger format %q", ErrInvalidConfig, cfg.Format)
	}
	return nil
}

func parseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return slog.TraceLevel, nil
	case "debug":
		return slog.DebugLevel, nil
	case "", "info":
		return slog.InfoLevel, nil
	case "warn", "warning":
		return slog.WarnLevel, nil
	case "error":
		return slog.ErrorLevel, nil
	}
	return slog.InfoLevel, fmt.Errorf("%w: unknown logger level %q", ErrInvalidConfig, name)
}
