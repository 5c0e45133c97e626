package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds logging configuration.
type Config struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	Console    bool   `mapstructure:"console"`
	TimeFormat string `mapstructure:"time_format"`
}

// Setup initializes the global logger. A log file that cannot be opened is
// reported and skipped.
func Setup(cfg Config) {
	out, err := newWriter(cfg, os.Stderr)
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	if err != nil {
		log.Error().Err(err).Str("file", cfg.File).Msg("Failed to open log file")
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		log.Warn().Str("configured_level", cfg.Level).Msg("Invalid log level, defaulting to info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Debug().Str("level", level.String()).Msg("Logger initialized")
}

// newWriter fans out to the console and the log file. With neither
// configured it falls back to the console.
func newWriter(cfg Config, console io.Writer) (io.Writer, error) {
	var writers []io.Writer
	if cfg.Console {
		writers = append(writers, zerolog.ConsoleWriter{Out: console, TimeFormat: cfg.TimeFormat})
	}

	var openErr error
	if cfg.File != "" {
		file, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			openErr = fmt.Errorf("opening log file: %w", err)
		} else {
			writers = append(writers, file)
		}
	}

	if len(writers) == 0 {
		writers = append(writers, zerolog.ConsoleWriter{Out: console, TimeFormat: cfg.TimeFormat})
	}
	return zerolog.MultiLevelWriter(writers...), openErr
}

// ContextualLogger creates a logger with context fields.
func ContextualLogger(fields map[string]interface{}) zerolog.Logger {
	return log.With().Fields(fields).Logger()
}
