// Package logger is a thin wrapper over zerolog so the rest of the code
// does not depend on the logging backend directly.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Logger struct {
	zl zerolog.Logger
}

// Config selects the log level and the output encoding. Format is "json"
// for machine consumption or "console" for local development.
type Config struct {
	Level  string
	Format string
}

func New(cfg Config) *Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var out io.Writer = os.Stdout
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	return &Logger{zl: zerolog.New(out).With().Timestamp().Logger()}
}

func (l *Logger) Debug(msg string) { l.zl.Debug().Msg(msg) }

func (l *Logger) Debugf(format string, v ...interface{}) { l.zl.Debug().Msgf(format, v...) }

func (l *Logger) Info(msg string) { l.zl.Info().Msg(msg) }

func (l *Logger) Infof(format string, v ...interface{}) { l.zl.Info().Msgf(format, v...) }

func (l *Logger) Warn(msg string) { l.zl.Warn().Msg(msg) }

func (l *Logger) Warnf(format string, v ...interface{}) { l.zl.Warn().Msgf(format, v...) }

func (l *Logger) Error(msg string) { l.zl.Error().Msg(msg) }

func (l *Logger) Errorf(format string, v ...interface{}) { l.zl.Error().Msgf(format, v...) }

// ErrorWithErr logs msg with the error attached as a structured field.
func (l *Logger) ErrorWithErr(err error, msg string) { l.zl.Error().Err(err).Msg(msg) }

// Fatal logs and exits the process.
func (l *Logger) Fatal(msg string) { l.zl.Fatal().Msg(msg) }

func (l *Logger) Fatalf(format string, v ...interface{}) { l.zl.Fatal().Msgf(format, v...) }

// With returns a child logger carrying one extra field.
func (l *Logger) With(key string, value interface{}) *Logger {
	return &Logger{zl: l.zl.With().Interface(key, value).Logger()}
}

// WithFields returns a child logger carrying every field in the map.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	ctx := l.zl.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return &Logger{zl: ctx.Logger()}
}

// WithError returns a child logger with the error pre-attached.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{zl: l.zl.With().Err(err).Logger()}
}
