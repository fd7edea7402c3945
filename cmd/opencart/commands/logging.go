package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/fivetwenty-io/opencart-client/internal/constants"
	"github.com/fivetwenty-io/opencart-client/pkg/opencart"
)

// slogLogger adapts a slog.Logger to opencart.Logger.
type slogLogger struct {
	logger *slog.Logger
}

func (l *slogLogger) Debug(msg string, fields map[string]interface{}) {
	l.log(slog.LevelDebug, msg, fields)
}

func (l *slogLogger) Info(msg string, fields map[string]interface{}) {
	l.log(slog.LevelInfo, msg, fields)
}

func (l *slogLogger) Warn(msg string, fields map[string]interface{}) {
	l.log(slog.LevelWarn, msg, fields)
}

func (l *slogLogger) Error(msg string, fields map[string]interface{}) {
	l.log(slog.LevelError, msg, fields)
}

func (l *slogLogger) log(level slog.Level, msg string, fields map[string]interface{}) {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	attrs := make([]slog.Attr, 0, len(keys))
	for _, key := range keys {
		attrs = append(attrs, slog.Any(key, fields[key]))
	}

	l.logger.LogAttrs(context.Background(), level, msg, attrs...)
}

// newLogger builds the CLI logger. Output goes to stderr, or to a rotated
// file when log_file is set. The level is debug with --verbose and warn
// otherwise. The returned cleanup closes the file.
func newLogger(stderr io.Writer) (opencart.Logger, func() error, error) {
	level := slog.LevelWarn
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}

	writer := stderr
	cleanup := func() error { return nil }

	logFile := viper.GetString("log_file")
	if logFile != "" {
		err := os.MkdirAll(filepath.Dir(logFile), constants.ConfigDirPerm)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		rotating := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    constants.LogMaxSizeMB,
			MaxBackups: constants.LogMaxBackups,
			MaxAge:     constants.LogMaxAgeDays,
			Compress:   true,
			LocalTime:  true,
		}
		writer = rotating
		cleanup = rotating.Close
	}

	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{Level: level})

	return &slogLogger{logger: slog.New(handler)}, cleanup, nil
}
