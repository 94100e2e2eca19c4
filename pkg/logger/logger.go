// Package logger реализует printf-логгер с уровнями поверх log/slog.
// Пишет в файл (если указан) и в stdout.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Logger логгер сервиса
type Logger struct {
	slog *slog.Logger
	file *os.File
}

// New создает логгер. Если filePath пустой, пишет только в stdout.
// level: debug, info, warn, error (по умолчанию info)
func New(filePath, level string) (*Logger, error) {
	var (
		out  io.Writer = os.Stdout
		file *os.File
	)

	if filePath != "" {
		if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
			return nil, fmt.Errorf("logger: create log dir: %w", err)
		}

		f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logger: open log file: %w", err)
		}
		file = f
		out = io.MultiWriter(os.Stdout, f)
	}

	l := NewWithWriter(out, level)
	l.file = file
	return l, nil
}

// NewWithWriter создает логгер поверх произвольного writer (удобно в тестах)
func NewWithWriter(w io.Writer, level string) *Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	return &Logger{slog: slog.New(handler)}
}

// Discard логгер, который ничего не пишет
func Discard() *Logger {
	return NewWithWriter(io.Discard, "error")
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) Debug(format string, v ...interface{}) {
	l.slog.Debug(fmt.Sprintf(format, v...))
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.slog.Info(fmt.Sprintf(format, v...))
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.slog.Warn(fmt.Sprintf(format, v...))
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.slog.Error(fmt.Sprintf(format, v...))
}

// Fatal логирует ошибку и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.slog.Error(fmt.Sprintf(format, v...))
	_ = l.Close()
	os.Exit(1)
}

// Close закрывает файл логов
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
