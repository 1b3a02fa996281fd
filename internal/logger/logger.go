package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures where and how much a Logger writes.
type Options struct {
	Level    string
	FilePath string // optional rotating file in addition to stdout
	Output   io.Writer
}

type Logger struct {
	service  string
	hostname string
	handler  *slog.Logger
}

// New creates a JSON logger writing to stdout at debug level.
func New(service string) *Logger {
	return NewWithOptions(service, Options{Level: "debug"})
}

func NewWithOptions(service string, opts Options) *Logger {
	hostname, _ := os.Hostname()

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.FilePath != "" {
		rot := &lumberjack.Logger{
			Filename:   opts.FilePath,
			MaxSize:    50, // MB
			MaxBackups: 3,
			MaxAge:     7, // days
		}
		out = io.MultiWriter(out, rot)
	}

	handler := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: parseLevel(opts.Level),
	}))

	return &Logger{
		service:  service,
		hostname: hostname,
		handler:  handler,
	}
}

// Discard returns a logger that drops every record. Used by tests.
func Discard() *Logger {
	return NewWithOptions("test", Options{Level: "error", Output: io.Discard})
}

// GenerateRequestID returns a fresh id for correlating log records.
func GenerateRequestID() string {
	return uuid.NewString()
}

func (l *Logger) Info(action, message, requestID string, fields map[string]interface{}) {
	l.log(slog.LevelInfo, action, message, requestID, nil, fields)
}

func (l *Logger) Debug(action, message, requestID string, fields map[string]interface{}) {
	l.log(slog.LevelDebug, action, message, requestID, nil, fields)
}

func (l *Logger) Error(action, message, requestID string, err error, fields map[string]interface{}) {
	l.log(slog.LevelError, action, message, requestID, err, fields)
}

func (l *Logger) log(level slog.Level, action, message, requestID string, err error, fields map[string]interface{}) {
	attrs := []slog.Attr{
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		slog.String("service", l.service),
		slog.String("hostname", l.hostname),
		slog.String("action", action),
		slog.String("request_id", requestID),
	}
	if err != nil {
		attrs = append(attrs, slog.Group("error", slog.String("msg", err.Error())))
	}
	if len(fields) > 0 {
		details := make([]any, 0, len(fields))
		for k, v := range fields {
			details = append(details, slog.Any(k, v))
		}
		attrs = append(attrs, slog.Group("details", details...))
	}

	l.handler.LogAttrs(context.TODO(), level, message, attrs...)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
