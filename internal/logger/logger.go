package logger

import (
	"context"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
)

type Logger struct {
	service  string
	hostname string
	handler  *slog.Logger
}

func New(service string) *Logger {
	hostname, _ := os.Hostname()

	handler := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	return &Logger{
		service:  service,
		hostname: hostname,
		handler:  handler,
	}
}

// GenerateRequestID returns a fresh identifier for log correlation.
func GenerateRequestID() string {
	return uuid.NewString()
}

func (l *Logger) Info(action, message, requestID string, attrs map[string]interface{}) {
	l.log(slog.LevelInfo, action, message, requestID, nil, attrs)
}

func (l *Logger) Debug(action, message, requestID string, attrs map[string]interface{}) {
	l.log(slog.LevelDebug, action, message, requestID, nil, attrs)
}

func (l *Logger) Error(action, message, requestID string, err error, attrs map[string]interface{}) {
	l.log(slog.LevelError, action, message, requestID, err, attrs)
}

func (l *Logger) log(level slog.Level, action, message, requestID string, err error, attrs map[string]interface{}) {
	logAttrs := []slog.Attr{
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		slog.String("service", l.service),
		slog.String("hostname", l.hostname),
		slog.String("action", action),
		slog.String("request_id", requestID),
	}

	if err != nil {
		logAttrs = append(logAttrs, slog.Group("error",
			slog.String("msg", err.Error()),
			slog.String("stack", string(debug.Stack())),
		))
	}

	for key, value := range attrs {
		logAttrs = append(logAttrs, slog.Any(key, value))
	}

	l.handler.LogAttrs(context.TODO(), level, message, logAttrs...)
}
