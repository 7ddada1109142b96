package logger

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/taskflow/core/internal/infrastructure/config"
)

// Logger wraps zap.SugaredLogger with the fields TaskFlow attaches to
// requests, user actions and auth failures.
type Logger struct {
	*zap.SugaredLogger
}

// New builds the process logger. Production deployments always log JSON
// without development stack traces, whatever format is configured.
// Every entry carries the service name, version and environment.
func New(cfg config.LoggerConfig, app config.AppConfig) (*Logger, error) {
	zapConfig, err := buildConfig(cfg, app)
	if err != nil {
		return nil, err
	}

	zapLogger, err := zapConfig.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return &Logger{SugaredLogger: zapLogger.Sugar()}, nil
}

func buildConfig(cfg config.LoggerConfig, app config.AppConfig) (zap.Config, error) {
	var zapConfig zap.Config
	if app.IsProduction() || cfg.Format == "json" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return zap.Config{}, fmt.Errorf("invalid log level: %w", err)
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)

	if cfg.Output == "file" && cfg.Filename != "" {
		zapConfig.OutputPaths = []string{cfg.Filename}
		zapConfig.ErrorOutputPaths = []string{cfg.Filename}
	} else {
		zapConfig.OutputPaths = []string{"stdout"}
		zapConfig.ErrorOutputPaths = []string{"stderr"}
	}

	zapConfig.InitialFields = map[string]interface{}{
		"service": app.Name,
		"version": app.Version,
		"env":     app.Environment,
	}

	return zapConfig, nil
}

// NewNop returns a logger that discards everything
func NewNop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// NewWithCore builds a logger on top of an existing zap core
func NewWithCore(core zapcore.Core) *Logger {
	return &Logger{SugaredLogger: zap.New(core).Sugar()}
}

func (l *Logger) with(fields ...interface{}) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(fields...)}
}

// WithComponent tags every entry with the layer that wrote it
func (l *Logger) WithComponent(component string) *Logger {
	return l.with("component", component)
}

// WithUserID tags every entry with the authenticated account
func (l *Logger) WithUserID(userID string) *Logger {
	return l.with("user_id", userID)
}

// LogHTTPRequest records one served request. Server errors log at error
// level and client errors at warn.
func (l *Logger) LogHTTPRequest(method, path, requestID, ip string, statusCode int, durationMs float64, err error) {
	fields := []interface{}{
		"method", method,
		"path", path,
		"status_code", statusCode,
		"duration_ms", durationMs,
		"request_id", requestID,
		"ip", ip,
	}
	if err != nil {
		fields = append(fields, "error", err.Error())
	}

	switch {
	case statusCode >= http.StatusInternalServerError:
		l.Errorw("HTTP request failed", fields...)
	case statusCode >= http.StatusBadRequest:
		l.Warnw("HTTP request rejected", fields...)
	default:
		l.Infow("HTTP request", fields...)
	}
}

// LogUserAction records a state change made by a user
func (l *Logger) LogUserAction(userID, action string, metadata map[string]interface{}) {
	l.Infow("User action", withDetails([]interface{}{"user_id", userID, "action", action}, metadata)...)
}

// LogSecurityEvent records authentication failures
func (l *Logger) LogSecurityEvent(event, userID, ip string, details map[string]interface{}) {
	l.Warnw("Security event", withDetails([]interface{}{"security_event", event, "user_id", userID, "ip", ip}, details)...)
}

func withDetails(fields []interface{}, details map[string]interface{}) []interface{} {
	for k, v := range details {
		fields = append(fields, k, v)
	}
	return fields
}

// Close flushes any buffered log entries
func (l *Logger) Close() error {
	return l.SugaredLogger.Sync()
}
