// Package logger wraps zap with a small map-based field API used by the
// transport and the CLI.
package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Config selects the level and the constant service field.
type Config struct {
	Level       string `yaml:"level"`
	ServiceName string `yaml:"service_name"`
	// OutputPaths defaults to stderr so stdout stays free for command output.
	OutputPaths []string `yaml:"output_paths"`
}

// Logger is a thin wrapper around a zap.Logger.
type Logger struct {
	// Zap is exposed for callers that need zap-specific functionality.
	Zap *zap.Logger
}

// New builds a JSON logger with ISO8601 timestamps and pid/service fields.
// An empty level means info.
func New(cfg Config) (*Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderCfg.EncodeDuration = zapcore.MillisDurationEncoder

	outputs := cfg.OutputPaths
	if len(outputs) == 0 {
		outputs = []string{"stderr"}
	}

	zc := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Development:       false,
		DisableStacktrace: true,
		Encoding:          "json",
		EncoderConfig:     encoderCfg,
		OutputPaths:       outputs,
		ErrorOutputPaths:  []string{"stderr"},
		InitialFields: map[string]interface{}{
			"pid":     os.Getpid(),
			"service": cfg.ServiceName,
		},
	}
	z, err := zc.Build(zap.AddCaller(), zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("logger: build: %w", err)
	}
	return &Logger{Zap: z}, nil
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger { return &Logger{Zap: zap.NewNop()} }

// FromZap wraps an existing zap logger.
func FromZap(z *zap.Logger) *Logger { return &Logger{Zap: z} }

// ParseLevel maps a level name to a zap level.
func ParseLevel(s string) (zapcore.Level, error) {
	switch s {
	case Debug:
		return zap.DebugLevel, nil
	case Info, "":
		return zap.InfoLevel, nil
	case Warning, "warn":
		return zap.WarnLevel, nil
	case Error:
		return zap.ErrorLevel, nil
	}
	return zap.InfoLevel, fmt.Errorf("logger: unknown level %q", s)
}

// Sync flushes buffered entries. Errors from syncing stderr are ignored.
func (l *Logger) Sync() { _ = l.Zap.Sync() }

// With returns a child logger that always carries fields.
func (l *Logger) With(fields map[string]interface{}) *Logger {
	return &Logger{Zap: l.Zap.With(l.convertToZapFields(nil, fields)...)}
}

func (l *Logger) Debug(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Debug(msg, l.convertToZapFields(err, fields...)...)
}

func (l *Logger) Info(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Info(msg, l.convertToZapFields(err, fields...)...)
}

func (l *Logger) Warn(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Warn(msg, l.convertToZapFields(err, fields...)...)
}

func (l *Logger) Error(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Error(msg, l.convertToZapFields(err, fields...)...)
}

// convertToZapFields flattens err and the field maps; later maps win on
// duplicate keys.
func (l *Logger) convertToZapFields(err error, fields ...map[string]interface{}) []zap.Field {
	merged := map[string]interface{}{}
	for _, m := range fields {
		for k, v := range m {
			merged[k] = v
		}
	}
	out := make([]zap.Field, 0, len(merged)+1)
	if err != nil {
		out = append(out, zap.Error(err))
	}
	for k, v := range merged {
		out = append(out, zap.Any(k, v))
	}
	return out
}
