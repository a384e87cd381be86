package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"marketplace-assistant/internal/application/port/output"
)

var _ output.LoggerPort = (*LoggerAdapter)(nil)

type Config struct {
	Level  string // debug, info, warn, error
	Format string // json or console
	// Dir, when set, receives a per-run log file next to stderr output.
	Dir  string
	Name string
}

func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "console",
		Name:   "assistant",
	}
}

type LoggerAdapter struct {
	sugar *zap.SugaredLogger

	// Set only on the root adapter that opened the per-run log file.
	sink      zapcore.WriteSyncer
	closeSink func()
	closeOnce sync.Once
}

func NewLoggerAdapter(cfg Config) (*LoggerAdapter, error) {
	var zcfg zap.Config
	if cfg.Format == "json" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zcfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	}
	zcfg.Level = zap.NewAtomicLevelAt(parseLevel(cfg.Level))

	log, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	if cfg.Dir == "" {
		return NewFromZap(log), nil
	}

	logDir := filepath.Join(cfg.Dir, "log")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	filename := fmt.Sprintf("%s_%s.log", time.Now().Format("2006-01-02_15-04-05"), sanitize(cfg.Name))
	sink, closeSink, err := zap.Open(filepath.Join(logDir, filename))
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	// The file never gets color codes.
	fileEncoding := zcfg.EncoderConfig
	fileEncoding.EncodeLevel = zapcore.CapitalLevelEncoder
	var encoder zapcore.Encoder
	if cfg.Format == "json" {
		encoder = zapcore.NewJSONEncoder(fileEncoding)
	} else {
		encoder = zapcore.NewConsoleEncoder(fileEncoding)
	}
	fileCore := zapcore.NewCore(encoder, sink, zcfg.Level)

	log = log.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, fileCore)
	}))
	return &LoggerAdapter{sugar: log.Sugar(), sink: sink, closeSink: closeSink}, nil
}

func NewFromZap(log *zap.Logger) *LoggerAdapter {
	return &LoggerAdapter{sugar: log.Sugar()}
}

func NewNop() *LoggerAdapter {
	return NewFromZap(zap.NewNop())
}

func (l *LoggerAdapter) Debug(msg string, args ...any) {
	l.sugar.Debugw(msg, args...)
}

func (l *LoggerAdapter) Info(msg string, args ...any) {
	l.sugar.Infow(msg, args...)
}

func (l *LoggerAdapter) Warn(msg string, args ...any) {
	l.sugar.Warnw(msg, args...)
}

func (l *LoggerAdapter) Error(msg string, args ...any) {
	l.sugar.Errorw(msg, args...)
}

func (l *LoggerAdapter) WithField(key string, value any) output.LoggerPort {
	return &LoggerAdapter{sugar: l.sugar.With(key, value)}
}

func (l *LoggerAdapter) WithFields(fields map[string]any) output.LoggerPort {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return &LoggerAdapter{sugar: l.sugar.With(args...)}
}

// Close flushes buffered entries and releases the log file. Sync on a
// terminal stderr may fail on some platforms, so its error is ignored.
// Loggers derived with WithField(s) do not own the file.
func (l *LoggerAdapter) Close() error {
	_ = l.sugar.Sync()
	l.closeOnce.Do(func() {
		if l.closeSink != nil {
			l.closeSink()
		}
	})
	return nil
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zap.DebugLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

func sanitize(s string) string {
	s = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '_'
	}, s)
	s = strings.Trim(s, "_")
	if s == "" {
		return "assistant"
	}
	if len(s) > 60 {
		s = s[:60]
	}
	return s
}
