// Package logger backs the logger port with zap. Each session writes
// JSON lines to its own timestamped file under ./log/; stderr mirrors
// warnings and errors so interactive use stays quiet.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"webcli/internal/application/port/output"
)

var _ output.LoggerPort = (*LoggerAdapter)(nil)

type LoggerAdapter struct {
	log  *zap.SugaredLogger
	file *os.File
}

// New creates a session logger. sessionName ends up in the file name,
// sanitized to a filesystem-safe form.
func New(sessionName string) (*LoggerAdapter, error) {
	filename := fmt.Sprintf("%s_%s.log",
		time.Now().Format("2006-01-02_15-04-05"), sanitize(sessionName))

	if err := os.MkdirAll("log", 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.Create(filepath.Join("log", filename))
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.RFC3339TimeEncoder

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(file), zapcore.DebugLevel),
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(os.Stderr), zapcore.WarnLevel),
	)

	return &LoggerAdapter{
		log:  zap.New(core).Sugar(),
		file: file,
	}, nil
}

// NewNop returns a logger that discards everything. For tests and for
// the MCP binary, whose stdout/stderr carry the protocol.
func NewNop() *LoggerAdapter {
	return &LoggerAdapter{log: zap.NewNop().Sugar()}
}

func (l *LoggerAdapter) Debug(msg string, args ...any) { l.log.Debugw(msg, args...) }
func (l *LoggerAdapter) Info(msg string, args ...any)  { l.log.Infow(msg, args...) }
func (l *LoggerAdapter) Warn(msg string, args ...any)  { l.log.Warnw(msg, args...) }
func (l *LoggerAdapter) Error(msg string, args ...any) { l.log.Errorw(msg, args...) }

func (l *LoggerAdapter) WithField(key string, value any) output.LoggerPort {
	return &LoggerAdapter{log: l.log.With(key, value), file: l.file}
}

func (l *LoggerAdapter) WithFields(fields map[string]any) output.LoggerPort {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return &LoggerAdapter{log: l.log.With(args...), file: l.file}
}

func (l *LoggerAdapter) Close() error {
	_ = l.log.Sync()
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func sanitize(s string) string {
	result := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-' || r == '_':
			result = append(result, r)
		default:
			result = append(result, '_')
		}
	}
	if len(result) > 50 {
		result = result[:50]
	}
	if len(result) == 0 {
		return "session"
	}
	return string(result)
}
