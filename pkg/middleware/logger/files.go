package logger

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogDir is LOG_DIR, or "log" when unset.
func LogDir() string {
	if v := strings.TrimSpace(os.Getenv("LOG_DIR")); v != "" {
		return v
	}
	return "log"
}

// Level is LOG_LEVEL parsed by zap, or info.
func Level() zapcore.Level {
	v := strings.TrimSpace(os.Getenv("LOG_LEVEL"))
	if v == "" {
		return zap.InfoLevel
	}
	lvl, err := zapcore.ParseLevel(v)
	if err != nil {
		return zap.InfoLevel
	}
	return lvl
}

// NewLog returns a JSON logger writing to dir/name (rotated) and stdout.
func NewLog(dir, name string) *zap.Logger {
	return zap.New(newCore(dir, name, zap.NewProductionEncoderConfig()))
}

// newAccessLog is NewLog without a message key; access lines are all fields.
func newAccessLog(dir, name string) *zap.Logger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.MessageKey = zapcore.OmitKey
	return zap.New(newCore(dir, name, cfg))
}

func newCore(dir, name string, enc zapcore.EncoderConfig) zapcore.Core {
	_ = os.MkdirAll(dir, 0o755)

	w := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(dir, name),
		MaxSize:    50, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
	})
	console := zapcore.Lock(os.Stdout)
	lvl := Level()

	return zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(enc), w, lvl),
		zapcore.NewCore(zapcore.NewJSONEncoder(enc), console, lvl),
	)
}
