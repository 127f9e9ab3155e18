// Package logging builds the zap loggers used by both services.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"tierprice/config"
)

// New returns a JSON logger writing to stdout and, when cfg.File is set, to a
// size-rotated file. The returned level can be changed while the logger is in use.
func New(cfg config.LogConfig) (*zap.Logger, zap.AtomicLevel, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, zap.AtomicLevel{}, fmt.Errorf("parse log level: %w", err)
	}
	atomic := zap.NewAtomicLevelAt(level)

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderConfig)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), atomic),
	}
	if cfg.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(rotator), atomic))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	return logger, atomic, nil
}

// ApplyLevel updates level from a reloaded configuration.
func ApplyLevel(level zap.AtomicLevel, cfg config.LogConfig, logger *zap.Logger) {
	parsed, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		logger.Warn("ignoring invalid log level", zap.String("level", cfg.Level), zap.Error(err))
		return
	}
	if parsed == level.Level() {
		return
	}
	level.SetLevel(parsed)
	logger.Info("log level changed", zap.String("level", parsed.String()))
}
