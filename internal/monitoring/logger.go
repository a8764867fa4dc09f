// Package monitoring provides logging, metrics and extraction observers.
package monitoring

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogOptions configures NewLogger
type LogOptions struct {
	Environment string // "production" selects JSON output
	Level       string // debug, info, warn, error
	File        string // optional path; enables a rotating file sink
	MaxSizeMB   int
	MaxBackups  int
	MaxAgeDays  int
}

// NewLogger builds a zap logger. Production uses the JSON encoder, every other
// environment the development console encoder. When File is set, entries are
// also written as JSON to a size-rotated file.
func NewLogger(opts LogOptions) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		if opts.Level != "" {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = zapcore.InfoLevel
	}

	var zapConfig zap.Config
	if opts.Environment == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)

	if opts.File == "" {
		return zapConfig.Build()
	}

	rotating := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    withDefault(opts.MaxSizeMB, 64),
		MaxBackups: withDefault(opts.MaxBackups, 7),
		MaxAge:     withDefault(opts.MaxAgeDays, 7),
	}

	var consoleEncoder zapcore.Encoder
	if opts.Environment == "production" {
		consoleEncoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		consoleEncoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}

	core := zapcore.NewTee(
		zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(rotating),
			zapConfig.Level,
		),
		zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), zapConfig.Level),
	)
	return zap.New(core, zap.AddCaller()), nil
}

func withDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
