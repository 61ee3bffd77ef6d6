package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Package-level logger so that deep call sites (timer callbacks, notifiers)
// do not need a logger threaded through them. Defaults to a no-op logger so
// tests can run without Init.
var log = zap.NewNop()

// Init builds the global logger. Development mode uses the console encoder
// with colored levels, production mode uses JSON.
func Init(development bool) error {
	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05")

	built, err := cfg.Build()
	if err != nil {
		return err
	}
	log = built
	return nil
}

func Sync() {
	_ = log.Sync()
}

func Debug(msg string, fields ...zap.Field) {
	log.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	log.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	log.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	log.Error(msg, fields...)
}

// Log writes at an arbitrary level, used by the request middleware to pick
// the level from the response status.
func Log(lvl zapcore.Level, msg string, fields ...zap.Field) {
	log.Log(lvl, msg, fields...)
}
