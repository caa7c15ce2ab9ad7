package log

import (
	"go.uber.org/zap"
)

var (
	DevelopmentLogger, _ = zap.NewDevelopment()
	ProductionLogger, _  = zap.NewProduction()
	logger               = DevelopmentLogger
)

// EnableProduction switches the package logger to the JSON production encoder.
func EnableProduction() {
	logger = ProductionLogger
}

func Debug(msg string, fields ...zap.Field) {
	logger.WithOptions(zap.AddCallerSkip(1)).Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	logger.WithOptions(zap.AddCallerSkip(1)).Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	logger.WithOptions(zap.AddCallerSkip(1)).Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	logger.WithOptions(zap.AddCallerSkip(1)).Error(msg, fields...)
}

func Sync() {
	_ = logger.Sync()
}
