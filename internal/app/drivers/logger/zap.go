package logger

import (
	"fmt"
	"neohearts-service/internal/app/config"
	"neohearts-service/internal/pkg/constvars"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func NewZapLogger(driverConfig *config.DriverConfig, internalConfig *config.InternalConfig) (*zap.Logger, error) {
	outputPaths, errorOutputPaths := zapOutputs(driverConfig, internalConfig.App.Env)

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(parseZapLevel(driverConfig.Logger.Level)),
		Development:      internalConfig.App.Env != constvars.AppEnvProduction,
		Encoding:         "json",
		EncoderConfig:    encoderConfig,
		OutputPaths:      outputPaths,
		ErrorOutputPaths: errorOutputPaths,
		InitialFields: map[string]interface{}{
			"service": "neohearts-service",
			"version": internalConfig.App.Version,
		},
	}

	zapLogger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("initializing zap logger: %w", err)
	}
	return zapLogger, nil
}

func parseZapLevel(level string) zapcore.Level {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return zap.InfoLevel
	}
	return parsed
}

// zapOutputs writes to files only in production.
func zapOutputs(driverConfig *config.DriverConfig, env string) ([]string, []string) {
	if env == constvars.AppEnvProduction {
		return []string{driverConfig.Logger.OutputFileName},
			[]string{"stderr", driverConfig.Logger.OutputErrorFileName}
	}
	return []string{"stdout"}, []string{"stderr"}
}
