package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls how New builds the process logger
type Options struct {
	Level       string // debug, info, warn, error
	Format      string // json, console
	OutputPath  string // "stdout" or a file path
	Environment string
}

// New builds a zap logger writing to stdout or to a rotated file
func New(opts Options) *zap.Logger {
	level := zap.NewAtomicLevelAt(parseLevel(opts.Level))

	core := zapcore.NewCore(buildEncoder(opts), buildWriteSyncer(opts.OutputPath), level)

	return zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
}

func buildEncoder(opts Options) zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	format := strings.ToLower(opts.Format)
	if format == "" {
		format = "json"
		if opts.Environment != "production" {
			format = "console"
		}
	}

	if format == "console" {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(encoderConfig)
	}

	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(encoderConfig)
}

func buildWriteSyncer(path string) zapcore.WriteSyncer {
	if path == "" || strings.EqualFold(path, "stdout") {
		return zapcore.AddSync(os.Stdout)
	}
	if strings.EqualFold(path, "stderr") {
		return zapcore.AddSync(os.Stderr)
	}

	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    50, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	})
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
