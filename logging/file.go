package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits for file logs.
const (
	fileMaxSizeMB  = 64
	fileMaxBackups = 3
)

// NewFileLogger returns a logger that writes to stdout like NewLogger and also appends JSON
// lines to path, rotating the file once it grows past a few tens of megabytes. The returned
// closer releases the file.
func NewFileLogger(name string, level Level, path string) (Logger, io.Closer) {
	atomicLevel := NewAtomicLevelAt(level)

	consoleConfig := NewLoggerConfig().EncoderConfig
	consoleConfig.EncodeTime = zapcore.TimeEncoderOfLayout(DefaultTimeFormatStr)

	fileConfig := consoleConfig
	fileConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    fileMaxSizeMB,
		MaxBackups: fileMaxBackups,
	}
	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleConfig), zapcore.Lock(os.Stdout), atomicLevel),
		zapcore.NewCore(zapcore.NewJSONEncoder(fileConfig), zapcore.AddSync(rotator), atomicLevel),
	)
	zl := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	return &impl{name: name, level: atomicLevel, sugar: zl.Sugar().Named(name)}, rotator
}
