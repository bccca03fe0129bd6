package utils

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Logger = zap.NewNop()

type LogOptions struct {
	File   string
	Level  string
	Stdout bool
}

func InitLogger(opts LogOptions) {
	if opts.File == "" {
		opts.File = "./logs/app.log"
	}
	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    50, // MB
		MaxBackups: 7,
		MaxAge:     14, // days
		Compress:   true,
	})

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	level := zap.InfoLevel
	if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
		level = zap.InfoLevel
	}

	core := zapcore.NewCore(encoder, writer, level)
	if opts.Stdout {
		core = zapcore.NewTee(core, zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level))
	}
	Logger = zap.New(core, zap.AddCaller())
}

// SetLogger swaps the global logger, mostly for tests.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	Logger = l
}
