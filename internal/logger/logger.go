package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/BruksfildServices01/barbershop-booking/internal/config"
)

// New monta o logger da aplicação. Em modo "production" o encoder é JSON;
// com LOG_FILE configurado a saída também vai para um arquivo rotacionado.
func New(cfg *config.Config) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.LogMode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}

	if cfg.LogFile == "" {
		return zapConfig.Build(zap.AddCaller())
	}

	rotating := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    64,
		MaxBackups: 7,
		MaxAge:     7,
	}

	core := zapcore.NewTee(
		zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(rotating),
			zapConfig.Level,
		),
		zapcore.NewCore(
			consoleEncoder(cfg.LogMode),
			zapcore.AddSync(os.Stdout),
			zapConfig.Level,
		),
	)

	return zap.New(core, zap.AddCaller()), nil
}

func consoleEncoder(mode string) zapcore.Encoder {
	if mode == "production" {
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}
	return zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
}
