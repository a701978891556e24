package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New 按 gin 运行模式构建 zap logger
func New(mode string) (*zap.Logger, error) {
	if mode == "release" {
		return zap.NewProduction()
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg.Build()
}
