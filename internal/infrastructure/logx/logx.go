package logx

import (
	"strings"
	"sync"

	"cnythb-converter/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	once   sync.Once
	logger *zap.Logger
)

// New builds a production JSON logger writing to stderr at the given level.
// An empty or unknown level keeps the default (info).
func New(level string) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	zapCfg.Sampling = nil
	zapCfg.DisableStacktrace = true
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if level != "" {
		_ = zapCfg.Level.UnmarshalText([]byte(strings.ToLower(level)))
	}
	return zapCfg.Build(zap.AddCaller())
}

// L returns the package-level logger, built on first use so that a .env
// loaded by main is already in the environment.
func L() *zap.Logger {
	once.Do(func() {
		l, err := New(config.Load().LogLevel)
		if err != nil {
			panic(err)
		}
		logger = l
	})
	return logger
}
