package logging

import (
	"fmt"
	"time"

	"github.com/aurumatelier/jewelry-catalog/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

// New builds the application logger. Development mode switches to the
// console encoder with debug level; a level or encoding in cfg overrides
// either preset.
func New(cfg config.LoggerConfig, development bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if development {
		zcfg = zap.NewDevelopmentConfig()
	}

	if cfg.Level != "" {
		level, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
		}
		zcfg.Level = zap.NewAtomicLevelAt(level)
	}
	if cfg.Encoding != "" {
		zcfg.Encoding = cfg.Encoding
	}
	zcfg.DisableCaller = cfg.DisableCaller
	zcfg.DisableStacktrace = cfg.DisableStacktrace
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return zcfg.Build()
}

// Gorm bridges gorm's SQL logger onto log. Every statement is logged only at
// debug level; otherwise slow queries and errors are.
func Gorm(log *zap.Logger) gormlogger.Interface {
	level := gormlogger.Warn
	if log.Core().Enabled(zapcore.DebugLevel) {
		level = gormlogger.Info
	}
	return gormlogger.New(
		zap.NewStdLog(log.Named("gorm")),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
