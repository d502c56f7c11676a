// Package logger предоставляет структурированное логирование на базе Zap.
package logger

import (
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init инициализирует глобальный логгер.
// Для "production" используется JSON, для остальных окружений - консольный вывод.
// Некорректный уровень заменяется на info.
func Init(env, level string) {
	once.Do(func() {
		var cfg zap.Config
		if env == "production" {
			cfg = zap.NewProductionConfig()
		} else {
			cfg = zap.NewDevelopmentConfig()
		}
		cfg.Level = zap.NewAtomicLevelAt(ParseLevel(level))

		base, err := cfg.Build()
		if err != nil {
			base = zap.NewNop()
		}
		sugar = base.Sugar()
	})
}

// ParseLevel переводит LOG_LEVEL (INFO, debug, Warn, ...) в уровень zap
func ParseLevel(level string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// Get возвращает глобальный логгер; без Init создает development-логгер
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init("development", "info")
	}
	return sugar
}

// L возвращает глобальный логгер без сахара для библиотечных пакетов
func L() *zap.Logger {
	return Get().Desugar()
}

// Sync сбрасывает буферизованные записи. Вызывать перед завершением процесса.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
