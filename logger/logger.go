// Package logger はコンソール本体の診断ログを組み立てる
// 評価結果などユーザー向けの出力はここを通さず、標準出力にそのまま書く
package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	// dev はカラー付きのコンソール出力、prod はJSON出力
	Env string
	// debug | info | warn | error
	Level string
}

// New は設定に応じたロガーを生成する
// 出力先はいずれも標準エラー出力
func New(cfg Config) (*zap.Logger, error) {
	level := parseLevel(cfg.Level)
	if strings.ToLower(cfg.Env) == "prod" {
		zcfg := zap.NewProductionConfig()
		zcfg.Level = zap.NewAtomicLevelAt(level)
		return zcfg.Build()
	}

	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	zcfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	zcfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	zcfg.DisableStacktrace = true
	return zcfg.Build()
}

func parseLevel(s string) zapcore.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
