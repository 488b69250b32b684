// Package logging 提供进程级 zap 日志器
//
// 各系统通过 Named("IntroSequencer") 获取带组件名的 SugaredLogger，
// 输出形如 `INFO IntroSequencer state: booting → awaitingEnterDelay`。
// 未调用 Init 时使用 Nop 日志器，测试无需任何配置。
package logging

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu   sync.RWMutex
	base = zap.NewNop()
)

// Init 构建进程日志器
//
// 参数：
//   - verbose: true 时使用 development 配置并输出 Debug 级别
func Init(verbose bool) (*zap.Logger, error) {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	Set(logger)
	return logger, nil
}

// Set 替换进程日志器（测试可传入 zaptest / observer 日志器）
func Set(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	mu.Lock()
	base = logger
	mu.Unlock()
}

// L 返回当前进程日志器
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Named 返回带组件名的 SugaredLogger
func Named(component string) *zap.SugaredLogger {
	return L().Named(component).Sugar()
}

// Sync 刷新缓冲日志，进程退出前调用
func Sync() {
	_ = L().Sync()
}
