package log

import (
	logInterface "github.com/sidan-lab/cardano-golang-signing-module/pkg/interfaces/infrastructure/log"
)

// 模块名称，写入日志的 module 字段
const (
	ModuleBoundary = "boundary"
	ModuleCLI      = "cli"
)

// NewModuleLogger 创建带 module 字段的 logger
// baseLogger 为 nil 时基于全局日志记录器创建
func NewModuleLogger(baseLogger logInterface.Logger, module string) logInterface.Logger {
	if baseLogger == nil {
		baseLogger = GetLogger()
	}
	return baseLogger.With("module", module)
}
