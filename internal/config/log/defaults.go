package log

import (
	"go.uber.org/zap/zapcore"
)

// 日志配置默认值
// 签名库嵌入在宿主进程中运行，默认只向 stderr 输出警告及以上级别
const (
	// === 基础日志配置 ===

	// defaultLogLevel 默认日志级别
	defaultLogLevel = "warn"

	// defaultToConsole 默认输出到控制台
	defaultToConsole = true

	// defaultFilePath 默认输出目标，stderr 不占用宿主进程的 stdout
	defaultFilePath = "stderr"

	// === 日志轮转配置 ===

	// defaultMaxSize 单个日志文件最大大小(MB)
	defaultMaxSize = 20

	// defaultMaxBackups 最大备份文件数
	defaultMaxBackups = 5

	// defaultMaxAge 日志文件最大保留天数
	defaultMaxAge = 14

	// defaultCompress 默认压缩历史日志
	defaultCompress = true

	// === 调试配置 ===

	defaultEnableCaller     = false
	defaultEnableStacktrace = false
)

// 环境变量
const (
	EnvLevel   = "SIGNER_LOG_LEVEL"
	EnvFile    = "SIGNER_LOG_FILE"
	EnvConsole = "SIGNER_LOG_CONSOLE"
)

// 默认的日志级别映射
var defaultLevelMap = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
	"fatal": zapcore.FatalLevel,
}
