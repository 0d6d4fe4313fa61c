package types

// UserLogConfig 用户日志配置
// 字段为 nil 表示未设置，沿用默认值
type UserLogConfig struct {
	Level     *string `json:"level,omitempty"`      // 日志级别：debug, info, warn, error, fatal
	FilePath  *string `json:"file_path,omitempty"`  // 日志文件路径，stdout/stderr 表示控制台
	ToConsole *bool   `json:"to_console,omitempty"` // 指定文件路径时是否同时输出到控制台
}
