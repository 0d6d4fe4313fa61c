package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sidan-lab/cardano-golang-signing-module/internal/cli/output"
	logconfig "github.com/sidan-lab/cardano-golang-signing-module/internal/config/log"
	logpkg "github.com/sidan-lab/cardano-golang-signing-module/internal/core/infrastructure/log"
	"github.com/sidan-lab/cardano-golang-signing-module/internal/core/wallet"
	"github.com/spf13/cobra"
)

// GlobalFlags 全局标志
type GlobalFlags struct {
	Keys         keyOptions // 密钥来源
	Path         string     // 派生路径
	OutputFormat string     // 输出格式
	LogLevel     string     // 日志级别
	LogFile      string     // 日志文件
	Silent       bool       // 静默模式
}

var (
	globalFlags GlobalFlags
	formatter   *output.Formatter
)

// rootCmd 根命令
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	globalFlags = GlobalFlags{}
	cmd := &cobra.Command{
		Use:   "signer",
		Short: "Cardano 交易签名工具",
		Long: `signer - Cardano 离线交易签名工具

支持三种密钥来源（只能指定一种）:
  --mnemonic-file / --mnemonic-stdin   BIP39 助记词
  --root-key-file                      bech32 根私钥 (xprv1... / root_xsk1...)
  --skey-file                          cardano-cli 签名密钥文件

未指定标志时依次读取环境变量 SIGNER_MNEMONIC、SIGNER_ROOT_KEY、SIGNER_SKEY。
助记词和根私钥按 --path 派生（默认 m/1852'/1815'/0'/0/0）。`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := setupLogging(globalFlags); err != nil {
				return err
			}

			format, err := output.ParseFormat(globalFlags.OutputFormat)
			if err != nil {
				return err
			}
			formatter = output.NewFormatter(format, cmd.OutOrStdout())
			formatter.SetLogWriter(cmd.ErrOrStderr())
			formatter.SetSilent(globalFlags.Silent)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logpkg.Sync()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&globalFlags.Keys.MnemonicFile, "mnemonic-file", "", "从文件读取助记词")
	flags.BoolVar(&globalFlags.Keys.MnemonicStdin, "mnemonic-stdin", false, "从标准输入读取助记词（终端下不回显）")
	flags.StringVar(&globalFlags.Keys.RootKeyFile, "root-key-file", "", "从文件读取 bech32 根私钥")
	flags.StringVar(&globalFlags.Keys.SKeyFile, "skey-file", "", "cardano-cli 签名密钥文件（text envelope 或十六进制）")
	flags.StringVar(&globalFlags.Path, "path", wallet.DefaultPath, "派生路径")
	flags.StringVarP(&globalFlags.OutputFormat, "output", "o", "json", "输出格式: json|pretty|text")
	flags.StringVar(&globalFlags.LogLevel, "log-level", "", "日志级别: debug|info|warn|error (默认读取 SIGNER_LOG_LEVEL)")
	flags.StringVar(&globalFlags.LogFile, "log-file", "", "日志文件路径 (默认读取 SIGNER_LOG_FILE)")
	flags.BoolVar(&globalFlags.Silent, "silent", false, "静默模式 (仅输出结果)")

	cmd.AddCommand(newPubkeyCmd())
	cmd.AddCommand(newSignCmd())
	cmd.AddCommand(newMnemonicCmd())
	return cmd
}

// setupLogging 环境变量打底，命令行标志覆盖
func setupLogging(flags GlobalFlags) error {
	user := logconfig.FromEnv()
	if flags.LogLevel != "" {
		level := flags.LogLevel
		user.Level = &level
	}
	if flags.LogFile != "" {
		file := flags.LogFile
		user.FilePath = &file
	}

	logger, err := logpkg.New(logconfig.New(user))
	if err != nil {
		return fmt.Errorf("初始化日志: %w", err)
	}
	logpkg.SetLogger(logger)
	return nil
}

// Execute 执行根命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		reportError(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

// reportError 通过格式化器输出错误
// 参数解析失败时格式化器尚未创建，使用纯文本格式化器
func reportError(w io.Writer, err error) {
	f := formatter
	if f == nil {
		f = output.NewFormatter(output.FormatText, nil)
	}
	f.SetLogWriter(w)
	f.PrintError(err)
}
