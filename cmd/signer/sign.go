package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sidan-lab/cardano-golang-signing-module/internal/cli/output"
	logpkg "github.com/sidan-lab/cardano-golang-signing-module/internal/core/infrastructure/log"
	"github.com/spf13/cobra"
)

// maxTxSize 交易输入的大小上限（十六进制字符）
const maxTxSize = 1 << 20

type signOptions struct {
	txHex  string
	txFile string
}

// newSignCmd 签名交易
func newSignCmd() *cobra.Command {
	var opts signOptions

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "签名交易",
		Long: `为交易追加本账户的 vkey 见证，输出签名后的交易十六进制串。

交易可以通过 --tx 直接给出，或通过 --tx-file 从文件读取（"-" 表示标准输入）。

示例：
  signer sign --mnemonic-file ./mnemonic.txt --tx 84a4...
  cat tx.hex | signer sign --skey-file ./payment.skey --tx-file - -o text`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.txFile == "-" && globalFlags.Keys.MnemonicStdin {
				return errors.New("--tx-file - 与 --mnemonic-stdin 不能同时使用标准输入")
			}
			txHex, err := readTransaction(opts, cmd.InOrStdin())
			if err != nil {
				return err
			}

			ks, err := resolveKeySource(globalFlags.Keys, os.Getenv, secretReader{in: cmd.InOrStdin(), prompt: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			s, err := ks.open(globalFlags.Path)
			if err != nil {
				return err
			}
			defer s.Close()

			signed, err := s.SignTransaction(txHex)
			if err != nil {
				return err
			}
			pub, err := s.GetPublicKey()
			if err != nil {
				return err
			}

			logpkg.NewModuleLogger(nil, logpkg.ModuleCLI).With("key_type", ks.kind.String()).Info("transaction signed")
			if err := formatter.Print(output.Result{
				{Key: "signed_tx", Value: signed},
				{Key: "public_key", Value: pub},
			}); err != nil {
				return err
			}
			formatter.PrintSuccess("交易已签名")
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.txHex, "tx", "", "交易 CBOR 十六进制串")
	cmd.Flags().StringVar(&opts.txFile, "tx-file", "", `交易文件（十六进制），"-" 表示标准输入`)
	return cmd
}

// readTransaction 读取交易十六进制串
func readTransaction(opts signOptions, stdin io.Reader) (string, error) {
	switch {
	case opts.txHex != "" && opts.txFile != "":
		return "", errors.New("--tx 与 --tx-file 只能指定一个")
	case opts.txHex != "":
		return strings.TrimSpace(opts.txHex), nil
	case opts.txFile == "":
		return "", errors.New("需要 --tx 或 --tx-file")
	}

	var r io.Reader
	if opts.txFile == "-" {
		r = stdin
	} else {
		f, err := os.Open(opts.txFile)
		if err != nil {
			return "", fmt.Errorf("打开交易文件: %w", err)
		}
		defer f.Close()
		r = f
	}

	b, err := io.ReadAll(io.LimitReader(r, maxTxSize+1))
	if err != nil {
		return "", fmt.Errorf("读取交易: %w", err)
	}
	if len(b) > maxTxSize {
		return "", errors.New("交易过大")
	}
	return strings.TrimSpace(string(b)), nil
}
