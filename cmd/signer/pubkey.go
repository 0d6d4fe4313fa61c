package main

import (
	"fmt"
	"os"

	"github.com/sidan-lab/cardano-golang-signing-module/internal/cli/output"
	"github.com/spf13/cobra"
)

// newPubkeyCmd 导出公钥
func newPubkeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pubkey",
		Short: "导出派生账户的公钥",
		Long: `导出派生账户的 Ed25519 公钥（64 位十六进制）。

示例：
  signer pubkey --mnemonic-file ./mnemonic.txt
  signer pubkey --skey-file ./payment.skey -o text`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ks, err := resolveKeySource(globalFlags.Keys, os.Getenv, secretReader{in: cmd.InOrStdin(), prompt: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			s, err := ks.open(globalFlags.Path)
			if err != nil {
				return err
			}
			defer s.Close()

			pub, err := s.GetPublicKey()
			if err != nil {
				return fmt.Errorf("导出公钥: %w", err)
			}
			if err := formatter.Print(output.Result{
				{Key: "public_key", Value: pub},
				{Key: "key_type", Value: ks.kind.String()},
				{Key: "path", Value: displayPath(ks)},
			}); err != nil {
				return err
			}
			formatter.PrintSuccess("公钥已导出")
			return nil
		},
	}
}

// displayPath cardano-cli 密钥没有派生路径
func displayPath(ks keySource) string {
	if ks.kind == keySKey {
		return "-"
	}
	return globalFlags.Path
}
