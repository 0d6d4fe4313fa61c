package main

import (
	"fmt"

	"github.com/sidan-lab/cardano-golang-signing-module/internal/cli/output"
	"github.com/sidan-lab/cardano-golang-signing-module/internal/core/wallet"
	"github.com/spf13/cobra"
)

// newMnemonicCmd 助记词工具
func newMnemonicCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mnemonic",
		Short: "助记词工具",
	}
	cmd.AddCommand(newMnemonicGenerateCmd())
	return cmd
}

func newMnemonicGenerateCmd() *cobra.Command {
	var words int

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "生成新的 BIP39 助记词",
		Long: `生成新的 BIP39 英文助记词。

示例：
  signer mnemonic generate --words 24 -o text > mnemonic.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			strength, err := strengthForWords(words)
			if err != nil {
				return err
			}
			phrase, err := wallet.GenerateMnemonic(strength)
			if err != nil {
				return fmt.Errorf("生成助记词: %w", err)
			}
			formatter.PrintWarning("请妥善保管助记词，任何获得助记词的人都可以控制资产")
			return formatter.Print(output.Result{
				{Key: "mnemonic", Value: phrase},
				{Key: "words", Value: fmt.Sprint(words)},
			})
		},
	}
	cmd.Flags().IntVar(&words, "words", 24, "助记词单词数: 12|15|24")
	return cmd
}

func strengthForWords(words int) (wallet.MnemonicStrength, error) {
	switch words {
	case 12:
		return wallet.Mnemonic12Words, nil
	case 15:
		return wallet.Mnemonic15Words, nil
	case 24:
		return wallet.Mnemonic24Words, nil
	default:
		return 0, fmt.Errorf("不支持的单词数 %d (12|15|24)", words)
	}
}
