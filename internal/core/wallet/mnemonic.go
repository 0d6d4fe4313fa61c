package wallet

import (
	"crypto/rand"
	"crypto/sha512"
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/pbkdf2"
)

// MnemonicStrength 助记词强度
type MnemonicStrength int

const (
	// Mnemonic12Words 12个助记词 (128 bits 熵)
	Mnemonic12Words MnemonicStrength = 128
	// Mnemonic15Words 15个助记词 (160 bits 熵)
	Mnemonic15Words MnemonicStrength = 160
	// Mnemonic24Words 24个助记词 (256 bits 熵)
	Mnemonic24Words MnemonicStrength = 256
)

// icarusIterations CIP-3 Icarus 主密钥的 PBKDF2 迭代次数
const icarusIterations = 4096

// GenerateMnemonic 生成助记词
func GenerateMnemonic(strength MnemonicStrength) (string, error) {
	switch strength {
	case Mnemonic12Words, Mnemonic15Words, Mnemonic24Words:
	default:
		return "", fmt.Errorf("invalid mnemonic strength: %d, must be 128, 160 or 256", strength)
	}

	entropy := make([]byte, int(strength)/8)
	if _, err := rand.Read(entropy); err != nil {
		return "", fmt.Errorf("failed to generate entropy: %w", err)
	}
	defer zeroBytes(entropy)

	return bip39.NewMnemonic(entropy)
}

// ValidateMnemonic 验证助记词（单词表 + 校验和）
func ValidateMnemonic(mnemonic string) bool {
	return bip39.IsMnemonicValid(normalizeSpaces(mnemonic))
}

// MnemonicToEntropy 将助记词转换回熵
// 底层错误不向上包装，避免错误信息里带出单词
func MnemonicToEntropy(mnemonic string) ([]byte, error) {
	mnemonic = normalizeSpaces(mnemonic)
	if mnemonic == "" {
		return nil, fmt.Errorf("%w: empty phrase", ErrInvalidMnemonic)
	}
	entropy, err := bip39.EntropyFromMnemonic(mnemonic)
	if err != nil {
		return nil, fmt.Errorf("%w: checksum or word list mismatch (%d words)", ErrInvalidMnemonic, wordCount(mnemonic))
	}
	return entropy, nil
}

// masterKeyFromEntropy 按 CIP-3 Icarus 方案从熵生成根扩展私钥
func masterKeyFromEntropy(entropy, passphrase []byte) *extendedKey {
	xprv := pbkdf2.Key(passphrase, entropy, icarusIterations, 96, sha512.New)
	defer zeroBytes(xprv)

	xprv[0] &= 0xF8
	xprv[31] &= 0x1F
	xprv[31] |= 0x40

	k := &extendedKey{}
	copy(k.kL[:], xprv[:32])
	copy(k.kR[:], xprv[32:64])
	copy(k.chainCode[:], xprv[64:96])
	return k
}

// normalizeSpaces 规范化空格（将多个连续空白替换为单个空格）
func normalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func wordCount(mnemonic string) int {
	return len(strings.Fields(mnemonic))
}

// zeroBytes 清零敏感数据
func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
