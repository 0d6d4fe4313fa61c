package wallet

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/fxamacker/cbor/v2"
)

// signingKey 账户持有的私钥抽象
type signingKey interface {
	publicKey() []byte
	sign(message []byte) []byte
}

// normalKey 普通 Ed25519 私钥（cardano-cli 非扩展签名密钥）
type normalKey struct {
	priv ed25519.PrivateKey
}

func (k *normalKey) publicKey() []byte {
	return k.priv.Public().(ed25519.PublicKey)
}

func (k *normalKey) sign(message []byte) []byte {
	return ed25519.Sign(k.priv, message)
}

// 根密钥 bech32 前缀
var rootKeyHRPs = map[string]bool{
	"xprv":     true, // cardano-serialization-lib Bip32PrivateKey
	"root_xsk": true, // CIP-5
}

// parseRootKey 解析 bech32 编码的根扩展私钥 (kL || kR || chainCode)
func parseRootKey(encoded string) (*extendedKey, error) {
	hrp, data, err := bech32.DecodeNoLimit(strings.TrimSpace(encoded))
	if err != nil {
		return nil, fmt.Errorf("%w: malformed bech32", ErrInvalidRootKey)
	}
	if !rootKeyHRPs[hrp] {
		return nil, fmt.Errorf("%w: unexpected prefix %q", ErrInvalidRootKey, hrp)
	}
	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed bech32 payload", ErrInvalidRootKey)
	}
	defer zeroBytes(raw)

	if len(raw) != 96 {
		return nil, fmt.Errorf("%w: expected 96 bytes, got %d", ErrInvalidRootKey, len(raw))
	}
	if err := checkScalarBits(raw[:32]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRootKey, err)
	}

	k := &extendedKey{}
	copy(k.kL[:], raw[:32])
	copy(k.kR[:], raw[32:64])
	copy(k.chainCode[:], raw[64:96])
	return k, nil
}

// parseCLIKey 解析 cardano-cli 签名密钥
//
// 支持 cborHex（5820/5840/5880 前缀）以及 32/64/128 字节的裸十六进制
func parseCLIKey(encoded string) (signingKey, error) {
	raw, err := hex.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, fmt.Errorf("%w: not hex", ErrInvalidCLIKey)
	}
	defer zeroBytes(raw)

	// 裸密钥长度为 32/64/128，cborHex 带 2 字节头（34/66/130），两者不会重叠；
	// 不能按首字节判断，裸密钥本身可能以 0x40-0x5f 开头
	if isBareKeyLength(len(raw)) {
		return keyFromBytes(raw)
	}

	var inner []byte
	if err := cbor.Unmarshal(raw, &inner); err != nil {
		return nil, fmt.Errorf("%w: malformed cbor", ErrInvalidCLIKey)
	}
	defer zeroBytes(inner)
	return keyFromBytes(inner)
}

func isBareKeyLength(n int) bool {
	return n == ed25519.SeedSize || n == 64 || n == 128
}

// keyFromBytes 按长度区分普通密钥与扩展密钥
func keyFromBytes(b []byte) (signingKey, error) {
	switch len(b) {
	case ed25519.SeedSize:
		return &normalKey{priv: ed25519.NewKeyFromSeed(b)}, nil
	case 64, 128:
		if err := checkScalarBits(b[:32]); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCLIKey, err)
		}
		k := &extendedKey{}
		copy(k.kL[:], b[:32])
		copy(k.kR[:], b[32:64])
		if len(b) == 128 {
			// kL || kR || A || chainCode，附带的公钥必须与私钥一致
			if !bytes.Equal(k.publicKey(), b[64:96]) {
				k.wipe()
				return nil, fmt.Errorf("%w: embedded public key mismatch", ErrInvalidCLIKey)
			}
			copy(k.chainCode[:], b[96:128])
		}
		return k, nil
	default:
		return nil, fmt.Errorf("%w: unexpected key length %d", ErrInvalidCLIKey, len(b))
	}
}

// checkScalarBits 校验扩展私钥 kL 的低 3 位与最高位
func checkScalarBits(kL []byte) error {
	if kL[0]&0x07 != 0 {
		return fmt.Errorf("lowest bits of scalar not cleared")
	}
	if kL[31]&0x80 != 0 {
		return fmt.Errorf("highest bit of scalar set")
	}
	return nil
}
