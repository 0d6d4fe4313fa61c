package wallet

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
)

// Type 钱包类型
type Type string

const (
	TypeMnemonic Type = "mnemonic" // BIP39 助记词
	TypeRootKey  Type = "root_key" // bech32 根扩展私钥
	TypeCLI      Type = "cli"      // cardano-cli 签名密钥
)

// Params 账户构造参数（和类型，只能是下面三种之一）
type Params interface {
	walletType() Type
}

// MnemonicParams 助记词 + 派生路径
type MnemonicParams struct {
	Phrase string
	Path   string
}

// RootKeyParams bech32 根私钥 + 派生路径
type RootKeyParams struct {
	Bech32Key string
	Path      string
}

// CLIKeyParams cardano-cli 签名密钥，不做派生
type CLIKeyParams struct {
	Key string
}

func (MnemonicParams) walletType() Type { return TypeMnemonic }
func (RootKeyParams) walletType() Type  { return TypeRootKey }
func (CLIKeyParams) walletType() Type   { return TypeCLI }

// Account 派生得到的账户，构造后不可变
type Account struct {
	key        signingKey
	publicKey  []byte
	walletType Type
	path       DerivationPath
}

// NewAccount 根据构造参数派生账户
// 失败时不会返回部分构造的账户
func NewAccount(p Params) (*Account, error) {
	switch p := p.(type) {
	case MnemonicParams:
		path, err := ParseDerivationPath(p.Path)
		if err != nil {
			return nil, err
		}
		entropy, err := MnemonicToEntropy(p.Phrase)
		if err != nil {
			return nil, err
		}
		defer zeroBytes(entropy)

		root := masterKeyFromEntropy(entropy, nil)
		defer root.wipe()
		return newAccount(root.derivePath(path), TypeMnemonic, path), nil

	case RootKeyParams:
		path, err := ParseDerivationPath(p.Path)
		if err != nil {
			return nil, err
		}
		root, err := parseRootKey(p.Bech32Key)
		if err != nil {
			return nil, err
		}
		defer root.wipe()
		return newAccount(root.derivePath(path), TypeRootKey, path), nil

	case CLIKeyParams:
		key, err := parseCLIKey(p.Key)
		if err != nil {
			return nil, err
		}
		return newAccount(key, TypeCLI, nil), nil

	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownParams, p)
	}
}

func newAccount(key signingKey, t Type, path DerivationPath) *Account {
	// 账户持有独立副本，原密钥（派生结果或根密钥本身）随即清零
	if ek, ok := key.(*extendedKey); ok {
		cp := *ek
		ek.wipe()
		key = &cp
	}
	return &Account{
		key:        key,
		publicKey:  key.publicKey(),
		walletType: t,
		path:       path,
	}
}

// PublicKey 返回公钥副本
func (a *Account) PublicKey() []byte {
	return append([]byte(nil), a.publicKey...)
}

// PublicKeyHex 返回十六进制公钥
func (a *Account) PublicKeyHex() string {
	return hex.EncodeToString(a.publicKey)
}

// Type 返回钱包类型
func (a *Account) Type() Type {
	return a.walletType
}

// Path 返回派生路径，CLI 密钥返回空字符串
func (a *Account) Path() string {
	if a.path == nil {
		return ""
	}
	return a.path.String()
}

// SignData 对任意数据签名
func (a *Account) SignData(message []byte) []byte {
	return a.key.sign(message)
}

// Verify 用账户公钥验证签名
func (a *Account) Verify(message, signature []byte) bool {
	return ed25519.Verify(a.publicKey, message, signature)
}

// Wipe 清除内存中的私钥，之后账户不可再用于签名
func (a *Account) Wipe() {
	switch k := a.key.(type) {
	case *extendedKey:
		k.wipe()
	case *normalKey:
		zeroBytes(k.priv)
	}
}
