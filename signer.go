package signer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sidan-lab/cardano-golang-signing-module/internal/core/boundary"
	"github.com/sidan-lab/cardano-golang-signing-module/internal/core/handle"
	"github.com/sidan-lab/cardano-golang-signing-module/internal/core/wallet"
)

// DefaultPath CIP-1852 第一个账户的第一个外部地址
const DefaultPath = wallet.DefaultPath

// Kind 失败分类
type Kind = boundary.Kind

const (
	KindMissingInput          = boundary.KindMissingInput
	KindInvalidEncoding       = boundary.KindInvalidEncoding
	KindInvalidDerivationPath = boundary.KindInvalidDerivationPath
	KindInvalidKeyMaterial    = boundary.KindInvalidKeyMaterial
	KindInvalidHandle         = boundary.KindInvalidHandle
	KindCapabilityFailure     = boundary.KindCapabilityFailure
	KindOutputEncoding        = boundary.KindOutputEncoding
)

// ErrClosed 签名器已关闭
var ErrClosed = errors.New("signer is closed")

// IsKind 判断错误是否属于指定分类
func IsKind(err error, kind Kind) bool {
	return boundary.IsKind(err, kind)
}

// Signer Cardano 签名器
type Signer struct {
	mu sync.Mutex
	id handle.ID
}

func newSigner(id handle.ID, err error, what string) (*Signer, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to create %s signer: %w", what, err)
	}
	return &Signer{id: id}, nil
}

// NewMnemonicSigner 由助记词创建签名器
func NewMnemonicSigner(mnemonicPhrase, derivationPath string) (*Signer, error) {
	id, err := boundary.Default().NewFromMnemonic(&mnemonicPhrase, &derivationPath)
	return newSigner(id, err, "mnemonic")
}

// NewBech32Signer 由 bech32 根私钥创建签名器
func NewBech32Signer(rootPrivateKey, derivationPath string) (*Signer, error) {
	id, err := boundary.Default().NewFromRootKey(&rootPrivateKey, &derivationPath)
	return newSigner(id, err, "bech32")
}

// NewCLISigner 由 cardano-cli 签名密钥创建签名器
func NewCLISigner(ed25519Key string) (*Signer, error) {
	id, err := boundary.Default().NewFromCLIKey(&ed25519Key)
	return newSigner(id, err, "CLI")
}

// currentID 返回当前句柄，已关闭时返回 ErrClosed
func (s *Signer) currentID() (handle.ID, error) {
	if s == nil {
		return handle.Invalid, ErrClosed
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.id == handle.Invalid {
		return handle.Invalid, ErrClosed
	}
	return s.id, nil
}

// SignTransaction 签名交易，返回签名后的交易十六进制串
func (s *Signer) SignTransaction(txHex string) (string, error) {
	id, err := s.currentID()
	if err != nil {
		return "", err
	}
	signed, err := boundary.Default().Sign(id, &txHex)
	if err != nil {
		return "", fmt.Errorf("failed to sign transaction: %w", err)
	}
	return signed, nil
}

// GetPublicKey 返回十六进制公钥
func (s *Signer) GetPublicKey() (string, error) {
	id, err := s.currentID()
	if err != nil {
		return "", err
	}
	pub, err := boundary.Default().PublicKey(id)
	if err != nil {
		return "", fmt.Errorf("failed to get public key: %w", err)
	}
	return pub, nil
}

// Close 释放签名器并清除密钥材料，可重复调用
func (s *Signer) Close() {
	if s == nil {
		return
	}
	s.mu.Lock()
	id := s.id
	s.id = handle.Invalid
	s.mu.Unlock()

	if id != handle.Invalid {
		boundary.Default().Release(id)
	}
}

// LastError 返回进程内最近一次失败的分类描述
func LastError() string {
	return boundary.Default().LastError()
}

// Gatherer 返回签名库指标所在的注册表
func Gatherer() prometheus.Gatherer {
	return prometheus.DefaultGatherer
}
