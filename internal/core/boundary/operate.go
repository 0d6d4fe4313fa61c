package boundary

import (
	"github.com/sidan-lab/cardano-golang-signing-module/internal/core/handle"
	"github.com/sidan-lab/cardano-golang-signing-module/internal/core/wallet"
)

// Sign 使用句柄对应的账户签名交易，返回签名后的交易十六进制串
// 相同句柄和相同输入的结果完全一致
func (s *Service) Sign(id handle.ID, txHex *string) (string, error) {
	const op = OpSign
	tx, ferr := s.requireText(op, txHex)
	if ferr != nil {
		return "", ferr
	}

	var signed string
	err := s.registry.With(id, func(a *wallet.Account) error {
		out, err := a.SignTransaction(tx)
		signed = out
		return err
	})
	if err != nil {
		return "", s.failWith(op, err)
	}
	return s.checkOutput(op, signed)
}

// PublicKey 返回句柄对应账户的公钥（64 位小写十六进制）
func (s *Service) PublicKey(id handle.ID) (string, error) {
	const op = OpPublicKey
	var pub string
	err := s.registry.With(id, func(a *wallet.Account) error {
		pub = a.PublicKeyHex()
		return nil
	})
	if err != nil {
		return "", s.failWith(op, err)
	}
	return s.checkOutput(op, pub)
}

// Release 释放句柄并清除其密钥材料
// 释放无效句柄（0）是空操作；重复释放返回 false
func (s *Service) Release(id handle.ID) bool {
	if id == handle.Invalid {
		return false
	}
	if !s.registry.Release(id) {
		s.fail(OpFree, KindInvalidHandle, handle.ErrReleased)
		return false
	}
	handlesLive.Dec()
	recordSuccess(OpFree)
	return true
}
