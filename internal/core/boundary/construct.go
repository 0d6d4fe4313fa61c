package boundary

import (
	"github.com/sidan-lab/cardano-golang-signing-module/internal/core/handle"
	"github.com/sidan-lab/cardano-golang-signing-module/internal/core/wallet"
)

// NewFromMnemonic 由助记词和派生路径构造句柄
func (s *Service) NewFromMnemonic(phrase, path *string) (handle.ID, error) {
	const op = OpNewMnemonic
	p, err := s.requireText(op, phrase)
	if err != nil {
		return handle.Invalid, err
	}
	dp, err := s.requireText(op, path)
	if err != nil {
		return handle.Invalid, err
	}
	return s.construct(op, wallet.MnemonicParams{Phrase: p, Path: dp})
}

// NewFromRootKey 由 bech32 根私钥和派生路径构造句柄
func (s *Service) NewFromRootKey(rootKey, path *string) (handle.ID, error) {
	const op = OpNewBech32
	k, err := s.requireText(op, rootKey)
	if err != nil {
		return handle.Invalid, err
	}
	dp, err := s.requireText(op, path)
	if err != nil {
		return handle.Invalid, err
	}
	return s.construct(op, wallet.RootKeyParams{Bech32Key: k, Path: dp})
}

// NewFromCLIKey 由 cardano-cli 签名密钥构造句柄
func (s *Service) NewFromCLIKey(key *string) (handle.ID, error) {
	const op = OpNewCLI
	k, err := s.requireText(op, key)
	if err != nil {
		return handle.Invalid, err
	}
	return s.construct(op, wallet.CLIKeyParams{Key: k})
}

// construct 派生账户并登记句柄
// 任一步失败都不会留下已登记的句柄
func (s *Service) construct(op Op, params wallet.Params) (handle.ID, error) {
	account, err := wallet.NewAccount(params)
	if err != nil {
		return handle.Invalid, s.failWith(op, err)
	}

	id, err := s.registry.Register(account)
	if err != nil {
		account.Wipe()
		return handle.Invalid, s.fail(op, KindCapabilityFailure, err)
	}

	handlesLive.Inc()
	recordSuccess(op)
	s.logger.With("op", string(op), "type", string(account.Type())).Debug("signer handle created")
	return id, nil
}
