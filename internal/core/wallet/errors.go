package wallet

import "errors"

// 钱包错误
// 注意：错误信息中不得包含助记词、私钥等敏感输入
var (
	ErrInvalidPath        = errors.New("invalid derivation path")
	ErrInvalidMnemonic    = errors.New("invalid mnemonic")
	ErrInvalidRootKey     = errors.New("invalid root key")
	ErrInvalidCLIKey      = errors.New("invalid cli signing key")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrUnknownParams      = errors.New("unknown wallet params")
)
