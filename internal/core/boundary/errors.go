package boundary

import (
	"errors"
	"fmt"

	"github.com/sidan-lab/cardano-golang-signing-module/internal/core/handle"
	"github.com/sidan-lab/cardano-golang-signing-module/internal/core/wallet"
)

// Kind 失败分类
// 边界内部保留分类，越过 C 边界时统一折叠为 NULL
type Kind int

const (
	KindUnknown Kind = iota
	// KindMissingInput 必需的输入缺失（空指针）
	KindMissingInput
	// KindInvalidEncoding 输入不是合法的 UTF-8 文本或包含 NUL
	KindInvalidEncoding
	// KindInvalidDerivationPath 派生路径格式错误
	KindInvalidDerivationPath
	// KindInvalidKeyMaterial 助记词或密钥无效
	KindInvalidKeyMaterial
	// KindInvalidHandle 句柄无效或已释放
	KindInvalidHandle
	// KindCapabilityFailure 钱包能力层拒绝了请求
	KindCapabilityFailure
	// KindOutputEncoding 输出无法表示为 C 字符串
	KindOutputEncoding
)

var kindNames = map[Kind]string{
	KindUnknown:               "unknown",
	KindMissingInput:          "missing input",
	KindInvalidEncoding:       "invalid encoding",
	KindInvalidDerivationPath: "invalid derivation path",
	KindInvalidKeyMaterial:    "invalid key material",
	KindInvalidHandle:         "invalid handle",
	KindCapabilityFailure:     "capability failure",
	KindOutputEncoding:        "output encoding failure",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Op 边界操作名称
type Op string

const (
	OpNewMnemonic Op = "new_mnemonic"
	OpNewBech32   Op = "new_bech32"
	OpNewCLI      Op = "new_cli"
	OpSign        Op = "sign_transaction"
	OpPublicKey   Op = "get_public_key"
	OpFree        Op = "free"
)

// Error 带分类的边界错误
// Error() 只包含操作名、分类和底层错误，底层错误不携带调用方输入
type Error struct {
	Kind Kind
	Op   Op
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Summary 返回 "<分类>: <操作>"，用于 signer_last_error
func (e *Error) Summary() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Op)
}

// IsKind 判断错误链中是否包含指定分类的边界错误
func IsKind(err error, kind Kind) bool {
	var be *Error
	return errors.As(err, &be) && be.Kind == kind
}

// KindOf 返回错误的分类，非边界错误返回 KindUnknown
func KindOf(err error) Kind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindUnknown
}

// classify 将能力层和句柄层的错误映射为分类
func classify(err error) Kind {
	switch {
	case errors.Is(err, wallet.ErrInvalidPath):
		return KindInvalidDerivationPath
	case errors.Is(err, wallet.ErrInvalidMnemonic),
		errors.Is(err, wallet.ErrInvalidRootKey),
		errors.Is(err, wallet.ErrInvalidCLIKey):
		return KindInvalidKeyMaterial
	case errors.Is(err, handle.ErrInvalidHandle),
		errors.Is(err, handle.ErrReleased):
		return KindInvalidHandle
	default:
		return KindCapabilityFailure
	}
}

// 输入校验错误
var (
	errNilInput    = errors.New("required input is absent")
	errInvalidUTF8 = errors.New("input is not valid utf-8")
	errEmbeddedNUL = errors.New("text contains NUL byte")
)
