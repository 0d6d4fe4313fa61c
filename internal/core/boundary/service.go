// Package boundary 实现签名器的外部调用边界
//
// 边界接收不可信的文本输入，构造钱包账户并以不透明句柄交给调用方，
// 之后的签名、公钥导出和释放都通过句柄完成。所有失败在内部带有分类，
// 由最外层（C ABI 或 Go API）决定如何折叠。
package boundary

import (
	"strings"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/sidan-lab/cardano-golang-signing-module/internal/core/handle"
	logpkg "github.com/sidan-lab/cardano-golang-signing-module/internal/core/infrastructure/log"
	"github.com/sidan-lab/cardano-golang-signing-module/internal/core/wallet"
	"github.com/sidan-lab/cardano-golang-signing-module/pkg/interfaces/infrastructure/log"
)

// Service 签名边界
type Service struct {
	registry *handle.Registry[*wallet.Account]
	logger   log.Logger

	// last 最近一次失败，进程级而非线程级
	last atomic.Pointer[Error]
}

// NewService 创建签名边界
// logger 为 nil 时使用全局日志记录器
func NewService(logger log.Logger) *Service {
	return &Service{
		registry: handle.NewRegistry[*wallet.Account](
			handle.WithReleaseHook(func(a *wallet.Account) { a.Wipe() }),
		),
		logger: logpkg.NewModuleLogger(logger, logpkg.ModuleBoundary),
	}
}

var defaultService = sync.OnceValue(func() *Service {
	return NewService(nil)
})

// Default 返回进程级共享的签名边界，C ABI 与 Go API 共用
func Default() *Service {
	return defaultService()
}

// Len 返回存活句柄数
func (s *Service) Len() int {
	return s.registry.Len()
}

// LastError 返回最近一次失败的 "<分类>: <操作>"，没有失败时返回空串
func (s *Service) LastError() string {
	if e := s.last.Load(); e != nil {
		return e.Summary()
	}
	return ""
}

// ClearLastError 清除最近一次失败记录
func (s *Service) ClearLastError() {
	s.last.Store(nil)
}

// fail 记录失败并返回边界错误
func (s *Service) fail(op Op, kind Kind, err error) *Error {
	e := &Error{Kind: kind, Op: op, Err: err}
	s.last.Store(e)
	recordFailure(op, kind)
	s.logger.With("op", string(op), "kind", kind.String()).Debug("boundary call failed")
	return e
}

// failWith 按底层错误分类后记录失败
func (s *Service) failWith(op Op, err error) *Error {
	return s.fail(op, classify(err), err)
}

// requireText 校验必需的文本输入
func (s *Service) requireText(op Op, v *string) (string, *Error) {
	if v == nil {
		return "", s.fail(op, KindMissingInput, errNilInput)
	}
	if !utf8.ValidString(*v) {
		return "", s.fail(op, KindInvalidEncoding, errInvalidUTF8)
	}
	if strings.IndexByte(*v, 0) >= 0 {
		return "", s.fail(op, KindInvalidEncoding, errEmbeddedNUL)
	}
	return *v, nil
}

// checkOutput 输出中不得包含 NUL，否则 C 端会静默截断
func (s *Service) checkOutput(op Op, out string) (string, error) {
	if strings.IndexByte(out, 0) >= 0 {
		return "", s.fail(op, KindOutputEncoding, errEmbeddedNUL)
	}
	recordSuccess(op)
	return out, nil
}
