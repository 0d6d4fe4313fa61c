// Package wallet 实现 Cardano 钱包能力：CIP-1852 派生、密钥解析与交易签名
package wallet

import (
	"fmt"
	"strconv"
	"strings"
)

// CIP-1852 相关常量
const (
	// CIP1852Purpose Shelley 钱包的 purpose 值
	CIP1852Purpose uint32 = 1852

	// ADACoinType ADA 的 SLIP-0044 Coin Type
	ADACoinType uint32 = 1815

	// HardenedOffset 硬化派生偏移量
	HardenedOffset uint32 = 0x80000000

	// ExternalRole 外部链（接收地址）
	ExternalRole uint32 = 0

	// InternalRole 内部链（找零地址）
	InternalRole uint32 = 1

	// StakingRole 质押密钥
	StakingRole uint32 = 2
)

// DefaultPath 默认派生路径 m/1852'/1815'/0'/0/0
const DefaultPath = "m/1852'/1815'/0'/0/0"

// DerivationPath BIP32 派生路径，每个元素为带硬化标记的索引
type DerivationPath []uint32

// CIP1852Path 返回 m/1852'/1815'/account'/role/index
func CIP1852Path(account, role, index uint32) DerivationPath {
	return DerivationPath{
		CIP1852Purpose + HardenedOffset,
		ADACoinType + HardenedOffset,
		account + HardenedOffset,
		role,
		index,
	}
}

// ParseDerivationPath 解析派生路径字符串
// 支持格式: m/1852'/1815'/0'/0/0、1852H/1815H/0H/0/0 或单独的 "m"（不派生）
//
// 解析是全函数：任何输入都只会返回错误，不会 panic。
func ParseDerivationPath(path string) (DerivationPath, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	parts := strings.Split(path, "/")
	if parts[0] == "m" || parts[0] == "M" {
		parts = parts[1:]
	}

	dp := make(DerivationPath, 0, len(parts))
	for i, part := range parts {
		index, err := parsePathComponent(part)
		if err != nil {
			return nil, fmt.Errorf("%w: component %d: %v", ErrInvalidPath, i+1, err)
		}
		dp = append(dp, index)
	}
	return dp, nil
}

// parsePathComponent 解析路径组件，返回包含硬化偏移的索引
func parsePathComponent(component string) (uint32, error) {
	hardened := false
	if n := len(component); n > 0 {
		switch component[n-1] {
		case '\'', 'h', 'H':
			hardened = true
			component = component[:n-1]
		}
	}

	if component == "" {
		return 0, fmt.Errorf("empty index")
	}
	// strconv 接受 "+1"，这里只允许纯数字
	for i := 0; i < len(component); i++ {
		if component[i] < '0' || component[i] > '9' {
			return 0, fmt.Errorf("invalid number %q", component)
		}
	}

	value, err := strconv.ParseUint(component, 10, 32)
	if err != nil || uint32(value) >= HardenedOffset {
		return 0, fmt.Errorf("index %q out of range", component)
	}

	if hardened {
		return uint32(value) + HardenedOffset, nil
	}
	return uint32(value), nil
}

// String 返回路径字符串表示
func (dp DerivationPath) String() string {
	var b strings.Builder
	b.WriteString("m")
	for _, index := range dp {
		b.WriteByte('/')
		if index >= HardenedOffset {
			b.WriteString(strconv.FormatUint(uint64(index-HardenedOffset), 10))
			b.WriteByte('\'')
		} else {
			b.WriteString(strconv.FormatUint(uint64(index), 10))
		}
	}
	return b.String()
}

// IsHardened 指定层级是否为硬化派生
func (dp DerivationPath) IsHardened(level int) bool {
	return level >= 0 && level < len(dp) && dp[level] >= HardenedOffset
}
