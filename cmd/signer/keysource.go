package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	signer "github.com/sidan-lab/cardano-golang-signing-module"
	"golang.org/x/term"
)

// 环境变量
const (
	envMnemonic = "SIGNER_MNEMONIC"
	envRootKey  = "SIGNER_ROOT_KEY"
	envSKey     = "SIGNER_SKEY"
)

// maxSecretSize 密钥类输入的大小上限
const maxSecretSize = 64 << 10

var (
	errNoKeySource       = errors.New("未指定密钥来源 (--mnemonic-file|--mnemonic-stdin|--root-key-file|--skey-file)")
	errMultipleKeySource = errors.New("只能指定一种密钥来源")
)

// keyOptions 密钥来源标志
type keyOptions struct {
	MnemonicFile  string
	MnemonicStdin bool
	RootKeyFile   string
	SKeyFile      string
}

type keyKind int

const (
	keyMnemonic keyKind = iota + 1
	keyRootKey
	keySKey
)

func (k keyKind) String() string {
	switch k {
	case keyMnemonic:
		return "mnemonic"
	case keyRootKey:
		return "root_key"
	case keySKey:
		return "cli_key"
	default:
		return "unknown"
	}
}

// keySource 已读取的密钥材料
type keySource struct {
	kind     keyKind
	material string
}

// open 按密钥来源创建签名器
func (k keySource) open(path string) (*signer.Signer, error) {
	switch k.kind {
	case keyMnemonic:
		return signer.NewMnemonicSigner(k.material, path)
	case keyRootKey:
		return signer.NewBech32Signer(k.material, path)
	case keySKey:
		return signer.NewCLISigner(k.material)
	default:
		return nil, errNoKeySource
	}
}

// secretReader 读取密钥类输入
// 标准输入是终端时不回显
type secretReader struct {
	in     io.Reader
	prompt io.Writer
}

func (r secretReader) read(prompt string) (string, error) {
	if f, ok := r.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(r.prompt, prompt)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(r.prompt)
		if err != nil {
			return "", fmt.Errorf("读取输入失败: %w", err)
		}
		return string(b), nil
	}
	b, err := io.ReadAll(io.LimitReader(r.in, maxSecretSize))
	if err != nil {
		return "", fmt.Errorf("读取标准输入失败: %w", err)
	}
	return string(b), nil
}

// resolveKeySource 按标志或环境变量确定唯一的密钥来源
func resolveKeySource(opts keyOptions, getenv func(string) string, secrets secretReader) (keySource, error) {
	set := 0
	for _, on := range []bool{opts.MnemonicFile != "", opts.MnemonicStdin, opts.RootKeyFile != "", opts.SKeyFile != ""} {
		if on {
			set++
		}
	}
	if set > 1 {
		return keySource{}, errMultipleKeySource
	}

	switch {
	case opts.MnemonicFile != "":
		s, err := readSecretFile(opts.MnemonicFile)
		return keySource{kind: keyMnemonic, material: s}, err
	case opts.MnemonicStdin:
		s, err := secrets.read("助记词: ")
		return keySource{kind: keyMnemonic, material: strings.TrimSpace(s)}, err
	case opts.RootKeyFile != "":
		s, err := readSecretFile(opts.RootKeyFile)
		return keySource{kind: keyRootKey, material: s}, err
	case opts.SKeyFile != "":
		s, err := readSigningKeyFile(opts.SKeyFile)
		return keySource{kind: keySKey, material: s}, err
	}

	var found []keySource
	for _, e := range []struct {
		name string
		kind keyKind
	}{{envMnemonic, keyMnemonic}, {envRootKey, keyRootKey}, {envSKey, keySKey}} {
		if v := strings.TrimSpace(getenv(e.name)); v != "" {
			found = append(found, keySource{kind: e.kind, material: v})
		}
	}
	switch len(found) {
	case 0:
		return keySource{}, errNoKeySource
	case 1:
		return found[0], nil
	default:
		return keySource{}, errMultipleKeySource
	}
}

func readSecretFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("打开密钥文件: %w", err)
	}
	defer f.Close()

	b, err := io.ReadAll(io.LimitReader(f, maxSecretSize))
	if err != nil {
		return "", fmt.Errorf("读取密钥文件: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

// textEnvelope cardano-cli 密钥文件格式
type textEnvelope struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	CBORHex     string `json:"cborHex"`
}

// readSigningKeyFile 读取 cardano-cli 签名密钥，支持 text envelope 与裸十六进制
func readSigningKeyFile(path string) (string, error) {
	content, err := readSecretFile(path)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(content, "{") {
		return content, nil
	}

	var env textEnvelope
	if err := json.Unmarshal([]byte(content), &env); err != nil {
		return "", fmt.Errorf("解析密钥文件: 不是有效的 text envelope")
	}
	if env.Type != "" && !strings.Contains(env.Type, "SigningKey") {
		return "", fmt.Errorf("密钥文件类型 %q 不是签名密钥", env.Type)
	}
	if env.CBORHex == "" {
		return "", errors.New("密钥文件缺少 cborHex")
	}
	return env.CBORHex, nil
}
