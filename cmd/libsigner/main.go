// libsigner 以 C 动态库形式导出签名边界
//
// 构建：go build -buildmode=c-shared -o libsigner.so ./cmd/libsigner
//
// 句柄和返回的字符串都由调用方拥有：句柄用 signer_free 释放，
// 字符串用 signer_free_string 释放，各自只能释放一次。
// 任何失败都返回 NULL，signer_last_error 可查询最近一次失败的分类。
package main

/*
#include "csigner.h"
*/
import "C"

import (
	"github.com/sidan-lab/cardano-golang-signing-module/internal/core/boundary"
	"github.com/sidan-lab/cardano-golang-signing-module/internal/core/handle"
)

func toCSigner(id handle.ID, err error) *C.CSigner {
	if err != nil {
		return nil
	}
	h := newCSigner(id)
	if h == nil {
		boundary.Default().Release(id)
	}
	return h
}

func toCString(s string, err error) *C.char {
	if err != nil {
		return nil
	}
	return newCString(s)
}

//export signer_new_mnemonic
func signer_new_mnemonic(mnemonicPhrase, derivationPath *C.char) *C.CSigner {
	return toCSigner(boundary.Default().NewFromMnemonic(readCString(mnemonicPhrase), readCString(derivationPath)))
}

//export signer_new_bech32
func signer_new_bech32(rootPrivateKey, derivationPath *C.char) *C.CSigner {
	return toCSigner(boundary.Default().NewFromRootKey(readCString(rootPrivateKey), readCString(derivationPath)))
}

//export signer_new_cli
func signer_new_cli(ed25519Key *C.char) *C.CSigner {
	return toCSigner(boundary.Default().NewFromCLIKey(readCString(ed25519Key)))
}

//export signer_sign_transaction
func signer_sign_transaction(signer *C.CSigner, txHex *C.char) *C.char {
	return toCString(boundary.Default().Sign(handleID(signer), readCString(txHex)))
}

//export signer_get_public_key
func signer_get_public_key(signer *C.CSigner) *C.char {
	return toCString(boundary.Default().PublicKey(handleID(signer)))
}

//export signer_free
func signer_free(signer *C.CSigner) {
	if signer == nil {
		return
	}
	boundary.Default().Release(handleID(signer))
	freeCSigner(signer)
}

//export signer_free_string
func signer_free_string(s *C.char) {
	freeCString(s)
}

//export signer_last_error
func signer_last_error() *C.char {
	msg := boundary.Default().LastError()
	if msg == "" {
		return nil
	}
	return newCString(msg)
}

func main() {}
