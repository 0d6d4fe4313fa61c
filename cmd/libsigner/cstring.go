package main

/*
#include "csigner.h"
*/
import "C"

import (
	"unsafe"

	"github.com/sidan-lab/cardano-golang-signing-module/internal/core/handle"
)

// readCString 将调用方传入的 C 字符串复制为 Go 字符串
// 空指针返回 nil，由边界判定为缺失输入；UTF-8 校验由边界完成
func readCString(p *C.char) *string {
	if p == nil {
		return nil
	}
	s := C.GoString(p)
	return &s
}

// newCString 在 C 堆上分配字符串，所有权交给调用方
// 调用方必须且只能用 signer_free_string 释放一次
func newCString(s string) *C.char {
	return C.CString(s)
}

func freeCString(p *C.char) {
	if p != nil {
		C.free(unsafe.Pointer(p))
	}
}

// newCSigner 在 C 堆上分配句柄胶囊，Go 内存不会越过边界
func newCSigner(id handle.ID) *C.CSigner {
	h := (*C.CSigner)(C.malloc(C.size_t(unsafe.Sizeof(C.CSigner{}))))
	if h == nil {
		return nil
	}
	h.id = C.uint64_t(id)
	return h
}

func handleID(h *C.CSigner) handle.ID {
	if h == nil {
		return handle.Invalid
	}
	return handle.ID(h.id)
}

func freeCSigner(h *C.CSigner) {
	h.id = 0
	C.free(unsafe.Pointer(h))
}

// goString 读取库返回的字符串，测试使用
func goString(p *C.char) string {
	if p == nil {
		return ""
	}
	return C.GoString(p)
}

// cBytes 构造可包含任意字节的 C 字符串，测试使用
func cBytes(b []byte) *C.char {
	return (*C.char)(C.CBytes(append(b, 0)))
}
