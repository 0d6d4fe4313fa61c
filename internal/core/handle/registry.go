// Package handle 提供不透明句柄到对象的进程内注册表
//
// 句柄 ID 由槽位和代数组成（generation<<32 | slot）。槽位释放后代数递增，
// 因此已释放的句柄再次使用时可以被检测出来，而不是访问到新对象。
// ID 0 永远无效，用作"无句柄"。
package handle

import (
	"errors"
	"sync"
)

// ID 不透明句柄
type ID uint64

// Invalid 无效句柄
const Invalid ID = 0

// 注册表错误
var (
	ErrInvalidHandle = errors.New("invalid handle")
	ErrReleased      = errors.New("handle already released")
	ErrFull          = errors.New("handle registry full")
)

const maxSlots = 1<<32 - 1

func makeID(slot, generation uint32) ID {
	return ID(uint64(generation)<<32 | uint64(slot))
}

func (id ID) slot() uint32       { return uint32(id) }
func (id ID) generation() uint32 { return uint32(id >> 32) }

// entry 单个句柄的存储
// mu 串行化同一句柄上的操作，不同句柄之间互不阻塞
type entry[T any] struct {
	mu       sync.Mutex
	value    T
	released bool
}

type slot[T any] struct {
	generation uint32
	entry      *entry[T]
}

// Registry 句柄注册表
type Registry[T any] struct {
	mu    sync.RWMutex
	slots []slot[T]
	free  []uint32
	live  int

	// onRelease 在句柄释放时调用（已持有该句柄的锁）
	onRelease func(T)
}

// Option 注册表选项
type Option[T any] func(*Registry[T])

// WithReleaseHook 设置释放回调，用于清理敏感数据
func WithReleaseHook[T any](fn func(T)) Option[T] {
	return func(r *Registry[T]) {
		r.onRelease = fn
	}
}

// NewRegistry 创建注册表
func NewRegistry[T any](opts ...Option[T]) *Registry[T] {
	r := &Registry[T]{
		// 槽位 0 保留，保证 ID 永远不为 0
		slots: make([]slot[T], 1),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register 注册对象并返回新句柄
func (r *Registry[T]) Register(value T) (ID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var idx uint32
	if n := len(r.free); n > 0 {
		idx = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		if uint64(len(r.slots)) >= maxSlots {
			return Invalid, ErrFull
		}
		idx = uint32(len(r.slots))
		r.slots = append(r.slots, slot[T]{})
	}

	s := &r.slots[idx]
	s.generation++
	if s.generation == 0 {
		s.generation = 1
	}
	s.entry = &entry[T]{value: value}
	r.live++

	return makeID(idx, s.generation), nil
}

// lookup 读锁下查找句柄
func (r *Registry[T]) lookup(id ID) (*entry[T], error) {
	if id == Invalid {
		return nil, ErrInvalidHandle
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := id.slot()
	if idx == 0 || int(idx) >= len(r.slots) {
		return nil, ErrInvalidHandle
	}
	s := r.slots[idx]
	if s.entry == nil || s.generation != id.generation() {
		return nil, ErrReleased
	}
	return s.entry, nil
}

// With 在持有句柄锁的情况下执行 fn
// 同一句柄上的并发调用会依次执行
func (r *Registry[T]) With(id ID, fn func(T) error) error {
	e, err := r.lookup(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// 查找与加锁之间句柄可能已被释放
	if e.released {
		return ErrReleased
	}
	return fn(e.value)
}

// Release 释放句柄
// 返回 false 表示句柄无效或已释放；释放会等待该句柄上正在进行的操作完成
func (r *Registry[T]) Release(id ID) bool {
	if id == Invalid {
		return false
	}

	r.mu.Lock()
	idx := id.slot()
	if idx == 0 || int(idx) >= len(r.slots) {
		r.mu.Unlock()
		return false
	}
	s := &r.slots[idx]
	if s.entry == nil || s.generation != id.generation() {
		r.mu.Unlock()
		return false
	}
	e := s.entry
	s.entry = nil
	r.free = append(r.free, idx)
	r.live--
	r.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	e.released = true
	if r.onRelease != nil {
		r.onRelease(e.value)
	}
	var zero T
	e.value = zero
	return true
}

// Len 返回存活句柄数
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.live
}
