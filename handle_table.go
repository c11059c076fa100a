package reftracker

import (
	"github.com/iotaledger/hive.go/ds/shrinkingmap"
	"github.com/iotaledger/hive.go/reftracker/lockpolicy"
	"github.com/iotaledger/hive.go/runtime/options"
)

// Handle is an opaque reference that is resolved through a HandleTable.
type Handle uint64

// InvalidHandle is never handed out by a HandleTable.
const InvalidHandle Handle = 0

// HandleTable maps handles to values. Clients keep handles instead of pointers, so invalidating a value only
// requires dropping its entries from the table.
type HandleTable[T any] struct {
	values     *shrinkingmap.ShrinkingMap[Handle, *T]
	lastHandle Handle
	mutex      lockpolicy.Policy

	optLockPolicy lockpolicy.Kind
}

// NewHandleTable creates a new HandleTable.
func NewHandleTable[T any](opts ...options.Option[HandleTable[T]]) *HandleTable[T] {
	return options.Apply(&HandleTable[T]{
		values: shrinkingmap.New[Handle, *T](),
	}, opts, func(h *HandleTable[T]) {
		h.mutex = lockpolicy.New(h.optLockPolicy)
	})
}

// WithHandleLockPolicy configures the lock that guards the operations of the HandleTable.
func WithHandleLockPolicy[T any](kind lockpolicy.Kind) options.Option[HandleTable[T]] {
	return func(h *HandleTable[T]) {
		h.optLockPolicy = kind
	}
}

// Register stores the value and returns a new handle for it. Handles are never reused.
func (h *HandleTable[T]) Register(value *T) Handle {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.lastHandle++
	h.values.Set(h.lastHandle, value)

	return h.lastHandle
}

// Lookup resolves the handle. It returns false if the handle was released or its value was invalidated.
func (h *HandleTable[T]) Lookup(handle Handle) (value *T, exists bool) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	return h.values.Get(handle)
}

// Release drops the handle and returns true if it was known.
func (h *HandleTable[T]) Release(handle Handle) (released bool) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	return h.values.Delete(handle)
}

// Invalidate drops every handle that resolves to the given value and returns how many were dropped.
func (h *HandleTable[T]) Invalidate(value *T) (invalidated int) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	matchingHandles := make([]Handle, 0)
	h.values.ForEach(func(handle Handle, storedValue *T) bool {
		if storedValue == value {
			matchingHandles = append(matchingHandles, handle)
		}

		return true
	})

	for _, handle := range matchingHandles {
		h.values.Delete(handle)
	}

	return len(matchingHandles)
}

// InvalidateAll drops every handle and returns how many were dropped.
func (h *HandleTable[T]) InvalidateAll() (invalidated int) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	invalidated = h.values.Size()
	h.values = shrinkingmap.New[Handle, *T]()

	return invalidated
}

// Size returns the number of live handles.
func (h *HandleTable[T]) Size() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	return h.values.Size()
}
