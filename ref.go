package reftracker

import (
	"go.uber.org/atomic"
)

// Ref is a reference cell that can be read concurrently with the destruction of the object it points to.
//
// A tracker writes nil into a registered Ref atomically, so readers never observe a torn value.
type Ref[T any] struct {
	pointer atomic.Pointer[T]
}

// NewRef creates a new Ref that points to the given value.
func NewRef[T any](value *T) *Ref[T] {
	r := new(Ref[T])
	r.pointer.Store(value)

	return r
}

// Get returns the current value of the Ref (nil after the target was destroyed).
func (r *Ref[T]) Get() *T {
	return r.pointer.Load()
}

// Set replaces the value of the Ref.
func (r *Ref[T]) Set(value *T) {
	r.pointer.Store(value)
}

// Swap replaces the value of the Ref and returns the previous one.
func (r *Ref[T]) Swap(value *T) (previous *T) {
	return r.pointer.Swap(value)
}

// IsNil returns true if the Ref does not point to anything.
func (r *Ref[T]) IsNil() bool {
	return r.pointer.Load() == nil
}
