// Package reftracker implements a registry that records the locations of external references to an object and resets
// all of them to nil when the object is destroyed.
//
// The tracker never owns the recorded locations. It only keeps their addresses so that it can overwrite them.
package reftracker

import (
	"github.com/iotaledger/hive.go/reftracker/lockpolicy"
	"github.com/iotaledger/hive.go/reftracker/logger"
	"github.com/iotaledger/hive.go/runtime/options"
)

// ReferenceTracker records the locations that hold a reference to an instance of T.
type ReferenceTracker[T any] struct {
	registry registry[T]
	mutex    lockpolicy.Policy
	closed   bool
	counters counters

	optDeduplicate bool
	optLockPolicy  lockpolicy.Kind
	optLogger      *logger.Logger

	*logger.WrappedLogger
}

// New creates a new ReferenceTracker. Without options the tracker keeps registrations in insertion order, stores
// duplicates as separate entries and does not synchronize its operations.
func New[T any](opts ...options.Option[ReferenceTracker[T]]) *ReferenceTracker[T] {
	return options.Apply(new(ReferenceTracker[T]), opts, func(r *ReferenceTracker[T]) {
		r.mutex = lockpolicy.New(r.optLockPolicy)
		r.WrappedLogger = logger.NewWrappedLogger(r.optLogger)

		if r.optDeduplicate {
			r.registry = newDedupRegistry[T]()
		} else {
			r.registry = newOrderedRegistry[T]()
		}
	})
}

// AddReference registers the address of a pointer variable that currently refers to the tracked instance.
func (r *ReferenceTracker[T]) AddReference(location **T) {
	r.add(locationSlot[T]{location: location})
}

// RemoveReference unregisters one registration of the given pointer variable.
func (r *ReferenceTracker[T]) RemoveReference(location **T) {
	r.remove(locationSlot[T]{location: location})
}

// HasReference returns true if the given pointer variable is registered.
func (r *ReferenceTracker[T]) HasReference(location **T) bool {
	return r.has(locationSlot[T]{location: location})
}

// AddRef registers a Ref that currently refers to the tracked instance.
func (r *ReferenceTracker[T]) AddRef(ref *Ref[T]) {
	r.add(refSlot[T]{ref: ref})
}

// RemoveRef unregisters one registration of the given Ref.
func (r *ReferenceTracker[T]) RemoveRef(ref *Ref[T]) {
	r.remove(refSlot[T]{ref: ref})
}

// HasRef returns true if the given Ref is registered.
func (r *ReferenceTracker[T]) HasRef(ref *Ref[T]) bool {
	return r.has(refSlot[T]{ref: ref})
}

// ClearReferences resets every registered location to nil and empties the registry. Calling it again is a no-op.
func (r *ReferenceTracker[T]) ClearReferences() {
	if invalidated := r.clearReferences(); invalidated > 0 {
		r.LogDebugw("references invalidated", "count", invalidated)
	}
}

// Close invalidates all registered locations and rejects every later registration. It is safe to call Close
// multiple times and in any order with ClearReferences.
func (r *ReferenceTracker[T]) Close() {
	invalidated, wasClosed := r.close()
	if wasClosed {
		return
	}

	r.LogDebugw("tracker closed", "invalidated", invalidated)
}

// Size returns the number of entries in the registry (duplicates are counted individually).
func (r *ReferenceTracker[T]) Size() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return r.registry.size()
}

// IsClosed returns true if Close was called.
func (r *ReferenceTracker[T]) IsClosed() bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return r.closed
}

// IsDeduplicating returns true if the tracker stores every distinct location at most once.
func (r *ReferenceTracker[T]) IsDeduplicating() bool {
	return r.optDeduplicate
}

// LockPolicy returns the kind of lock that guards the tracker.
func (r *ReferenceTracker[T]) LockPolicy() lockpolicy.Kind {
	return r.optLockPolicy
}

// Stats returns a snapshot of the counters of the tracker.
func (r *ReferenceTracker[T]) Stats() Stats {
	return r.counters.snapshot()
}

func (r *ReferenceTracker[T]) add(entry slot[T]) {
	added, closed := r.addEntry(entry)
	switch {
	case closed:
		r.LogWarnw("registration on closed tracker ignored")
	case !added:
		r.LogDebugw("duplicate registration absorbed")
	}
}

func (r *ReferenceTracker[T]) addEntry(entry slot[T]) (added bool, closed bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.closed {
		r.counters.ignored.Inc()

		return false, true
	}

	if added = r.registry.add(entry); added {
		r.counters.added.Inc()
	} else {
		r.counters.deduplicated.Inc()
	}

	return added, false
}

func (r *ReferenceTracker[T]) remove(entry slot[T]) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.registry.remove(entry) {
		r.counters.removed.Inc()
	}
}

func (r *ReferenceTracker[T]) has(entry slot[T]) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return r.registry.has(entry)
}

func (r *ReferenceTracker[T]) clearReferences() (invalidated int) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return r.invalidateAll()
}

func (r *ReferenceTracker[T]) close() (invalidated int, wasClosed bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	invalidated, wasClosed = r.invalidateAll(), r.closed
	r.closed = true

	return invalidated, wasClosed
}

// invalidateAll resets all registered slots and empties the registry. It expects the mutex to be held.
func (r *ReferenceTracker[T]) invalidateAll() (invalidated int) {
	r.registry.forEach(func(entry slot[T]) {
		if entry.reset() {
			invalidated++
		}
	})
	r.registry.clear()

	r.counters.invalidated.Add(uint64(invalidated))

	return invalidated
}
