// Package lockpolicy provides the synchronization strategies that can be injected into the reference trackers.
//
// A Policy is selected by its Kind when a tracker is created: None yields the single-threaded semantics, Mutex and
// Deadlock make every tracker operation mutually exclusive.
package lockpolicy

import (
	"strings"
	"sync"

	"github.com/iotaledger/hive.go/ierrors"
)

// ErrUnknownKind is returned if a lock policy name can not be resolved.
var ErrUnknownKind = ierrors.New("unknown lock policy")

// Policy is the lock that guards a single tracker.
type Policy = sync.Locker

// Kind identifies a lock policy.
type Kind uint8

const (
	// None disables synchronization.
	None Kind = iota

	// Mutex uses a sync.Mutex.
	Mutex

	// Deadlock uses a mutex that reports lock-order violations and long waits.
	Deadlock
)

// New creates a fresh lock of the given Kind.
func New(kind Kind) Policy {
	switch kind {
	case Mutex:
		return new(sync.Mutex)
	case Deadlock:
		return new(DeadlockMutex)
	default:
		return NoLock{}
	}
}

// ParseKind resolves the name of a lock policy (case-insensitive).
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none", "noop":
		return None, nil
	case "mutex":
		return Mutex, nil
	case "deadlock":
		return Deadlock, nil
	default:
		return None, ierrors.Wrapf(ErrUnknownKind, "'%s'", name)
	}
}

// IsSynchronized returns true if the Kind provides mutual exclusion.
func (k Kind) IsSynchronized() bool {
	return k != None
}

// String returns the name of the Kind.
func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Mutex:
		return "mutex"
	case Deadlock:
		return "deadlock"
	default:
		return "unknown"
	}
}
