package lockpolicy

import (
	"time"

	"github.com/sasha-s/go-deadlock"
)

// DeadlockMutex is a mutex that detects lock-order inversions and waits that exceed the configured timeout.
type DeadlockMutex = deadlock.Mutex

func init() {
	deadlock.Opts.DeadlockTimeout = 20 * time.Second
}

// SetDeadlockTimeout changes the duration after which a waiting DeadlockMutex is reported (0 disables the check).
func SetDeadlockTimeout(timeout time.Duration) {
	deadlock.Opts.DeadlockTimeout = timeout
}

// code contract - make sure the type implements the interface.
var _ Policy = &DeadlockMutex{}
