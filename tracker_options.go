package reftracker

import (
	"github.com/iotaledger/hive.go/reftracker/lockpolicy"
	"github.com/iotaledger/hive.go/reftracker/logger"
	"github.com/iotaledger/hive.go/runtime/options"
)

// WithDeduplication configures the tracker to store every distinct slot at most once.
func WithDeduplication[T any](deduplicate bool) options.Option[ReferenceTracker[T]] {
	return func(r *ReferenceTracker[T]) {
		r.optDeduplicate = deduplicate
	}
}

// WithLockPolicy configures the lock that guards the operations of the tracker.
func WithLockPolicy[T any](kind lockpolicy.Kind) options.Option[ReferenceTracker[T]] {
	return func(r *ReferenceTracker[T]) {
		r.optLockPolicy = kind
	}
}

// WithLogger attaches a logger that reports the bookkeeping of the tracker at debug level.
func WithLogger[T any](logger *logger.Logger) options.Option[ReferenceTracker[T]] {
	return func(r *ReferenceTracker[T]) {
		r.optLogger = logger
	}
}
