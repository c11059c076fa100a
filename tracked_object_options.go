package reftracker

import (
	"github.com/iotaledger/hive.go/reftracker/logger"
	"github.com/iotaledger/hive.go/runtime/options"
)

// WithTrackerOptions forwards the given options to the ReferenceTracker of the object.
func WithTrackerOptions(opts ...options.Option[ReferenceTracker[TrackedObject]]) options.Option[TrackedObject] {
	return func(o *TrackedObject) {
		o.optTrackerOptions = append(o.optTrackerOptions, opts...)
	}
}

// WithHandleTable registers the object in the given HandleTable when handles are requested.
func WithHandleTable(handles *HandleTable[TrackedObject]) options.Option[TrackedObject] {
	return func(o *TrackedObject) {
		o.handles = handles
	}
}

// WithObjectName sets a human-readable name that is used in log messages.
func WithObjectName(name string) options.Option[TrackedObject] {
	return func(o *TrackedObject) {
		o.name = name
	}
}

// WithObjectLogger sets the logger of the object (its tracker logs to a child logger).
func WithObjectLogger(logger *logger.Logger) options.Option[TrackedObject] {
	return func(o *TrackedObject) {
		o.optLogger = logger
	}
}
