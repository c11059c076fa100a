package reftracker

import (
	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/iotaledger/hive.go/reftracker/logger"
	"github.com/iotaledger/hive.go/runtime/options"
)

// TrackedObject is an object that resets every registered reference to itself when it is destroyed.
type TrackedObject struct {
	id      uuid.UUID
	name    string
	state   atomic.Uint32
	tracker *ReferenceTracker[TrackedObject]
	handles *HandleTable[TrackedObject]

	optTrackerOptions []options.Option[ReferenceTracker[TrackedObject]]
	optLogger         *logger.Logger

	*logger.WrappedLogger
}

// NewTrackedObject creates a new TrackedObject together with its private ReferenceTracker.
func NewTrackedObject(opts ...options.Option[TrackedObject]) *TrackedObject {
	return options.Apply(&TrackedObject{
		id: uuid.New(),
	}, opts, func(o *TrackedObject) {
		if o.name == "" {
			o.name = o.id.String()
		}

		if o.optLogger != nil {
			objectLogger := o.optLogger.Named(o.name)
			o.WrappedLogger = logger.NewWrappedLogger(objectLogger)
			o.optTrackerOptions = append(o.optTrackerOptions, WithLogger[TrackedObject](objectLogger.Named("tracker")))
		} else {
			o.WrappedLogger = logger.NewWrappedLogger(nil)
		}

		o.tracker = New[TrackedObject](o.optTrackerOptions...)
	})
}

// ID returns the unique identifier of the object.
func (o *TrackedObject) ID() uuid.UUID {
	return o.id
}

// Name returns the name of the object.
func (o *TrackedObject) Name() string {
	return o.name
}

// State returns the lifecycle state of the object.
func (o *TrackedObject) State() State {
	return State(o.state.Load())
}

// Tracker returns the ReferenceTracker that belongs to the object.
func (o *TrackedObject) Tracker() *ReferenceTracker[TrackedObject] {
	return o.tracker
}

// AddReference registers the address of a pointer variable that refers to the object.
func (o *TrackedObject) AddReference(location **TrackedObject) {
	o.tracker.AddReference(location)
}

// RemoveReference unregisters the given pointer variable.
func (o *TrackedObject) RemoveReference(location **TrackedObject) {
	o.tracker.RemoveReference(location)
}

// AddRef registers a Ref that refers to the object.
func (o *TrackedObject) AddRef(ref *Ref[TrackedObject]) {
	o.tracker.AddRef(ref)
}

// RemoveRef unregisters the given Ref.
func (o *TrackedObject) RemoveRef(ref *Ref[TrackedObject]) {
	o.tracker.RemoveRef(ref)
}

// NewHandle returns a handle that resolves to the object until it is destroyed. It returns InvalidHandle if the object
// has no HandleTable or is not live anymore.
func (o *TrackedObject) NewHandle() Handle {
	if o.handles == nil || o.State() != StateLive {
		return InvalidHandle
	}

	handle := o.handles.Register(o)
	if o.State() != StateLive {
		// Destroy started while the handle was registered
		o.handles.Release(handle)

		return InvalidHandle
	}

	return handle
}

// Destroy resets all registered references and handles of the object to nil. Only the first call has an effect.
func (o *TrackedObject) Destroy() {
	if !o.state.CompareAndSwap(uint32(StateLive), uint32(StateDestroying)) {
		return
	}

	o.LogDebugw("destroying object", "id", o.id, "references", o.tracker.Size())

	o.tracker.ClearReferences()
	if o.handles != nil {
		o.handles.Invalidate(o)
	}
	o.tracker.Close()

	o.state.Store(uint32(StateDestroyed))

	o.LogDebugw("object destroyed", "id", o.id, "stats", o.tracker.Stats())
}
