package reftracker

// State is the lifecycle state of a TrackedObject.
type State uint32

const (
	// StateLive is the state of an object that accepts registrations.
	StateLive State = iota

	// StateDestroying is the state of an object whose references are being invalidated.
	StateDestroying

	// StateDestroyed is the state of an object whose references were all reset to nil.
	StateDestroyed
)

// String returns a human-readable version of the State.
func (s State) String() string {
	switch s {
	case StateLive:
		return "Live"
	case StateDestroying:
		return "Destroying"
	case StateDestroyed:
		return "Destroyed"
	default:
		return "Unknown"
	}
}
