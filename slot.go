package reftracker

// slot is a caller-owned location that holds a reference to a tracked object and that can be reset by a tracker.
//
// Implementations are comparable by the identity of the location, never by the reference it currently holds.
type slot[T any] interface {
	// reset overwrites the location with nil and returns true if a location was written.
	reset() (written bool)
}

// locationSlot is the address of a plain pointer variable.
type locationSlot[T any] struct {
	location **T
}

func (l locationSlot[T]) reset() (written bool) {
	if l.location == nil {
		return false
	}

	*l.location = nil

	return true
}

// refSlot is a Ref cell that is written atomically.
type refSlot[T any] struct {
	ref *Ref[T]
}

func (r refSlot[T]) reset() (written bool) {
	if r.ref == nil {
		return false
	}

	r.ref.Set(nil)

	return true
}

// code contract - make sure the types implement the interface.
var (
	_ slot[int] = locationSlot[int]{}
	_ slot[int] = refSlot[int]{}
)
