package reftracker

import (
	"fmt"

	"go.uber.org/atomic"
)

// Stats is a snapshot of the counters of a ReferenceTracker.
type Stats struct {
	// Added is the number of registrations that created a new entry.
	Added uint64
	// Deduplicated is the number of registrations that were absorbed by an existing entry.
	Deduplicated uint64
	// Removed is the number of entries that were removed explicitly.
	Removed uint64
	// Invalidated is the number of slots that were reset to nil.
	Invalidated uint64
	// Ignored is the number of registrations that arrived after the tracker was closed.
	Ignored uint64
}

// String returns a human-readable version of the Stats.
func (s Stats) String() string {
	return fmt.Sprintf("Stats{Added: %d, Deduplicated: %d, Removed: %d, Invalidated: %d, Ignored: %d}",
		s.Added, s.Deduplicated, s.Removed, s.Invalidated, s.Ignored)
}

// counters holds the live counters of a tracker.
type counters struct {
	added        atomic.Uint64
	deduplicated atomic.Uint64
	removed      atomic.Uint64
	invalidated  atomic.Uint64
	ignored      atomic.Uint64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Added:        c.added.Load(),
		Deduplicated: c.deduplicated.Load(),
		Removed:      c.removed.Load(),
		Invalidated:  c.invalidated.Load(),
		Ignored:      c.ignored.Load(),
	}
}
