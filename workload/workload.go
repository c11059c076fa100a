// Package workload drives concurrent registrations against a ReferenceTracker and verifies that the outcome equals a
// sequential execution of the same operations.
package workload

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/lo"
	"github.com/iotaledger/hive.go/reftracker"
)

var (
	// ErrNotLinearizable is returned if the tracker ends up in a state that no sequential execution produces.
	ErrNotLinearizable = ierrors.New("registry state does not match a sequential execution")
	// ErrIncompleteInvalidation is returned if a registered slot still holds a reference after the tracker was closed.
	ErrIncompleteInvalidation = ierrors.New("registered slot was not invalidated")
	// ErrUnexpectedWrite is returned if the tracker wrote to a slot that was not registered anymore.
	ErrUnexpectedWrite = ierrors.New("unregistered slot was written")
)

// OperationType is the kind of an Operation.
type OperationType uint8

const (
	// Add registers a slot.
	Add OperationType = iota
	// Remove unregisters a slot.
	Remove
)

// String returns a human-readable version of the OperationType.
func (o OperationType) String() string {
	return lo.Cond(o == Add, "Add", "Remove")
}

// Operation is a single registry mutation of a worker.
type Operation struct {
	Type OperationType
	Slot int
}

// Report summarizes a workload run.
type Report struct {
	Adds        int
	Removes     int
	Registered  int
	Invalidated uint64
	Duration    time.Duration
}

// Run executes the configured workload against the tracker and closes it afterwards.
//
// Every worker owns a disjoint subset of the slots, so the operations of different workers commute and the final
// state of the tracker is the same for every linearization. The run fails if the tracker state or the invalidation
// outcome diverges from replaying the operations sequentially.
func Run[T any](ctx context.Context, tracker *reftracker.ReferenceTracker[T], target *T, cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Workers > 1 && !tracker.LockPolicy().IsSynchronized() {
		return nil, ierrors.Wrapf(ErrInvalidConfig, "%d workers need a synchronized lock policy, got '%s'", cfg.Workers, tracker.LockPolicy())
	}

	pool, err := ants.NewPool(cfg.Workers, ants.WithPreAlloc(true))
	if err != nil {
		return nil, ierrors.Wrap(err, "failed to create worker pool")
	}
	defer pool.Release()

	slots := make([]*T, cfg.Slots)
	for i := range slots {
		slots[i] = target
	}

	plans := Plan(cfg)
	report := &Report{}
	for _, plan := range plans {
		for _, operation := range plan {
			if operation.Type == Add {
				report.Adds++
			} else {
				report.Removes++
			}
		}
	}

	start := time.Now()

	var wg sync.WaitGroup
	for _, plan := range plans {
		if err := ctx.Err(); err != nil {
			wg.Wait()

			return nil, ierrors.Wrap(err, "workload aborted")
		}

		operations := plan
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()

			for _, operation := range operations {
				if operation.Type == Add {
					tracker.AddReference(&slots[operation.Slot])
				} else {
					tracker.RemoveReference(&slots[operation.Slot])
				}
			}
		}); err != nil {
			wg.Done()
			wg.Wait()

			return nil, ierrors.Wrap(err, "failed to submit worker")
		}
	}
	wg.Wait()

	report.Duration = time.Since(start)

	expected := Replay(plans, cfg.Slots, tracker.IsDeduplicating())
	report.Registered = lo.Sum(expected...)

	if err := verifyRegistry(tracker, slots, expected); err != nil {
		return report, err
	}

	invalidatedBefore := tracker.Stats().Invalidated
	tracker.Close()
	report.Invalidated = tracker.Stats().Invalidated - invalidatedBefore

	return report, verifyInvalidation(slots, expected, target)
}

// Plan generates the operations of every worker. Worker w only touches the slots s with s % workers == w.
func Plan(cfg Config) [][]Operation {
	random := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // reproducible test data

	plans := make([][]Operation, cfg.Workers)
	for worker := range plans {
		ownedSlots := make([]int, 0, cfg.Slots/cfg.Workers+1)
		for slot := worker; slot < cfg.Slots; slot += cfg.Workers {
			ownedSlots = append(ownedSlots, slot)
		}

		plans[worker] = make([]Operation, cfg.Operations)
		for i := range plans[worker] {
			plans[worker][i] = Operation{
				Type: lo.Cond(random.Intn(3) == 0, Remove, Add),
				Slot: ownedSlots[random.Intn(len(ownedSlots))],
			}
		}
	}

	return plans
}

// Replay executes the operations sequentially and returns the number of registry entries of every slot.
func Replay(plans [][]Operation, slots int, deduplicate bool) []int {
	entries := make([]int, slots)
	for _, plan := range plans {
		for _, operation := range plan {
			switch {
			case operation.Type == Add && deduplicate:
				entries[operation.Slot] = 1
			case operation.Type == Add:
				entries[operation.Slot]++
			case entries[operation.Slot] > 0 && deduplicate:
				entries[operation.Slot] = 0
			case entries[operation.Slot] > 0:
				entries[operation.Slot]--
			}
		}
	}

	return entries
}

func verifyRegistry[T any](tracker *reftracker.ReferenceTracker[T], slots []*T, expected []int) error {
	if size := tracker.Size(); size != lo.Sum(expected...) {
		return ierrors.Wrapf(ErrNotLinearizable, "tracker holds %d entries, expected %d", size, lo.Sum(expected...))
	}

	for i := range slots {
		if registered := tracker.HasReference(&slots[i]); registered != (expected[i] > 0) {
			return ierrors.Wrapf(ErrNotLinearizable, "slot %d registered=%t, expected %d entries", i, registered, expected[i])
		}
	}

	return nil
}

func verifyInvalidation[T any](slots []*T, expected []int, target *T) error {
	for i, slot := range slots {
		switch {
		case expected[i] > 0 && slot != nil:
			return ierrors.Wrapf(ErrIncompleteInvalidation, "slot %d", i)
		case expected[i] == 0 && slot != target:
			return ierrors.Wrapf(ErrUnexpectedWrite, "slot %d", i)
		}
	}

	return nil
}
