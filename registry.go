package reftracker

import (
	"github.com/emirpasic/gods/lists/arraylist"

	"github.com/iotaledger/hive.go/ds"
)

// registry is the collection that stores the slots of a ReferenceTracker. It is not thread-safe.
type registry[T any] interface {
	// add stores the slot and returns true if a new entry was created.
	add(entry slot[T]) (added bool)

	// remove deletes one entry that equals the slot and returns true if an entry was found.
	remove(entry slot[T]) (removed bool)

	// has returns true if at least one entry equals the slot.
	has(entry slot[T]) bool

	// forEach calls the consumer for every entry in insertion order.
	forEach(consumer func(entry slot[T]))

	// clear removes all entries.
	clear()

	// size returns the number of entries.
	size() int
}

// region orderedRegistry //////////////////////////////////////////////////////////////////////////////////////////////

// orderedRegistry keeps the slots in insertion order and stores a separate entry for every registration.
type orderedRegistry[T any] struct {
	entries *arraylist.List
}

func newOrderedRegistry[T any]() *orderedRegistry[T] {
	return &orderedRegistry[T]{
		entries: arraylist.New(),
	}
}

func (o *orderedRegistry[T]) add(entry slot[T]) (added bool) {
	o.entries.Add(entry)

	return true
}

func (o *orderedRegistry[T]) remove(entry slot[T]) (removed bool) {
	index := o.entries.IndexOf(entry)
	if index < 0 {
		return false
	}

	o.entries.Remove(index)

	return true
}

func (o *orderedRegistry[T]) has(entry slot[T]) bool {
	return o.entries.Contains(entry)
}

func (o *orderedRegistry[T]) forEach(consumer func(entry slot[T])) {
	o.entries.Each(func(_ int, value interface{}) {
		consumer(value.(slot[T]))
	})
}

func (o *orderedRegistry[T]) clear() {
	o.entries.Clear()
}

func (o *orderedRegistry[T]) size() int {
	return o.entries.Size()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region dedupRegistry ////////////////////////////////////////////////////////////////////////////////////////////////

// dedupRegistry stores every distinct slot at most once.
type dedupRegistry[T any] struct {
	entries ds.Set[slot[T]]
}

func newDedupRegistry[T any]() *dedupRegistry[T] {
	return &dedupRegistry[T]{
		entries: ds.NewSet[slot[T]](),
	}
}

func (d *dedupRegistry[T]) add(entry slot[T]) (added bool) {
	return d.entries.Add(entry)
}

func (d *dedupRegistry[T]) remove(entry slot[T]) (removed bool) {
	return d.entries.Delete(entry)
}

func (d *dedupRegistry[T]) has(entry slot[T]) bool {
	return d.entries.Has(entry)
}

func (d *dedupRegistry[T]) forEach(consumer func(entry slot[T])) {
	d.entries.Range(consumer)
}

func (d *dedupRegistry[T]) clear() {
	d.entries.Clear()
}

func (d *dedupRegistry[T]) size() int {
	return d.entries.Size()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// code contract - make sure the types implement the interface.
var (
	_ registry[int] = &orderedRegistry[int]{}
	_ registry[int] = &dedupRegistry[int]{}
)
