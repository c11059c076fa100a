package lockpolicy

// NoLock is a Policy that does not synchronize anything.
type NoLock struct{}

// Lock does nothing.
func (NoLock) Lock() {}

// Unlock does nothing.
func (NoLock) Unlock() {}

// code contract - make sure the type implements the interface.
var _ Policy = NoLock{}
