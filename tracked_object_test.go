package reftracker_test

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iotaledger/hive.go/reftracker"
	"github.com/iotaledger/hive.go/reftracker/lockpolicy"
	"github.com/iotaledger/hive.go/reftracker/logger"
)

func TestTrackedObject_DestroyClearsAliases(t *testing.T) {
	obj := reftracker.NewTrackedObject()
	require.Equal(t, reftracker.StateLive, obj.State())

	ref1, ref2 := obj, obj
	obj.AddReference(&ref1)
	obj.AddReference(&ref2)

	obj.Destroy()

	require.Nil(t, ref1)
	require.Nil(t, ref2)
	require.Equal(t, reftracker.StateDestroyed, obj.State())
	require.True(t, obj.Tracker().IsClosed())
}

func TestTrackedObject_UnregisteredAliasKeepsValue(t *testing.T) {
	obj := reftracker.NewTrackedObject()

	ref1 := obj
	obj.AddReference(&ref1)
	obj.RemoveReference(&ref1)

	obj.Destroy()

	require.Same(t, obj, ref1)
	require.Zero(t, obj.Tracker().Stats().Invalidated)
}

func TestTrackedObject_DestroyTwice(t *testing.T) {
	obj := reftracker.NewTrackedObject(reftracker.WithTrackerOptions(
		reftracker.WithDeduplication[reftracker.TrackedObject](true),
	))
	require.True(t, obj.Tracker().IsDeduplicating())

	ref := obj
	obj.AddReference(&ref)
	obj.AddReference(&ref)
	obj.Destroy()
	require.Nil(t, ref)

	// registrations after the destruction are ignored and a second Destroy does not write anything
	ref = obj
	obj.AddReference(&ref)
	obj.Destroy()

	require.Same(t, obj, ref)
	require.Equal(t, reftracker.StateDestroyed, obj.State())
	require.EqualValues(t, 1, obj.Tracker().Stats().Invalidated)
	require.EqualValues(t, 1, obj.Tracker().Stats().Ignored)
}

func TestTrackedObject_Identity(t *testing.T) {
	named := reftracker.NewTrackedObject(reftracker.WithObjectName("engine"))
	require.Equal(t, "engine", named.Name())

	anonymous := reftracker.NewTrackedObject()
	require.Equal(t, anonymous.ID().String(), anonymous.Name())
	require.NotEqual(t, named.ID(), anonymous.ID())
}

func TestTrackedObject_Refs(t *testing.T) {
	obj := reftracker.NewTrackedObject(reftracker.WithTrackerOptions(
		reftracker.WithLockPolicy[reftracker.TrackedObject](lockpolicy.Mutex),
	))

	kept := reftracker.NewRef(obj)
	released := reftracker.NewRef(obj)
	obj.AddRef(kept)
	obj.AddRef(released)
	obj.RemoveRef(released)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()

		// readers only ever observe the object or nil
		for current := kept.Get(); current != nil; current = kept.Get() {
			assert.Same(t, obj, current)
		}
	}()

	obj.Destroy()
	wg.Wait()

	require.True(t, kept.IsNil())
	require.Same(t, obj, released.Get())
}

func TestTrackedObject_Handles(t *testing.T) {
	handles := reftracker.NewHandleTable[reftracker.TrackedObject]()

	obj := reftracker.NewTrackedObject(reftracker.WithHandleTable(handles))
	other := reftracker.NewTrackedObject(reftracker.WithHandleTable(handles))

	handle := obj.NewHandle()
	require.NotEqual(t, reftracker.InvalidHandle, handle)
	otherHandle := other.NewHandle()

	resolved, exists := handles.Lookup(handle)
	require.True(t, exists)
	require.Same(t, obj, resolved)

	obj.Destroy()

	_, exists = handles.Lookup(handle)
	require.False(t, exists)
	require.Equal(t, reftracker.InvalidHandle, obj.NewHandle())

	resolved, exists = handles.Lookup(otherHandle)
	require.True(t, exists)
	require.Same(t, other, resolved)

	withoutTable := reftracker.NewTrackedObject()
	require.Equal(t, reftracker.InvalidHandle, withoutTable.NewHandle())
}

func TestTrackedObject_Logging(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "objects.log")

	cfg := logger.DefaultConfig()
	cfg.Level = "debug"
	cfg.Encoding = "json"
	cfg.OutputPaths = []string{logFile}

	log, err := logger.NewRootLogger(cfg)
	require.NoError(t, err)

	obj := reftracker.NewTrackedObject(reftracker.WithObjectName("engine"), reftracker.WithObjectLogger(log))
	ref := obj
	obj.AddReference(&ref)
	obj.Destroy()
	require.Nil(t, ref)
	require.NoError(t, log.Sync())

	require.FileExists(t, logFile)
	content := readFile(t, logFile)
	require.Contains(t, content, `"logger":"engine"`)
	require.Contains(t, content, `"logger":"engine.tracker"`)
	require.Contains(t, content, "object destroyed")
}

func TestState_String(t *testing.T) {
	require.Equal(t, "Live", reftracker.StateLive.String())
	require.Equal(t, "Destroying", reftracker.StateDestroying.String())
	require.Equal(t, "Destroyed", reftracker.StateDestroyed.String())
	require.Equal(t, "Unknown", reftracker.State(7).String())
}
