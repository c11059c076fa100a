package reftracker_test

import (
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/hive.go/reftracker"
	"github.com/iotaledger/hive.go/reftracker/lockpolicy"
)

func readFile(t *testing.T, path string) string {
	content, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(content)
}

func TestHandleTable_RegisterLookupRelease(t *testing.T) {
	table := reftracker.NewHandleTable[node]()
	first, second := &node{value: 1}, &node{value: 2}

	firstHandle := table.Register(first)
	secondHandle := table.Register(second)
	require.NotEqual(t, reftracker.InvalidHandle, firstHandle)
	require.NotEqual(t, firstHandle, secondHandle)
	require.Equal(t, 2, table.Size())

	value, exists := table.Lookup(secondHandle)
	require.True(t, exists)
	require.Same(t, second, value)

	require.True(t, table.Release(firstHandle))
	require.False(t, table.Release(firstHandle))
	_, exists = table.Lookup(firstHandle)
	require.False(t, exists)

	// handles are never reused
	require.Greater(t, table.Register(first), secondHandle)
}

func TestHandleTable_Invalidate(t *testing.T) {
	table := reftracker.NewHandleTable[node]()
	target, other := &node{value: 1}, &node{value: 2}

	handles := []reftracker.Handle{table.Register(target), table.Register(target), table.Register(target)}
	otherHandle := table.Register(other)

	require.Equal(t, 3, table.Invalidate(target))
	require.Equal(t, 0, table.Invalidate(target))
	for _, handle := range handles {
		_, exists := table.Lookup(handle)
		require.False(t, exists)
	}

	value, exists := table.Lookup(otherHandle)
	require.True(t, exists)
	require.Same(t, other, value)

	require.Equal(t, 1, table.InvalidateAll())
	require.Equal(t, 0, table.InvalidateAll())
	require.Equal(t, 0, table.Size())
}

func TestHandleTable_Concurrent(t *testing.T) {
	table := reftracker.NewHandleTable[node](reftracker.WithHandleLockPolicy[node](lockpolicy.Mutex))
	target := &node{value: 1}

	var wg sync.WaitGroup
	handles := make(chan reftracker.Handle, 1000)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for j := 0; j < 100; j++ {
				handles <- table.Register(target)
			}
		}()
	}
	wg.Wait()
	close(handles)

	seen := make(map[reftracker.Handle]struct{})
	for handle := range handles {
		seen[handle] = struct{}{}
	}
	require.Len(t, seen, 1000)
	require.Equal(t, 1000, table.Invalidate(target))
}
