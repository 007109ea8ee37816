package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	t.Parallel()
	km := newKeyedMutex()

	const workers = 16
	var (
		inSection int
		maxSeen   int
		mu        sync.Mutex
		wg        sync.WaitGroup
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.lock("1/2024-06-01")
			defer unlock()

			mu.Lock()
			inSection++
			if inSection > maxSeen {
				maxSeen = inSection
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inSection--
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Equal(t, 1, maxSeen, "only one holder per key at a time")
	require.Empty(t, km.locks, "entries are dropped after the last release")
}

func TestKeyedMutex_IndependentKeys(t *testing.T) {
	t.Parallel()
	km := newKeyedMutex()

	unlockA := km.lock("1/2024-06-01")
	defer unlockA()

	acquired := make(chan struct{})
	go func() {
		unlockB := km.lock("2/2024-06-01")
		defer unlockB()
		close(acquired)
	}()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("lock on a different key must not block")
	}
}
