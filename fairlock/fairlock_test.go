package fairlock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLockUnlockSingleThreaded(t *testing.T) {
	fl := New(0)

	g := fl.Lock(0)
	assert.Equal(t, 0, g.Value())
	g.SetValue(42)
	g.Unlock()

	g = fl.Lock(1)
	assert.Equal(t, 42, g.Value())
	g.Unlock()
}

func TestLockOutOfRangeSlotPanics(t *testing.T) {
	fl := New(0)
	assert.Panics(t, func() { fl.Lock(NumSlots) })
	assert.Panics(t, func() { fl.Lock(-1) })
}

const counterIters = 100_000

// TestMutualExclusionCounter is scenario S1: NumSlots/2 threads each with
// their own slot increment a shared, non-atomic counter inside the
// critical section. If any two critical sections ever overlapped, the
// final count would fall short of the expected total.
func TestMutualExclusionCounter(t *testing.T) {
	const numThreads = 4
	fl := New(0)
	var wg sync.WaitGroup

	for i := 0; i < numThreads; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			for j := 0; j < counterIters; j++ {
				g := fl.Lock(idx)
				g.SetValue(g.Value() + 1)
				g.Unlock()
			}
		}(i)
	}

	wg.Wait()

	g := fl.Lock(0)
	defer g.Unlock()
	assert.Equal(t, numThreads*counterIters, g.Value())
}

// TestBoundedWaiting is scenario 3 of the Testable Properties list: once a
// thread marks itself waiting, it must enter the critical section after
// at most NumSlots other threads do, for any interleaving. This test
// exercises the property under load rather than proving it, by checking
// that every slot, contending with all NumSlots slots at once, completes
// all of its acquisitions (a starved slot would keep the test from
// finishing).
func TestBoundedWaiting(t *testing.T) {
	fl := New(0)
	var wg sync.WaitGroup
	entries := make([]int, NumSlots)
	var mu sync.Mutex

	for i := 0; i < NumSlots; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			for j := 0; j < 2000; j++ {
				g := fl.Lock(idx)
				mu.Lock()
				entries[idx]++
				mu.Unlock()
				g.Unlock()
			}
		}(i)
	}

	wg.Wait()

	for i, n := range entries {
		assert.Equal(t, 2000, n, "slot %d did not complete all acquisitions", i)
	}
}

func BenchmarkFairLock(b *testing.B) {
	fl := New(0)
	const numThreads = NumSlots
	var wg sync.WaitGroup
	itersPerThread := b.N/numThreads + 1

	for i := 0; i < numThreads; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			for j := 0; j < itersPerThread; j++ {
				g := fl.Lock(idx)
				g.SetValue(g.Value() + 1)
				g.Unlock()
			}
		}(i)
	}

	wg.Wait()
}
