// Command fairlockdemo exercises fairlock.FairLock the way the Rust
// original's src/bin/c7_fairlock.rs does: NumSlots threads each take
// the lock under their own slot and increment a shared counter
// numLoop times, then the final count is printed against its expected
// value.
package main

import (
	"fmt"
	"sync"

	"github.com/nbtaylor/concur4/fairlock"
)

const numLoop = 100_000

func main() {
	lock := fairlock.New(0)
	var wg sync.WaitGroup

	for i := 0; i < fairlock.NumSlots; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			for j := 0; j < numLoop; j++ {
				g := lock.Lock(idx)
				g.SetValue(g.Value() + 1)
				g.Unlock()
			}
		}(i)
	}

	wg.Wait()

	g := lock.Lock(0)
	defer g.Unlock()
	fmt.Printf("COUNT = %d (expected = %d)\n", g.Value(), numLoop*fairlock.NumSlots)
}
