// Command stackdemo mirrors the Rust original's stack/src/main.rs:
// half the goroutines push a disjoint range of values, the other half
// pop until they've each drained numLoop values, and a final Pop is
// asserted to return empty.
package main

import (
	"fmt"
	"sync"

	"github.com/nbtaylor/concur4/stack"
)

const numLoop = 100_000
const numThreads = 4

func main() {
	s := stack.New[int]()
	var wg sync.WaitGroup

	for i := 0; i < numThreads; i++ {
		idx := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			if idx%2 == 0 {
				base := idx * numLoop
				for j := 0; j < numLoop; j++ {
					k := base + j
					s.Push(k)
					fmt.Printf("push: %d\n", k)
				}
				fmt.Printf("finished push: #%d\n", idx)
			} else {
				for j := 0; j < numLoop; j++ {
					for {
						if k, ok := s.Pop(); ok {
							fmt.Printf("pop: %d\n", k)
							break
						}
					}
				}
				fmt.Printf("finished pop: #%d\n", idx)
			}
		}()
	}

	wg.Wait()

	if _, ok := s.Pop(); ok {
		panic("stack should be empty after all pushes were drained")
	}
}
