// Command stmdemo mirrors the Rust original's src/bin/c7_stm.rs: eight
// dining philosophers repeatedly acquire a pair of adjacent chopstick
// stripes and release them, while an observer samples all eight
// chopsticks and panics if it ever observes an odd number held (which
// would mean a non-atomic acquire was visible).
package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/nbtaylor/concur4/stm"
)

const numPhilosophers = 8
const itersPerPhilosopher = 500_000
const observerSamples = 10_000

func word(b byte) stm.Word {
	var w stm.Word
	w[0] = b
	return w
}

func philosopher(s *stm.STM, idx int) {
	left := stm.StripeSize * idx
	right := stm.StripeSize * ((idx + 1) % numPhilosophers)

	for i := 0; i < itersPerPhilosopher; i++ {
		for {
			acquired, ok := stm.WriteTransaction(s, func(tr *stm.WriteTrans) stm.Result[bool] {
				f1, ok1 := tr.Load(left)
				f2, ok2 := tr.Load(right)
				if !ok1 || !ok2 {
					return stm.Retry[bool]()
				}
				if f1[0] == 0 && f2[0] == 0 {
					tr.Store(left, word(1))
					tr.Store(right, word(1))
					return stm.Ok(true)
				}
				return stm.Ok(false)
			})
			if !ok {
				continue
			}
			if acquired {
				break
			}
		}

		stm.WriteTransaction(s, func(tr *stm.WriteTrans) stm.Result[struct{}] {
			_, ok1 := tr.Load(left)
			_, ok2 := tr.Load(right)
			if !ok1 || !ok2 {
				return stm.Retry[struct{}]()
			}
			tr.Store(left, word(0))
			tr.Store(right, word(0))
			return stm.Ok(struct{}{})
		})
	}
}

func observer(s *stm.STM) {
	for i := 0; i < observerSamples; i++ {
		chopsticks, ok := stm.ReadTransaction(s, func(tr *stm.ReadTrans) stm.Result[[numPhilosophers]byte] {
			var v [numPhilosophers]byte
			for j := 0; j < numPhilosophers; j++ {
				w, ok := tr.Load(stm.StripeSize * j)
				if !ok {
					return stm.Retry[[numPhilosophers]byte]()
				}
				v[j] = w[0]
			}
			return stm.Ok(v)
		})
		if !ok {
			continue
		}

		fmt.Println(chopsticks)

		n := 0
		for _, c := range chopsticks {
			if c == 1 {
				n++
			}
		}
		if n&1 != 0 {
			panic("inconsistent: odd number of chopsticks held")
		}

		time.Sleep(100 * time.Microsecond)
	}
}

func main() {
	s := stm.New()
	var wg sync.WaitGroup

	for i := 0; i < numPhilosophers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			philosopher(s, idx)
		}(i)
	}

	var obsWg sync.WaitGroup
	obsWg.Add(1)
	go func() {
		defer obsWg.Done()
		observer(s)
	}()

	wg.Wait()
	obsWg.Wait()
}
