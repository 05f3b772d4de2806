// Command schedulerdemo mirrors the Rust original's
// src/bin/c5_scheduling.rs: a three-state task prints "Hello, " then
// "World!\n", self-waking between each state, for a total of three
// polls.
package main

import (
	"fmt"

	"github.com/nbtaylor/concur4/scheduler"
)

type state int

const (
	stateHello state = iota
	stateWorld
	stateEnd
)

type hello struct {
	state state
	done  chan struct{}
}

func (h *hello) Poll(w *scheduler.Waker) scheduler.Poll {
	switch h.state {
	case stateHello:
		fmt.Print("Hello, ")
		h.state = stateWorld
		w.Wake()
		return scheduler.PollPending
	case stateWorld:
		fmt.Print("World!\n")
		h.state = stateEnd
		w.Wake()
		return scheduler.PollPending
	default:
		close(h.done)
		return scheduler.PollReady
	}
}

func main() {
	ex := scheduler.NewExecutor()
	done := make(chan struct{})
	ex.Spawner().Spawn(&hello{done: done})

	go ex.Run()
	<-done
	ex.Close()
}
