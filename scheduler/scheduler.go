// Package scheduler implements a single-threaded cooperative executor
// for state-machine tasks that suspend and re-wake themselves.
//
// A Step is polled to completion across possibly many calls: each call
// either finishes (PollReady) or suspends (PollPending), in which case
// it is responsible for arranging, via the Waker passed to it, for
// itself to be polled again. There is no preemption: a Step that never
// returns PollPending and never signals completion blocks Run forever,
// and a Step that wakes itself on every poll will monopolize the
// executor - both are accepted as intentional behavior.
package scheduler

import "sync"

// Poll is the result of a single Step.Poll call.
type Poll int

const (
	// PollPending indicates the task has not finished and has arranged
	// to be woken again.
	PollPending Poll = iota
	// PollReady indicates the task has finished; it will not be polled
	// again.
	PollReady
)

// Step is a resumable state machine. Poll advances it by one step,
// given a Waker it may use to request another poll.
type Step interface {
	Poll(w *Waker) Poll
}

// queueCapacity bounds the number of ready-task handles queued at
// once; a task woken more than once occupies one entry per wake.
const queueCapacity = 1024

type task struct {
	mu   sync.Mutex
	step Step
	ch   chan *task
}

// Waker lets a suspended Step request to be polled again by
// re-enqueueing its owning task onto the executor's ready queue.
type Waker struct {
	t *task
}

// Wake re-enqueues the owning task. Calling Wake more than once before
// the task is next polled enqueues it more than once; the task's
// per-task lock (see Executor.Run) ensures its polls remain serialized
// regardless.
func (w *Waker) Wake() {
	w.t.ch <- w.t
}

// Executor drives Steps to completion on a single goroutine.
type Executor struct {
	ch chan *task
}

// NewExecutor returns an Executor with a bounded, empty ready queue.
func NewExecutor() *Executor {
	return &Executor{ch: make(chan *task, queueCapacity)}
}

// Spawner returns a handle that can enqueue new tasks onto this
// Executor. Spawners are cheap to copy and may be shared across
// goroutines; submitting work through one after the owning Executor has
// stopped consuming is a programming error.
func (e *Executor) Spawner() *Spawner {
	return &Spawner{ch: e.ch}
}

// Run polls tasks in FIFO order of enqueueing until the ready queue is
// closed and drained. Exactly one goroutine may call Run.
//
// For each dequeued task handle, Run acquires that task's per-task
// lock (serializing concurrent polls of the same task that could
// otherwise arise from a self-wake racing with dequeue), builds a Waker
// bound to that task, and polls once. A PollPending result leaves the
// task's step installed and inert until some Waker fires for it again;
// a PollReady result drops the step, allowing it to be garbage
// collected.
func (e *Executor) Run() {
	for t := range e.ch {
		t.mu.Lock()
		step := t.step
		if step == nil {
			t.mu.Unlock()
			continue
		}
		w := &Waker{t: t}
		if step.Poll(w) == PollReady {
			t.step = nil
		}
		t.mu.Unlock()
	}
}

// Close signals that no further tasks will be spawned; once the queue
// drains, Run returns.
func (e *Executor) Close() {
	close(e.ch)
}

// Spawner enqueues new tasks onto an Executor's ready queue.
type Spawner struct {
	ch chan *task
}

// Spawn wraps step in a task handle and enqueues it once. The task
// becomes eligible to be polled by whichever goroutine calls
// Executor.Run.
func (s *Spawner) Spawn(step Step) {
	t := &task{step: step, ch: s.ch}
	t.ch <- t
}
