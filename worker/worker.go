// Package worker runs CPU intensive tasks, such as stepping many agents, on a fixed set of
// goroutines.
package worker

import (
	"runtime"
	"sync"

	"github.com/getsentry/sentry-go"
	"go.uber.org/atomic"
)

// Pool is a fixed set of goroutines consuming a shared task queue.
type Pool struct {
	queue  chan func()
	closed atomic.Bool
	wg     sync.WaitGroup
}

// New starts a pool of n workers. If n is not positive, one worker per CPU is started.
func New(n int) *Pool {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	p := &Pool{queue: make(chan func(), n)}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for f := range p.queue {
		p.run(f)
	}
}

// run executes a single task. A panicking task is reported to sentry and does not take the worker
// down with it.
func (p *Pool) run(f func()) {
	defer sentry.Recover()
	f()
}

// Submit queues f to be run by a worker, blocking while the queue is full. Submit returns false
// if the pool was closed.
func (p *Pool) Submit(f func()) bool {
	if p.closed.Load() {
		return false
	}
	p.queue <- f
	return true
}

// Close stops accepting tasks and waits for the queued ones to finish. It must not be called
// concurrently with Submit.
func (p *Pool) Close() {
	if !p.closed.CompareAndSwap(false, true) {
		return
	}
	close(p.queue)
	p.wg.Wait()
}
