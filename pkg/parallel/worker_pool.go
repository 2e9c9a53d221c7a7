// Package parallel runs independent per-file work on a bounded pool of
// goroutines while keeping results in submission order.
package parallel

import (
	"context"
	"errors"
	"sync"
)

// ErrPoolClosed is returned by Submit once Close has been called.
var ErrPoolClosed = errors.New("worker pool closed")

// WorkerPool runs submitted tasks on a fixed set of goroutines. A panic in
// a task is recovered and handed to the pool's panic handler; the worker
// keeps running.
type WorkerPool struct {
	size    int
	tasks   chan func()
	wg      sync.WaitGroup
	onPanic func(any)

	mu     sync.RWMutex // guards closed and the close of tasks
	closed bool
	once   sync.Once
}

// NewWorkerPool starts size workers; sizes below 1 start one. onPanic may
// be nil.
func NewWorkerPool(size int, onPanic func(any)) *WorkerPool {
	if size < 1 {
		size = 1
	}
	p := &WorkerPool{
		size:    size,
		tasks:   make(chan func(), size),
		onPanic: onPanic,
	}
	p.wg.Add(size)
	for i := 0; i < size; i++ {
		go p.work()
	}
	return p
}

// Size returns the number of workers.
func (p *WorkerPool) Size() int {
	return p.size
}

func (p *WorkerPool) work() {
	defer p.wg.Done()
	for task := range p.tasks {
		p.run(task)
	}
}

func (p *WorkerPool) run(task func()) {
	defer func() {
		if r := recover(); r != nil && p.onPanic != nil {
			p.onPanic(r)
		}
	}()
	task()
}

// Submit queues task, blocking while every worker is busy. It returns
// ctx.Err() if ctx ends first and ErrPoolClosed after Close.
func (p *WorkerPool) Submit(ctx context.Context, task func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}
	select {
	case p.tasks <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting tasks and waits for queued ones to finish. Calling
// it again only waits.
func (p *WorkerPool) Close() {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.tasks)
		p.mu.Unlock()
	})
	p.wg.Wait()
}
