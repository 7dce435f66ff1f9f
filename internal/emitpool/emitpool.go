// Package emitpool runs artifact-emission jobs on a fixed set of workers.
// Jobs are grouped into rooms; a room collects the errors of its jobs so a
// batch caller gets every failure, not just the first.
package emitpool

import (
	"runtime"
	"sync"
)

// Task is one emission job.
type Task func() error

// Config configures a Pool.
type Config struct {
	WorkerCount  int
	GlobalBuffer int
}

// Pool is a shared worker pool. One pool serves a whole build session.
type Pool struct {
	config    Config
	taskQueue chan task
	closeOnce sync.Once
}

// Room groups the tasks of one batch and collects their errors.
type Room struct {
	errChan chan error
	wg      sync.WaitGroup
	pool    *Pool
}

type task struct {
	run  Task
	room *Room
}

// NewPool starts the workers. Zero values pick defaults sized for
// I/O-bound emission work.
func NewPool(config Config) *Pool {
	if config.WorkerCount < 1 {
		config.WorkerCount = runtime.NumCPU() * 3
	}
	if config.GlobalBuffer < 1 {
		config.GlobalBuffer = 10000
	}

	p := &Pool{
		config:    config,
		taskQueue: make(chan task, config.GlobalBuffer),
	}

	for i := 0; i < config.WorkerCount; i++ {
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	for t := range p.taskQueue {
		t.room.errChan <- t.run()
		t.room.wg.Done()
	}
}

// CreateRoom returns a room buffered for up to size tasks.
func (p *Pool) CreateRoom(size int) *Room {
	return &Room{
		errChan: make(chan error, size),
		pool:    p,
	}
}

// Close stops the workers once all queued tasks drained. Rooms must not
// submit after Close.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.taskQueue)
	})
}

// Submit queues a task. Blocks when the global buffer is full.
func (r *Room) Submit(job Task) {
	r.wg.Add(1)
	r.pool.taskQueue <- task{run: job, room: r}
}

// Wait blocks until every submitted task finished and returns the non-nil
// errors in completion order.
func (r *Room) Wait() []error {
	go func() {
		r.wg.Wait()
		close(r.errChan)
	}()

	var errs []error
	for err := range r.errChan {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
