package worker

import (
	"context"
	"errors"
	"log"
	"runtime"
	"sync"
)

// ErrQueueFull is returned by Submit when every worker is busy and the
// backlog is at capacity. Callers treat it as "try again later".
var ErrQueueFull = errors.New("worker queue full")

type Task func(ctx context.Context) error

// Pool runs submitted tasks on a fixed set of goroutines. The scan use case
// feeds it image-extraction jobs so provider latency never blocks handlers.
type Pool struct {
	jobs chan Task
	quit chan struct{}
	wg   sync.WaitGroup
	size int
}

func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pool{
		jobs: make(chan Task, workers*4),
		quit: make(chan struct{}),
		size: workers,
	}
}

func (p *Pool) Start(ctx context.Context) {
	p.wg.Add(p.size)
	for i := 0; i < p.size; i++ {
		go p.work(ctx, i)
	}
}

func (p *Pool) work(ctx context.Context, id int) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.quit:
			return
		case task := <-p.jobs:
			if task == nil {
				continue
			}
			if err := task(ctx); err != nil {
				log.Printf("worker %d task error: %v", id, err)
			}
		}
	}
}

// Stop signals the workers and waits for in-flight tasks to finish.
// Queued tasks that no worker picked up yet are abandoned.
func (p *Pool) Stop() {
	close(p.quit)
	p.wg.Wait()
}

// Submit enqueues a task without blocking. A saturated backlog drops the
// task and reports ErrQueueFull rather than stalling the caller.
func (p *Pool) Submit(task Task) error {
	if task == nil {
		return errors.New("nil task")
	}
	select {
	case p.jobs <- task:
		return nil
	default:
		return ErrQueueFull
	}
}
