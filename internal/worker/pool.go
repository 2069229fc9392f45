package worker

import (
	"context"
	"sync"
)

// Job represents a unit of work to be executed
type Job interface {
	Execute(ctx context.Context) Result
}

// Result represents the result of a job execution
type Result interface {
	GetError() error
}

// Pool runs jobs on a fixed set of workers. Both channels are bounded, so
// submission and result consumption must run concurrently: feed jobs from
// one goroutine, range over Results from another, and Close once the last
// job is in. Draining after submitting everything deadlocks as soon as the
// result buffer fills.
type Pool struct {
	workers   int
	jobQueue  chan Job
	results   chan Result
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
	doneOnce  sync.Once
}

// NewPool creates a pool of workers bound to ctx. Cancelling ctx stops the
// workers once their in-flight jobs return.
func NewPool(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)

	return &Pool{
		workers:  workers,
		jobQueue: make(chan Job, workers*2),
		results:  make(chan Result, workers*2),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start starts the worker pool
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker is the worker goroutine that processes jobs
func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			result := job.Execute(p.ctx)
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job for execution. It reports false when the pool
// context has been cancelled and the job was not accepted.
func (p *Pool) Submit(job Job) bool {
	if p.ctx.Err() != nil {
		return false
	}
	select {
	case <-p.ctx.Done():
		return false
	case p.jobQueue <- job:
		return true
	}
}

// Close signals that no further jobs will be submitted. The Results
// channel closes after every accepted job has finished.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.jobQueue)
		go func() {
			p.wg.Wait()
			p.finish()
		}()
	})
}

// Results streams completed job results. Consume it concurrently with
// submission; it is closed by Close once the workers drain the queue.
func (p *Pool) Results() <-chan Result {
	return p.results
}

func (p *Pool) finish() {
	p.doneOnce.Do(func() {
		p.cancel()
		close(p.results)
	})
}
