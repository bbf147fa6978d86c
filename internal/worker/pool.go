// Package worker runs independent lint jobs on a bounded pool and
// rate-limits callers of the HTTP service.
package worker

import (
	"context"
	"sync"
)

// Job is one independent unit of work
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is what a job produces
type Result interface {
	GetError() error
}

// Pool runs a batch of jobs on a fixed number of goroutines
type Pool struct {
	workers int
	ctx     context.Context
}

// NewPool creates a pool bound to ctx; workers below 1 become 1
func NewPool(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	return &Pool{
		workers: workers,
		ctx:     ctx,
	}
}

// Run executes every job and returns one slot per job, in job order.
// Once ctx is cancelled no further job starts; the slots of jobs that
// never started stay nil. Jobs already running see the cancelled ctx.
func (p *Pool) Run(jobs []Job) []Result {
	results := make([]Result, len(jobs))
	queue := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range queue {
				results[i] = jobs[i].Execute(p.ctx)
			}
		}()
	}

feed:
	for i := range jobs {
		if p.ctx.Err() != nil {
			break
		}
		select {
		case <-p.ctx.Done():
			break feed
		case queue <- i:
		}
	}
	close(queue)

	wg.Wait()
	return results
}
