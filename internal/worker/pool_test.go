package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type stepResult struct {
	index int
	err   error
}

func (r *stepResult) GetError() error {
	return r.err
}

// stepJob records how many steps run at once
type stepJob struct {
	index   int
	delay   time.Duration
	fail    bool
	running *int32
	peak    *int32
	ran     *int32
}

func (j *stepJob) Execute(ctx context.Context) Result {
	if j.ran != nil {
		atomic.AddInt32(j.ran, 1)
	}
	if j.running != nil {
		now := atomic.AddInt32(j.running, 1)
		defer atomic.AddInt32(j.running, -1)
		for {
			peak := atomic.LoadInt32(j.peak)
			if now <= peak || atomic.CompareAndSwapInt32(j.peak, peak, now) {
				break
			}
		}
	}

	if j.delay > 0 {
		select {
		case <-time.After(j.delay):
		case <-ctx.Done():
			return &stepResult{index: j.index, err: ctx.Err()}
		}
	}
	if j.fail {
		return &stepResult{index: j.index, err: errors.New("step failed")}
	}
	return &stepResult{index: j.index}
}

func TestNewPool(t *testing.T) {
	tests := []struct {
		workers  int
		expected int
		desc     string
	}{
		{4, 4, "positive"},
		{0, 1, "zero"},
		{-3, 1, "negative"},
	}

	for _, tt := range tests {
		if p := NewPool(context.Background(), tt.workers); p.workers != tt.expected {
			t.Errorf("%s: expected %d workers, got %d", tt.desc, tt.expected, p.workers)
		}
	}
}

func TestPool_RunKeepsJobOrder(t *testing.T) {
	jobs := make([]Job, 30)
	for i := range jobs {
		// later jobs finish first
		jobs[i] = &stepJob{index: i, delay: time.Duration(len(jobs)-i) * time.Millisecond}
	}

	results := NewPool(context.Background(), 4).Run(jobs)

	if len(results) != len(jobs) {
		t.Fatalf("Expected %d results, got %d", len(jobs), len(results))
	}
	for i, res := range results {
		if res == nil {
			t.Fatalf("Expected a result for job %d", i)
		}
		if got := res.(*stepResult).index; got != i {
			t.Errorf("Expected job %d in slot %d, got %d", i, i, got)
		}
	}
}

func TestPool_RunBoundsConcurrency(t *testing.T) {
	var running, peak int32
	workers := 3

	jobs := make([]Job, 24)
	for i := range jobs {
		jobs[i] = &stepJob{index: i, delay: 5 * time.Millisecond, running: &running, peak: &peak}
	}

	NewPool(context.Background(), workers).Run(jobs)

	if got := atomic.LoadInt32(&peak); got > int32(workers) {
		t.Errorf("Expected at most %d concurrent jobs, got %d", workers, got)
	}
}

func TestPool_RunManyJobs(t *testing.T) {
	var ran int32
	jobs := make([]Job, 200)
	for i := range jobs {
		jobs[i] = &stepJob{index: i, fail: i%10 == 0, ran: &ran}
	}

	results := NewPool(context.Background(), 3).Run(jobs)

	if atomic.LoadInt32(&ran) != int32(len(jobs)) {
		t.Errorf("Expected %d executed jobs, got %d", len(jobs), ran)
	}

	failed := 0
	for _, res := range results {
		if res.GetError() != nil {
			failed++
		}
	}
	if failed != 20 {
		t.Errorf("Expected 20 errors, got %d", failed)
	}
}

func TestPool_RunEmpty(t *testing.T) {
	if results := NewPool(context.Background(), 2).Run(nil); len(results) != 0 {
		t.Errorf("Expected no results, got %d", len(results))
	}
}

func TestPool_RunCancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran int32
	jobs := []Job{&stepJob{ran: &ran}, &stepJob{ran: &ran}, &stepJob{ran: &ran}}

	results := NewPool(ctx, 2).Run(jobs)

	if len(results) != len(jobs) {
		t.Fatalf("Expected %d slots, got %d", len(jobs), len(results))
	}
	for i, res := range results {
		if res != nil {
			t.Errorf("Expected slot %d to be empty, got %+v", i, res)
		}
	}
	if ran != 0 {
		t.Errorf("Expected no job to run, got %d", ran)
	}
}

func TestPool_RunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	jobs := make([]Job, 50)
	for i := range jobs {
		jobs[i] = &stepJob{index: i, delay: 10 * time.Millisecond}
	}

	done := make(chan []Result)
	go func() { done <- NewPool(ctx, 2).Run(jobs) }()

	select {
	case results := <-done:
		started := 0
		for _, res := range results {
			if res != nil {
				started++
			}
		}
		if started == len(jobs) {
			t.Errorf("Expected cancellation to leave some jobs unstarted")
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}
