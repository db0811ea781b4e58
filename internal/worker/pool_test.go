package worker

import (
	"context"
	"sync/atomic"
	"testing"
)

type countJob struct {
	counter *int64
}

type countResult struct {
	err error
}

func (r *countResult) GetError() error { return r.err }

func (j *countJob) Execute(ctx context.Context) Result {
	atomic.AddInt64(j.counter, 1)
	return &countResult{}
}

func TestPool_RunsAllJobs(t *testing.T) {
	var counter int64
	pool := NewPool(4)
	pool.Start()

	for i := 0; i < 20; i++ {
		pool.Submit(&countJob{counter: &counter})
	}
	results := pool.Wait()

	if len(results) != 20 {
		t.Errorf("expected 20 results, got %d", len(results))
	}
	if got := atomic.LoadInt64(&counter); got != 20 {
		t.Errorf("expected 20 executions, got %d", got)
	}
}

func TestPool_ZeroWorkersClampsToOne(t *testing.T) {
	var counter int64
	pool := NewPool(0)
	pool.Start()
	pool.Submit(&countJob{counter: &counter})

	if results := pool.Wait(); len(results) != 1 {
		t.Errorf("expected 1 result, got %d", len(results))
	}
}

func TestPool_ShutdownStopsAcceptingJobs(t *testing.T) {
	var counter int64
	pool := NewPool(2)
	pool.Start()
	pool.Shutdown()

	// Submissions after shutdown are dropped rather than deadlocking.
	pool.Submit(&countJob{counter: &counter})
	if got := atomic.LoadInt64(&counter); got != 0 {
		t.Errorf("expected no executions after shutdown, got %d", got)
	}
}
