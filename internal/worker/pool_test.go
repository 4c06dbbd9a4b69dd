package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
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

func TestPool_ExecutesAllJobs(t *testing.T) {
	pool := NewPool(4)
	pool.Start()

	var counter int64
	const jobs = 20
	for i := 0; i < jobs; i++ {
		pool.Submit(&countJob{counter: &counter})
	}

	results := pool.Wait()
	if len(results) != jobs {
		t.Errorf("Expected %d results, got %d", jobs, len(results))
	}
	if atomic.LoadInt64(&counter) != jobs {
		t.Errorf("Expected %d executions, got %d", jobs, counter)
	}
}

func TestPool_ManyMoreJobsThanWorkers(t *testing.T) {
	// Queue far more jobs than the channel buffers hold; submission must
	// not stall waiting for anything to drain results.
	pool := NewPool(1)
	pool.Start()

	var counter int64
	const jobs = 100

	done := make(chan []Result, 1)
	go func() {
		for i := 0; i < jobs; i++ {
			pool.Submit(&countJob{counter: &counter})
		}
		done <- pool.Wait()
	}()

	select {
	case results := <-done:
		if len(results) != jobs {
			t.Errorf("Expected %d results, got %d", jobs, len(results))
		}
		if atomic.LoadInt64(&counter) != jobs {
			t.Errorf("Expected %d executions, got %d", jobs, counter)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Pool stalled submitting jobs past the buffer size")
	}
}

func TestPool_ZeroWorkersClampedToOne(t *testing.T) {
	pool := NewPool(0)
	pool.Start()

	var counter int64
	pool.Submit(&countJob{counter: &counter})

	results := pool.Wait()
	if len(results) != 1 {
		t.Errorf("Expected one result, got %d", len(results))
	}
}

func TestPool_ShutdownStopsWorkers(t *testing.T) {
	pool := NewPool(2)
	pool.Start()
	pool.Shutdown()

	// Submit after shutdown is a no-op rather than a deadlock
	var counter int64
	pool.Submit(&countJob{counter: &counter})
	if atomic.LoadInt64(&counter) != 0 {
		t.Error("Expected no execution after shutdown")
	}
}
