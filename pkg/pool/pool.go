// Package pool runs the per-element work of batch operations, like the N
// exponentiations of a shuffle, across a fixed set of workers.
package pool

import (
	"io"
	"runtime"
	"sync"
	"sync/atomic"
)

// task asks a latent worker to evaluate f at one index and store the result.
type task struct {
	// remaining counts the results still to be produced across the batch.
	remaining *int64
	i         int
	f         func(int) interface{}
	results   []interface{}
}

func worker(tasks <-chan task, done chan<- struct{}, quit <-chan struct{}) {
	for t := range tasks {
		t.results[t.i] = t.f(t.i)
		atomic.AddInt64(t.remaining, -1)
		// Parallelize may have already seen remaining hit 0 and stopped
		// consuming, so a plain send could block past teardown.
		select {
		case done <- struct{}{}:
		case <-quit:
			return
		}
	}
}

// serialize calculates the result of f count times on the calling goroutine.
func serialize(f func(int) interface{}, count int) []interface{} {
	results := make([]interface{}, count)
	for i := 0; i < len(results); i++ {
		results[i] = f(i)
	}
	return results
}

// Pool is a fixed set of workers shared by batch operations.
//
// Functions needing a *Pool work with a nil receiver, doing the equivalent
// work on the current goroutine instead. By creating a pool, you avoid the
// overhead of spinning up goroutines for each new batch.
//
// A Pool serves one batch at a time: concurrent Parallelize calls on the
// same Pool can steal each other's completion signals. Give each
// concurrent caller its own Pool, or a nil one.
type Pool struct {
	// The common channel used to send tasks to the workers.
	//
	// This effectively makes a work stealing pool.
	tasks chan task
	// Signals a finished task.
	done chan struct{}
	// Closed by TearDown to release workers stuck signalling done.
	quit        chan struct{}
	workerCount int
}

// New creates a pool with a certain number of workers.
//
// If count <= 0, the number of available CPUs is used instead.
func New(count int) *Pool {
	var p Pool

	if count <= 0 {
		count = runtime.NumCPU()
	}

	p.tasks = make(chan task)
	p.done = make(chan struct{})
	p.quit = make(chan struct{})
	p.workerCount = count

	for i := 0; i < count; i++ {
		go worker(p.tasks, p.done, p.quit)
	}

	return &p
}

// TearDown cleanly tears down a pool, stopping its workers.
func (p *Pool) TearDown() {
	close(p.tasks)
	close(p.quit)
}

// Parallelize calls a function count times, passing in indices from
// 0..count-1.
//
// The result will be a slice containing [f(0), f(1), ..., f(count - 1)].
func (p *Pool) Parallelize(count int, f func(int) interface{}) []interface{} {
	if p == nil {
		return serialize(f, count)
	}

	results := make([]interface{}, count)

	remaining := int64(count)
	next := 0
	for next < count {
		t := task{
			remaining: &remaining,
			i:         next,
			f:         f,
			results:   results,
		}
		// We can't send every task without blocking, so interleave picking
		// off finished workers to free them up to receive more tasks.
		select {
		case p.tasks <- t:
			next++
		case <-p.done:
		}
	}
	for atomic.LoadInt64(&remaining) > 0 {
		<-p.done
	}

	return results
}

// LockedReader wraps an io.Reader to be safe for concurrent reads.
//
// The process-wide entropy source should be wrapped in one of these before
// being shared between concurrent shuffles or encryptions.
type LockedReader struct {
	reader io.Reader
	m      sync.Mutex
}

// NewLockedReader creates a LockedReader by wrapping an underlying value.
func NewLockedReader(r io.Reader) *LockedReader {
	// Intentionally not initializing m, since the zero value is ok.
	return &LockedReader{reader: r}
}

// Read implements io.Reader for LockedReader.
//
// Concurrent callers race for which value they end up reading, but no two
// of them ever read the same value, which is the property that matters for
// nonce freshness.
func (r *LockedReader) Read(p []byte) (int, error) {
	r.m.Lock()
	defer r.m.Unlock()
	return r.reader.Read(p)
}
