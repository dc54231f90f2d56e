// Package coalesce provides a single-slot write queue. Submitting while a
// write is in flight replaces the pending value, so a slow destination only
// ever receives the most recently submitted value after the current write
// finishes. Writes never overlap and are issued in submission order.
package coalesce

import (
	"context"
	"sync"
	"time"
)

// WriteFunc performs one write. The context carries the per-write timeout.
type WriteFunc[T any] func(ctx context.Context, v T) error

// Queue serializes writes of T to one destination.
type Queue[T any] struct {
	write   WriteFunc[T]
	onError func(error)
	timeout time.Duration

	mu      sync.Mutex
	pending *T
	running bool
	closed  bool
	idle    chan struct{}
	lastErr error
	written uint64
	dropped uint64
}

// Option configures a Queue.
type Option[T any] func(*Queue[T])

// WithTimeout bounds each individual write.
func WithTimeout[T any](d time.Duration) Option[T] {
	return func(q *Queue[T]) { q.timeout = d }
}

// WithErrorHandler receives every failed write.
func WithErrorHandler[T any](fn func(error)) Option[T] {
	return func(q *Queue[T]) { q.onError = fn }
}

// New creates a Queue that writes through fn.
func New[T any](fn WriteFunc[T], opts ...Option[T]) *Queue[T] {
	q := &Queue[T]{write: fn}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Submit schedules v. It never blocks on the write itself. It returns false
// once the queue is closed.
func (q *Queue[T]) Submit(v T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	if q.pending != nil {
		q.dropped++
	}
	q.pending = &v
	if !q.running {
		q.running = true
		q.idle = make(chan struct{})
		go q.drain()
	}
	return true
}

func (q *Queue[T]) drain() {
	for {
		q.mu.Lock()
		if q.pending == nil {
			q.running = false
			close(q.idle)
			q.mu.Unlock()
			return
		}
		v := *q.pending
		q.pending = nil
		q.mu.Unlock()

		err := q.writeOne(v)

		q.mu.Lock()
		q.lastErr = err
		q.written++
		q.mu.Unlock()
		if err != nil && q.onError != nil {
			q.onError(err)
		}
	}
}

func (q *Queue[T]) writeOne(v T) error {
	ctx := context.Background()
	if q.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.timeout)
		defer cancel()
	}
	return q.write(ctx, v)
}

// Flush waits until nothing is pending or in flight. It returns the error of
// the last completed write, or ctx.Err() if ctx ends first.
func (q *Queue[T]) Flush(ctx context.Context) error {
	q.mu.Lock()
	if !q.running {
		err := q.lastErr
		q.mu.Unlock()
		return err
	}
	idle := q.idle
	q.mu.Unlock()

	select {
	case <-idle:
	case <-ctx.Done():
		return ctx.Err()
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	return q.lastErr
}

// Close stops accepting values and flushes what is already queued.
func (q *Queue[T]) Close(ctx context.Context) error {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	return q.Flush(ctx)
}

// Stats reports completed writes and values superseded before being written.
func (q *Queue[T]) Stats() (written, coalesced uint64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.written, q.dropped
}
