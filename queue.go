// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import (
	"context"
	"math"
)

// queue is the single implementation behind Bounded and Unbounded. One
// state machine serves every producer/consumer arity: a lone producer or
// consumer is just the degenerate case of the wait lists holding at most
// one entry.
type queue[T any] struct {
	capacity int
	state    stateCell[T]
	done     chan struct{} // closed when the Shutdown transition commits
	stats    stats
}

// Bounded creates a queue that buffers at most capacity elements.
// Producers suspend while the buffer is full; consumers suspend while it
// is empty.
//
// Panics if capacity < 1.
func Bounded[T any](capacity int) Queue[T] {
	if capacity < 1 {
		panic("queue: capacity must be positive")
	}
	q := &queue[T]{
		capacity: capacity,
		done:     make(chan struct{}),
	}
	q.state.ptr.Store(surplus[T](nil, nil))
	return q
}

// Unbounded creates a queue with no practical capacity limit; producers
// never suspend. Equivalent to Bounded with the maximum int capacity.
func Unbounded[T any]() Queue[T] {
	return Bounded[T](math.MaxInt)
}

func (q *queue[T]) Cap() int {
	return q.capacity
}

func (q *queue[T]) Size() (int, error) {
	s := q.state.ptr.Load()
	switch s.tag {
	case tagShutdown:
		return 0, &ShutdownError{Causes: s.causes}
	case tagDeficit:
		return -len(s.takers), nil
	default:
		n := len(s.buffer)
		for _, p := range s.putters {
			n += len(p.remaining)
		}
		return n, nil
	}
}

func (q *queue[T]) IsShutdown() bool {
	return q.state.ptr.Load().tag == tagShutdown
}

func (q *queue[T]) AwaitShutdown(ctx context.Context) error {
	select {
	case <-q.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
