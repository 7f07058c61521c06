// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import "context"

// Queue is the combined producer-consumer interface for a bounded FIFO
// queue with suspending semantics.
//
// Offer and Take suspend the calling goroutine when the queue is full or
// empty respectively; the Try variants return ErrWouldBlock instead. All
// operations on a shut-down queue resolve with a ShutdownError carrying
// the causes passed to Shutdown.
//
// Example:
//
//	q := queue.Bounded[int](1024)
//
//	// Producer
//	if err := q.Offer(ctx, 42); err != nil {
//	    // Queue was shut down, or ctx was cancelled
//	}
//
//	// Consumer
//	v, err := q.Take(ctx)
//	if err == nil {
//	    fmt.Println(v)
//	}
type Queue[T any] interface {
	Producer[T]
	Consumer[T]

	// Cap returns the queue's capacity.
	Cap() int

	// Size returns the current accounting: buffered values plus the
	// residual payloads of suspended producers, minus the number of
	// suspended consumers. Negative exactly when consumers wait on an
	// empty queue. Returns a ShutdownError after Shutdown.
	Size() (int, error)

	// Shutdown transitions the queue to its terminal state, interrupting
	// every suspended producer and consumer with causes. It is idempotent:
	// only the first call's causes are retained. Shutdown returns after
	// every waiter has been interrupted; it never suspends the caller as
	// a waiter.
	Shutdown(causes ...error)

	// IsShutdown reports whether the queue has reached its terminal state.
	IsShutdown() bool

	// AwaitShutdown suspends until the queue is shut down or ctx is
	// cancelled, whichever comes first.
	AwaitShutdown(ctx context.Context) error

	// Stats returns a snapshot of the queue's running totals.
	Stats() Stats
}

// Producer is the interface for depositing elements.
//
// Elements are passed by value; the queue retains its own copy of every
// payload, so the caller's slice or variable can be reused after the call
// returns (or suspends).
type Producer[T any] interface {
	// Offer deposits a single element, suspending while the queue is full.
	// Returns nil once the element has been buffered or handed directly to
	// a consumer, ctx.Err() if ctx is cancelled while suspended, or a
	// ShutdownError if the queue is or becomes shut down.
	Offer(ctx context.Context, elem T) error

	// OfferAll deposits all of elems in order, suspending until every
	// element has been accepted. The elements keep their relative order in
	// consumer order; values from other producers can come between them.
	// Cancellation while suspended discards
	// the undelivered suffix; any prefix already accepted stays accepted.
	OfferAll(ctx context.Context, elems ...T) error

	// TryOffer deposits a single element without suspending.
	// Returns ErrWouldBlock if the queue is full.
	TryOffer(elem T) error

	// TryOfferAll deposits all of elems without suspending, all or
	// nothing: if any element would have to wait, no element is accepted
	// and ErrWouldBlock is returned.
	TryOfferAll(elems ...T) error
}

// Consumer is the interface for withdrawing elements.
type Consumer[T any] interface {
	// Take withdraws the next element in FIFO order, suspending while the
	// queue is empty. Returns ctx.Err() if ctx is cancelled while
	// suspended, or a ShutdownError if the queue is or becomes shut down.
	Take(ctx context.Context) (T, error)

	// TryTake withdraws the next element without suspending.
	// Returns (zero value, ErrWouldBlock) if the queue is empty.
	TryTake() (T, error)

	// TakeAll withdraws the entire buffer in FIFO order without
	// suspending. Returns an empty slice when nothing is buffered.
	// Suspended producers are not drained; their payloads surface on
	// subsequent operations.
	TakeAll() ([]T, error)

	// TakeUpTo withdraws at most max elements in FIFO order without
	// suspending. TakeUpTo(0) returns an empty slice and does not modify
	// the queue.
	TakeUpTo(max int) ([]T, error)
}
