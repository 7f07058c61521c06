// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package queue provides a bounded, many-producer many-consumer FIFO
// queue with suspending semantics.
//
// Producers deposit values; consumers withdraw them in first-in-first-out
// order. When the queue is full, producers suspend until space becomes
// available; when empty, consumers suspend until a value arrives. The
// queue additionally supports batch deposit (OfferAll), bulk withdrawal
// (TakeAll, TakeUpTo), non-blocking variants of every suspending
// operation, and a graceful Shutdown that interrupts all waiters with
// optional causes.
//
// # Quick Start
//
//	q := queue.Bounded[Event](1024)   // producers suspend when full
//	q := queue.Unbounded[Event]()     // producers never suspend
//
// # Basic Usage
//
// Offer and Take suspend on the calling goroutine and honor context
// cancellation:
//
//	// Producer
//	if err := q.Offer(ctx, ev); err != nil {
//	    // ctx cancelled, or queue shut down
//	}
//
//	// Consumer
//	ev, err := q.Take(ctx)
//	if err != nil {
//	    // ctx cancelled, or queue shut down
//	}
//
// The Try variants never suspend and return ErrWouldBlock instead:
//
//	if err := q.TryOffer(ev); queue.IsWouldBlock(err) {
//	    // Queue is full - handle backpressure
//	}
//
// # Ordering
//
// Consumers observe values in the order producers committed them. Within
// a single OfferAll the elements keep their relative order; suspended
// producers and consumers are served first-in-first-out. After TakeAll or
// TakeUpTo frees room while a producer is still suspended, values offered
// by others are buffered ahead of that producer's remaining elements.
//
// # Shutdown
//
// Shutdown transitions the queue to a terminal state, interrupting every
// suspended producer and consumer. Causes attached to the shutdown are
// delivered to every interrupted waiter and to every subsequent call:
//
//	q.Shutdown(errors.New("pipeline torn down"))
//
//	_, err := q.Take(ctx)
//	// queue.IsShutdown(err) == true
//
// # Cancellation
//
// A producer or consumer whose context is cancelled while suspended is
// removed from the queue's wait lists before the call returns; no waiter
// leaks. A cancelled OfferAll discards only its undelivered suffix: the
// prefix that already fit was atomically visible and may already have
// been consumed, so it stays.
package queue
