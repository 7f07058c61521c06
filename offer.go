// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import (
	"context"
	"slices"
)

// offerOutcome describes the post-swap work of an offer transition.
// handoff[i] is completed with values[i]; wait, when non-nil, is the
// caller's own cell and means the overflow suffix was enlisted as a
// putter.
type offerOutcome[T any] struct {
	handoff []*cell[T]
	values  []T
	wait    *cell[struct{}]
	err     error
}

// offerTransition computes the next state for depositing elems. With try
// set, a transition that would enlist a putter instead aborts with
// ErrWouldBlock and leaves the state untouched, so TryOfferAll is all or
// nothing.
//
// elems must not be mutated after the call: accepted prefixes are resliced
// into the new state, not copied again.
func (q *queue[T]) offerTransition(s *state[T], elems []T, try bool) (offerOutcome[T], *state[T]) {
	if s.tag == tagShutdown {
		return offerOutcome[T]{err: &ShutdownError{Causes: s.causes}}, s
	}
	if len(elems) == 0 {
		return offerOutcome[T]{}, s
	}
	switch s.tag {
	case tagDeficit:
		// Hand values to waiting consumers in arrival order. The takers
		// leave the state under the same swap that wins the race, so each
		// is completed exactly once.
		n := min(len(elems), len(s.takers))
		out := offerOutcome[T]{handoff: s.takers[:n], values: elems[:n]}
		if rest := s.takers[n:]; len(rest) > 0 {
			return out, deficit(rest)
		}
		rest := elems[n:]
		fit := rest[:min(len(rest), q.capacity)]
		over := rest[len(fit):]
		if len(over) == 0 {
			return out, surplus(fit, nil)
		}
		if try {
			return offerOutcome[T]{err: ErrWouldBlock}, s
		}
		out.wait = newCell[struct{}]()
		return out, surplus(fit, []putter[T]{{remaining: over, done: out.wait}})
	default:
		room := q.capacity - len(s.buffer)
		fit := elems[:min(len(elems), room)]
		over := elems[len(fit):]
		if len(over) == 0 {
			return offerOutcome[T]{}, surplus(slices.Concat(s.buffer, fit), s.putters)
		}
		if try {
			return offerOutcome[T]{err: ErrWouldBlock}, s
		}
		w := newCell[struct{}]()
		next := surplus(
			slices.Concat(s.buffer, fit),
			slices.Concat(s.putters, []putter[T]{{remaining: over, done: w}}),
		)
		return offerOutcome[T]{wait: w}, next
	}
}

func (q *queue[T]) Offer(ctx context.Context, elem T) error {
	return q.OfferAll(ctx, elem)
}

func (q *queue[T]) OfferAll(ctx context.Context, elems ...T) error {
	// The accepted prefix is resliced straight into the state, so detach
	// from the caller's backing array once up front.
	elems = slices.Clone(elems)
	out := update(&q.state, func(s *state[T]) (offerOutcome[T], *state[T]) {
		return q.offerTransition(s, elems, false)
	})
	if out.err != nil {
		return out.err
	}
	for i, c := range out.handoff {
		c.complete(out.values[i])
	}
	if out.wait == nil {
		q.stats.offered.AddAcqRel(uint64(len(elems)))
		return nil
	}
	if err := q.awaitPutter(ctx, out.wait); err != nil {
		return err
	}
	q.stats.offered.AddAcqRel(uint64(len(elems)))
	return nil
}

func (q *queue[T]) TryOffer(elem T) error {
	return q.TryOfferAll(elem)
}

func (q *queue[T]) TryOfferAll(elems ...T) error {
	elems = slices.Clone(elems)
	out := update(&q.state, func(s *state[T]) (offerOutcome[T], *state[T]) {
		return q.offerTransition(s, elems, true)
	})
	if out.err != nil {
		return out.err
	}
	for i, c := range out.handoff {
		c.complete(out.values[i])
	}
	q.stats.offered.AddAcqRel(uint64(len(elems)))
	return nil
}

// awaitPutter is the release half of the producer's acquire/release
// bracket: suspend on w, and on cancellation excise it from the putter
// list. When the excision finds the cell already gone, the cell left the
// state under a winning swap and its resolution is in flight and
// authoritative.
func (q *queue[T]) awaitPutter(ctx context.Context, w *cell[struct{}]) error {
	select {
	case <-w.done:
		return w.err
	case <-ctx.Done():
	}
	if q.releasePutter(w) {
		return ctx.Err()
	}
	_, err := w.resolved()
	return err
}

// releasePutter removes w from the putter list, reporting whether it was
// still enlisted. A no-op in Deficit (w was never a putter there) and in
// Shutdown (the interrupt has already been dispatched).
func (q *queue[T]) releasePutter(w *cell[struct{}]) bool {
	return update(&q.state, func(s *state[T]) (bool, *state[T]) {
		if s.tag != tagSurplus {
			return false, s
		}
		i := slices.IndexFunc(s.putters, func(p putter[T]) bool { return p.done == w })
		if i < 0 {
			return false, s
		}
		rest := slices.Concat(s.putters[:i], s.putters[i+1:])
		if len(rest) == 0 {
			rest = nil
		}
		return true, surplus(s.buffer, rest)
	})
}
