// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import (
	"context"
	"slices"
)

// takeOutcome describes the post-swap work of a take transition. Exactly
// one of ok, wait, err is meaningful. release, when non-nil, is a putter
// whose last element was just delivered or moved into the buffer and who
// must be woken.
type takeOutcome[T any] struct {
	value   T
	ok      bool
	wait    *cell[T]
	release *cell[struct{}]
	err     error
}

// takeTransition computes the next state for withdrawing one element.
//
// Taking from the buffer moves the head putter's next element into the
// vacated slot. When the buffer is empty (TakeAll and TakeUpTo can leave
// it so while putters wait), the value comes straight from the head
// putter's payload. Either way a putter releases as soon as its last
// element leaves its payload. Offers never move putters' elements, so
// only takes shrink the putter list.
func (q *queue[T]) takeTransition(s *state[T], try bool) (takeOutcome[T], *state[T]) {
	switch s.tag {
	case tagShutdown:
		return takeOutcome[T]{err: &ShutdownError{Causes: s.causes}}, s
	case tagDeficit:
		if try {
			return takeOutcome[T]{err: ErrWouldBlock}, s
		}
		c := newCell[T]()
		return takeOutcome[T]{wait: c}, deficit(slices.Concat(s.takers, []*cell[T]{c}))
	default:
		if len(s.buffer) > 0 {
			out := takeOutcome[T]{value: s.buffer[0], ok: true}
			if len(s.putters) == 0 {
				return out, surplus(s.buffer[1:], s.putters)
			}
			p, rest := s.putters[0], s.putters[1:]
			buffer := slices.Concat(s.buffer[1:], p.remaining[:1])
			if len(p.remaining) > 1 {
				rest = slices.Concat([]putter[T]{{remaining: p.remaining[1:], done: p.done}}, rest)
			} else {
				out.release = p.done
				if len(rest) == 0 {
					rest = nil
				}
			}
			return out, surplus(buffer, rest)
		}
		if len(s.putters) == 0 {
			if try {
				return takeOutcome[T]{err: ErrWouldBlock}, s
			}
			c := newCell[T]()
			return takeOutcome[T]{wait: c}, deficit([]*cell[T]{c})
		}
		p := s.putters[0]
		v := p.remaining[0]
		if len(p.remaining) == 1 {
			rest := s.putters[1:]
			if len(rest) == 0 {
				rest = nil
			}
			return takeOutcome[T]{value: v, ok: true, release: p.done}, surplus(nil, rest)
		}
		shortened := putter[T]{remaining: p.remaining[1:], done: p.done}
		next := surplus(nil, slices.Concat([]putter[T]{shortened}, s.putters[1:]))
		return takeOutcome[T]{value: v, ok: true}, next
	}
}

func (q *queue[T]) Take(ctx context.Context) (T, error) {
	out := update(&q.state, func(s *state[T]) (takeOutcome[T], *state[T]) {
		return q.takeTransition(s, false)
	})
	switch {
	case out.err != nil:
		var zero T
		return zero, out.err
	case out.ok:
		if out.release != nil {
			out.release.complete(struct{}{})
		}
		q.stats.taken.AddAcqRel(1)
		return out.value, nil
	}
	v, err := q.awaitTaker(ctx, out.wait)
	if err != nil {
		var zero T
		return zero, err
	}
	q.stats.taken.AddAcqRel(1)
	return v, nil
}

func (q *queue[T]) TryTake() (T, error) {
	out := update(&q.state, func(s *state[T]) (takeOutcome[T], *state[T]) {
		return q.takeTransition(s, true)
	})
	if out.err != nil {
		var zero T
		return zero, out.err
	}
	if out.release != nil {
		out.release.complete(struct{}{})
	}
	q.stats.taken.AddAcqRel(1)
	return out.value, nil
}

// awaitTaker is the release half of the consumer's acquire/release
// bracket. On cancellation the cell is excised from the taker list; when
// the excision finds it already gone, a value or interrupt is in flight
// and must not be dropped, so the cell's resolution wins over ctx.
func (q *queue[T]) awaitTaker(ctx context.Context, c *cell[T]) (T, error) {
	select {
	case <-c.done:
		return c.value, c.err
	case <-ctx.Done():
	}
	if q.releaseTaker(c) {
		var zero T
		return zero, ctx.Err()
	}
	return c.resolved()
}

// releaseTaker removes c from the taker list, reporting whether it was
// still enlisted. Removing the last taker restores the empty Surplus
// state so takers and putters never coexist.
func (q *queue[T]) releaseTaker(c *cell[T]) bool {
	return update(&q.state, func(s *state[T]) (bool, *state[T]) {
		if s.tag != tagDeficit {
			return false, s
		}
		i := slices.Index(s.takers, c)
		if i < 0 {
			return false, s
		}
		rest := slices.Concat(s.takers[:i], s.takers[i+1:])
		if len(rest) == 0 {
			return true, surplus[T](nil, nil)
		}
		return true, deficit(rest)
	})
}
