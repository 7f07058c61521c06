// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

type bulkOutcome[T any] struct {
	values []T
	err    error
}

func (q *queue[T]) TakeAll() ([]T, error) {
	out := update(&q.state, func(s *state[T]) (bulkOutcome[T], *state[T]) {
		switch s.tag {
		case tagShutdown:
			return bulkOutcome[T]{err: &ShutdownError{Causes: s.causes}}, s
		case tagDeficit:
			return bulkOutcome[T]{}, s
		default:
			if len(s.buffer) == 0 {
				return bulkOutcome[T]{}, s
			}
			// The buffer is returned as is: installed states are never
			// written through, so nothing can mutate it after the swap.
			return bulkOutcome[T]{values: s.buffer}, surplus(nil, s.putters)
		}
	})
	if out.err != nil {
		return nil, out.err
	}
	q.stats.taken.AddAcqRel(uint64(len(out.values)))
	return out.values, nil
}

func (q *queue[T]) TakeUpTo(max int) ([]T, error) {
	out := update(&q.state, func(s *state[T]) (bulkOutcome[T], *state[T]) {
		switch s.tag {
		case tagShutdown:
			return bulkOutcome[T]{err: &ShutdownError{Causes: s.causes}}, s
		case tagDeficit:
			return bulkOutcome[T]{}, s
		default:
			n := min(max, len(s.buffer))
			if n <= 0 {
				return bulkOutcome[T]{}, s
			}
			return bulkOutcome[T]{values: s.buffer[:n]}, surplus(s.buffer[n:], s.putters)
		}
	})
	if out.err != nil {
		return nil, out.err
	}
	q.stats.taken.AddAcqRel(uint64(len(out.values)))
	return out.values, nil
}
