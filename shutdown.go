// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import "golang.org/x/sync/errgroup"

func (q *queue[T]) Shutdown(causes ...error) {
	type waiters struct {
		takers  []*cell[T]
		putters []putter[T]
		first   bool
	}
	out := update(&q.state, func(s *state[T]) (waiters, *state[T]) {
		if s.tag == tagShutdown {
			return waiters{}, s
		}
		return waiters{takers: s.takers, putters: s.putters, first: true}, terminal[T](causes)
	})
	if !out.first {
		return
	}
	close(q.done)
	// The waiters left the state under the terminal swap; interrupting
	// them races nothing but their own cancellation, and interrupt is
	// idempotent either way. Fan out and join so that Shutdown returns
	// only once every waiter has been resolved.
	g := new(errgroup.Group)
	for _, c := range out.takers {
		g.Go(func() error {
			c.interrupt(causes)
			return nil
		})
	}
	for _, p := range out.putters {
		g.Go(func() error {
			p.done.interrupt(causes)
			return nil
		})
	}
	_ = g.Wait()
}
