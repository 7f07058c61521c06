// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import "sync"

// cell is a one-shot completion carrying either a value or an interruption.
//
// A cell is shared by exactly two holders: the suspended task awaiting it
// and the queue state that will later resolve it. The state drops its
// reference (by transition) before or atomically with the resolution, so a
// resolved cell is never reachable from the state.
//
// complete and interrupt are idempotent; the first resolution wins and
// closes done. The close-of-channel happens-before every receive on done,
// which is the only synchronization value and err need.
type cell[T any] struct {
	once  sync.Once
	done  chan struct{}
	value T
	err   error
}

func newCell[T any]() *cell[T] {
	return &cell[T]{done: make(chan struct{})}
}

// complete resolves the cell with v. Reports whether this call won the
// resolution race.
func (c *cell[T]) complete(v T) (won bool) {
	c.once.Do(func() {
		c.value = v
		close(c.done)
		won = true
	})
	return won
}

// interrupt resolves the cell with a ShutdownError carrying causes.
// Reports whether this call won the resolution race.
func (c *cell[T]) interrupt(causes []error) (won bool) {
	c.once.Do(func() {
		c.err = &ShutdownError{Causes: causes}
		close(c.done)
		won = true
	})
	return won
}

// resolved returns the cell's outcome, suspending until one exists. Only
// valid when resolution is guaranteed, i.e. after the cell has been
// observed outside every wait list.
func (c *cell[T]) resolved() (T, error) {
	<-c.done
	return c.value, c.err
}
