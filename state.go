// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import (
	"sync/atomic"

	"code.hybscloud.com/spin"
)

type stateTag uint8

const (
	// tagSurplus: buffer holds values waiting to be taken; putters, if any,
	// are producers suspended because their payload did not fit entirely.
	tagSurplus stateTag = iota
	// tagDeficit: the buffer is empty and at least one consumer waits.
	tagDeficit
	// tagShutdown: terminal. Every further operation resolves with causes.
	tagShutdown
)

// state is the queue's sum-typed state machine. Exactly one variant is
// active, selected by tag; the other variants' fields are nil.
//
// States are immutable once installed in a stateCell: a transition builds
// fresh slices (or reslices existing ones) and never writes through a
// published slice. This is what makes it safe for TakeAll to return the
// buffer without a defensive copy, and for a losing CAS to have observed
// a stale state.
type state[T any] struct {
	tag     stateTag
	buffer  []T         // tagSurplus: 0 <= len <= capacity
	putters []putter[T] // tagSurplus: each payload would not have fit
	takers  []*cell[T]  // tagDeficit: never empty
	causes  []error     // tagShutdown
}

// putter is a suspended producer. remaining is the suffix of its payload
// that did not fit; it is never empty while the putter is enlisted.
type putter[T any] struct {
	remaining []T
	done      *cell[struct{}]
}

func surplus[T any](buffer []T, putters []putter[T]) *state[T] {
	return &state[T]{tag: tagSurplus, buffer: buffer, putters: putters}
}

func deficit[T any](takers []*cell[T]) *state[T] {
	return &state[T]{tag: tagDeficit, takers: takers}
}

func terminal[T any](causes []error) *state[T] {
	return &state[T]{tag: tagShutdown, causes: causes}
}

// stateCell holds the current state and is the queue's only shared mutable
// resource. All mutation goes through update.
type stateCell[T any] struct {
	ptr atomic.Pointer[state[T]]
}

// update atomically replaces the state with the one computed by f and
// returns f's companion result, typically a description of the side
// effects to perform after the swap.
//
// f must be pure: it runs again from scratch whenever the CAS loses a
// race. Returning the old state pointer unchanged skips the swap, which
// is how read-only and no-op transitions avoid contending the cell.
func update[T, R any](sc *stateCell[T], f func(*state[T]) (R, *state[T])) R {
	sw := spin.Wait{}
	for {
		old := sc.ptr.Load()
		res, next := f(old)
		if next == old || sc.ptr.CompareAndSwap(old, next) {
			return res
		}
		sw.Once()
	}
}
