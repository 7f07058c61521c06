// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import (
	"context"
	"slices"
	"testing"
	"time"
)

// =============================================================================
// White-box transition tests
//
// These exercise the pure transition functions directly against hand-built
// states, and inspect the installed state after public operations. They
// pin down the exact state shapes the black-box tests can only observe
// indirectly.
// =============================================================================

func waitForState[T any](t *testing.T, q *queue[T], cond func(*state[T]) bool) *state[T] {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		s := q.state.ptr.Load()
		if cond(s) {
			return s
		}
		if time.Now().After(deadline) {
			t.Fatalf("state condition not reached, state tag=%d", s.tag)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestOfferTransitionDeficitHandoff(t *testing.T) {
	q := &queue[int]{capacity: 2}
	t1, t2 := newCell[int](), newCell[int]()

	// Two takers, one value: the first taker is paired, the second stays.
	out, next := q.offerTransition(deficit([]*cell[int]{t1, t2}), []int{10}, false)
	if len(out.handoff) != 1 || out.handoff[0] != t1 || out.values[0] != 10 {
		t.Fatalf("handoff: got %d cells, want [t1]=10", len(out.handoff))
	}
	if out.wait != nil {
		t.Fatal("no overflow: caller must not get a wait cell")
	}
	if next.tag != tagDeficit || len(next.takers) != 1 || next.takers[0] != t2 {
		t.Fatalf("next state: got tag=%d takers=%d, want Deficit[t2]", next.tag, len(next.takers))
	}
}

func TestOfferTransitionDeficitOverflow(t *testing.T) {
	q := &queue[int]{capacity: 2}
	t1 := newCell[int]()

	// One taker, four values: one handed off, two buffered, one overflows
	// into a putter carrying exactly the unfit suffix.
	out, next := q.offerTransition(deficit([]*cell[int]{t1}), []int{1, 2, 3, 4}, false)
	if len(out.handoff) != 1 || out.values[0] != 1 {
		t.Fatalf("handoff: got %v, want [1]", out.values)
	}
	if out.wait == nil {
		t.Fatal("overflow: caller must get a wait cell")
	}
	if next.tag != tagSurplus || !slices.Equal(next.buffer, []int{2, 3}) {
		t.Fatalf("buffer: got %v, want [2 3]", next.buffer)
	}
	if len(next.putters) != 1 || !slices.Equal(next.putters[0].remaining, []int{4}) {
		t.Fatalf("putters: got %+v, want one with [4]", next.putters)
	}
	if next.putters[0].done != out.wait {
		t.Fatal("putter cell must be the caller's wait cell")
	}
}

func TestOfferTransitionTryAborts(t *testing.T) {
	q := &queue[int]{capacity: 1}
	t1 := newCell[int]()
	s := deficit([]*cell[int]{t1})

	// All or nothing: the overflow aborts the whole deposit, including the
	// handoff that would have succeeded.
	out, next := q.offerTransition(s, []int{1, 2, 3}, true)
	if !IsWouldBlock(out.err) {
		t.Fatalf("err: got %v, want ErrWouldBlock", out.err)
	}
	if next != s {
		t.Fatal("try must leave the state untouched")
	}
	if len(out.handoff) != 0 {
		t.Fatal("try must not hand off on abort")
	}
}

func TestTakeTransitionShortensPutter(t *testing.T) {
	q := &queue[int]{capacity: 1}
	w := newCell[struct{}]()
	s := surplus(nil, []putter[int]{{remaining: []int{7, 8}, done: w}})

	out, next := q.takeTransition(s, false)
	if !out.ok || out.value != 7 {
		t.Fatalf("take: got ok=%v v=%d, want 7", out.ok, out.value)
	}
	if out.release != nil {
		t.Fatal("putter still holds an element, must not be released")
	}
	if len(next.putters) != 1 || !slices.Equal(next.putters[0].remaining, []int{8}) {
		t.Fatalf("putters: got %+v, want one with [8]", next.putters)
	}

	out, next = q.takeTransition(next, false)
	if !out.ok || out.value != 8 {
		t.Fatalf("take: got ok=%v v=%d, want 8", out.ok, out.value)
	}
	if out.release != w {
		t.Fatal("last element delivered, putter must be released")
	}
	if next.tag != tagSurplus || len(next.putters) != 0 || len(next.buffer) != 0 {
		t.Fatalf("next state: got %+v, want empty Surplus", next)
	}
}

func TestTakeTransitionBufferBeforePutters(t *testing.T) {
	q := &queue[int]{capacity: 1}
	w := newCell[struct{}]()
	s := surplus([]int{1}, []putter[int]{{remaining: []int{2}, done: w}})

	// Taking from the buffer promotes the putter's head into the vacated
	// slot; that was the putter's last element, so the putter is released.
	out, next := q.takeTransition(s, false)
	if !out.ok || out.value != 1 {
		t.Fatalf("take: got %d, want 1", out.value)
	}
	if !slices.Equal(next.buffer, []int{2}) || len(next.putters) != 0 {
		t.Fatalf("next state: got buffer=%v putters=%d, want [2] and no putter",
			next.buffer, len(next.putters))
	}
	if out.release != w {
		t.Fatal("last element promoted, putter must be released")
	}
}

func TestSuspendedProducerStateShape(t *testing.T) {
	q := Bounded[int](2).(*queue[int])

	errc := make(chan error, 1)
	go func() {
		errc <- q.OfferAll(context.Background(), 1, 2, 3)
	}()

	s := waitForState(t, q, func(s *state[int]) bool {
		return s.tag == tagSurplus && len(s.putters) == 1
	})
	if len(s.buffer) != q.capacity {
		t.Fatalf("putters enlisted while buffer not full: len=%d cap=%d", len(s.buffer), q.capacity)
	}
	if !slices.Equal(s.putters[0].remaining, []int{3}) {
		t.Fatalf("putter payload: got %v, want [3]", s.putters[0].remaining)
	}

	if vs, err := q.TakeAll(); err != nil || !slices.Equal(vs, []int{1, 2}) {
		t.Fatalf("TakeAll: got %v, %v", vs, err)
	}
	if v, err := q.Take(context.Background()); err != nil || v != 3 {
		t.Fatalf("Take: got %d, %v", v, err)
	}
	if err := <-errc; err != nil {
		t.Fatalf("OfferAll: %v", err)
	}

	s = q.state.ptr.Load()
	if s.tag != tagSurplus || len(s.putters) != 0 || len(s.buffer) != 0 {
		t.Fatalf("final state: got %+v, want empty Surplus", s)
	}
}

func TestCancelledTakerRestoresSurplus(t *testing.T) {
	q := Bounded[int](1).(*queue[int])

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		_, err := q.Take(ctx)
		errc <- err
	}()

	waitForState(t, q, func(s *state[int]) bool {
		return s.tag == tagDeficit && len(s.takers) == 1
	})
	cancel()
	if err := <-errc; err != context.Canceled {
		t.Fatalf("Take: got %v, want context.Canceled", err)
	}

	// Removing the last taker restores the empty Surplus state, so the
	// cancelled cell is no longer referenced anywhere.
	s := waitForState(t, q, func(s *state[int]) bool {
		return s.tag == tagSurplus
	})
	if len(s.takers) != 0 || len(s.buffer) != 0 {
		t.Fatalf("state after release: got %+v, want empty Surplus", s)
	}
}

func TestCancelledPutterExcised(t *testing.T) {
	q := Bounded[int](1).(*queue[int])
	if err := q.TryOffer(1); err != nil {
		t.Fatalf("TryOffer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		errc <- q.OfferAll(ctx, 2, 3)
	}()

	waitForState(t, q, func(s *state[int]) bool {
		return s.tag == tagSurplus && len(s.putters) == 1
	})
	cancel()
	if err := <-errc; err != context.Canceled {
		t.Fatalf("OfferAll: got %v, want context.Canceled", err)
	}

	s := waitForState(t, q, func(s *state[int]) bool {
		return len(s.putters) == 0
	})
	if !slices.Equal(s.buffer, []int{1}) {
		t.Fatalf("buffer after release: got %v, want [1]", s.buffer)
	}
}

func TestTakeUpToZeroKeepsStateIdentity(t *testing.T) {
	q := Bounded[int](4).(*queue[int])
	if err := q.TryOfferAll(1, 2); err != nil {
		t.Fatalf("TryOfferAll: %v", err)
	}

	before := q.state.ptr.Load()
	if vs, err := q.TakeUpTo(0); err != nil || len(vs) != 0 {
		t.Fatalf("TakeUpTo(0): got %v, %v", vs, err)
	}
	if q.state.ptr.Load() != before {
		t.Fatal("TakeUpTo(0) must not install a new state")
	}
}

func TestShutdownStateIsTerminal(t *testing.T) {
	q := Bounded[int](1).(*queue[int])
	q.Shutdown()

	first := q.state.ptr.Load()
	if first.tag != tagShutdown {
		t.Fatalf("tag: got %d, want Shutdown", first.tag)
	}

	// No operation, including a second Shutdown, replaces the terminal
	// state.
	q.Shutdown()
	_ = q.TryOffer(1)
	_, _ = q.TryTake()
	_, _ = q.TakeAll()
	if q.state.ptr.Load() != first {
		t.Fatal("terminal state must never be replaced")
	}
}
