// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import "code.hybscloud.com/atomix"

// Stats is a snapshot of a queue's running totals.
//
// Offered counts the elements of every successfully completed
// Offer/OfferAll/TryOffer call, credited when the call completes (for a
// suspended producer, when its last element has been delivered or
// buffered). Taken counts every element delivered to a consumer, whether
// by Take, TryTake, TakeAll, or TakeUpTo.
//
// The counters are instrumentation only; the queue never reads them.
type Stats struct {
	Offered uint64
	Taken   uint64
}

type stats struct {
	offered atomix.Uint64
	taken   atomix.Uint64
}

func (q *queue[T]) Stats() Stats {
	return Stats{
		Offered: q.stats.offered.LoadAcquire(),
		Taken:   q.stats.taken.LoadAcquire(),
	}
}
