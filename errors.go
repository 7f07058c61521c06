// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import (
	"errors"

	"code.hybscloud.com/iox"
	"github.com/hashicorp/go-multierror"
)

// ErrWouldBlock indicates the operation cannot proceed immediately.
//
// For TryOffer/TryOfferAll: accepting the payload would require the
// producer to suspend (not enough room and not enough waiting consumers).
// For TryTake: the queue holds no value.
//
// ErrWouldBlock is a control flow signal, not a failure. The caller should
// retry the operation later (with backoff or yield), fall back to the
// blocking variant, or drop the work.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
//
// Example:
//
//	backoff := iox.Backoff{}
//	for {
//	    err := q.TryOffer(item)
//	    if err == nil {
//	        backoff.Reset()
//	        break
//	    }
//	    if queue.IsWouldBlock(err) {
//	        backoff.Wait()  // Adaptive backpressure
//	        continue
//	    }
//	    return err  // Queue was shut down
//	}
var ErrWouldBlock = iox.ErrWouldBlock

// ErrShutdown is the sentinel matched by errors.Is for any error produced
// by an operation on a shut-down queue, regardless of the causes attached
// to the shutdown.
var ErrShutdown = errors.New("queue: shut down")

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Returns true for nil, ErrWouldBlock, or ErrMore.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}

// IsShutdown reports whether err originated from a shut-down queue.
// Equivalent to errors.Is(err, ErrShutdown).
func IsShutdown(err error) bool {
	return errors.Is(err, ErrShutdown)
}

// ShutdownError is returned by every operation invoked after Shutdown, and
// delivered to every producer or consumer that was suspended when Shutdown
// ran. Causes holds the annotations passed to Shutdown, possibly empty.
//
// ShutdownError matches ErrShutdown under errors.Is, and each individual
// cause under errors.Is/errors.As via Unwrap.
type ShutdownError struct {
	Causes []error
}

func (e *ShutdownError) Error() string {
	if len(e.Causes) == 0 {
		return ErrShutdown.Error()
	}
	m := &multierror.Error{Errors: e.Causes}
	return ErrShutdown.Error() + ": " + m.Error()
}

func (e *ShutdownError) Is(target error) bool {
	return target == ErrShutdown
}

func (e *ShutdownError) Unwrap() []error {
	return e.Causes
}
