// Package spin provides the busy-wait mutual-exclusion primitive used by
// every allocator component. Each component (frame bitmap, region table,
// small-object pool) guards its single shared resource with one Lock.
//
// The lock is intentionally minimal: no queueing, no fairness, no
// suspension. A caller attempting to acquire a held lock polls until
// release. After a bounded number of failed attempts the loop yields the
// processor so a tight poll cannot starve the runtime scheduler; the
// contract stays spin-wait, not blocking.
package spin

import (
	"runtime"
	"sync/atomic"
)

// attemptsBeforeYielding bounds the tight poll before the spinning
// goroutine briefly yields its processor.
const attemptsBeforeYielding = 128

// Lock is a spinlock. The zero value is an unlocked lock.
// A Lock must not be copied after first use.
type Lock struct {
	state uint32
}

// Acquire busy-waits until the lock is obtained. Re-acquiring a lock
// already held by the caller deadlocks.
func (l *Lock) Acquire() {
	for {
		for i := uint32(0); i < attemptsBeforeYielding; i++ {
			if atomic.SwapUint32(&l.state, 1) == 0 {
				return
			}
		}
		runtime.Gosched()
	}
}

// TryAcquire attempts a single acquisition and reports whether the lock
// was obtained.
func (l *Lock) TryAcquire() bool {
	return atomic.SwapUint32(&l.state, 1) == 0
}

// Release relinquishes a held lock. Releasing a free lock has no effect.
func (l *Lock) Release() {
	atomic.StoreUint32(&l.state, 0)
}
