package core

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/kolkov/synckit/internal/lock/gid"
)

// CondVarType selects the condition-variable variant produced by NewCondVar.
type CondVarType int

const (
	// CondVarTypeDefault is the standard condition variable.
	CondVarTypeDefault CondVarType = iota
)

// CondVar is a condition variable created by NewCondVar.
//
// Wait and TimedWait must be called with m held by the calling goroutine;
// they release m for the duration of the wait and reacquire it before
// returning. The wait predicate is the caller's business: callers recheck
// it in a loop around the wait, as with any condition variable.
//
// A CondVar is not bound to a particular mutex; any Mutex created by
// NewMutex may be passed to its wait operations.
type CondVar interface {
	// Wait suspends the calling goroutine until Signal or Broadcast wakes
	// it, releasing m while suspended.
	Wait(m Mutex)

	// TimedWait is Wait bounded by a timeout. It returns true when the
	// timeout elapsed before a wakeup, false when the waiter was signaled.
	TimedWait(m Mutex, timeout time.Duration) bool

	// Signal wakes at most one waiter. With no waiters it does nothing;
	// the wakeup is not banked for a future wait.
	Signal()

	// Broadcast wakes every current waiter.
	Broadcast()

	// Destroy releases the condition variable's resources.
	Destroy()
}

// NewCondVar creates a condition variable of the requested variant. Every
// recognized variant currently maps to the default behavior.
func NewCondVar(_ CondVarType) CondVar {
	return newCondVar(clockwork.NewRealClock())
}

func newCondVar(clock clockwork.Clock) *condVar {
	return &condVar{clock: clock}
}

// condVar queues waiters in arrival order; each waiter owns a one-slot
// token channel it parks on. Signal hands a token to the head waiter,
// Broadcast to all. Wake order is whatever the queue and the scheduler
// produce; callers must not rely on it.
type condVar struct {
	clock clockwork.Clock

	mu      sync.Mutex // guards waiters
	waiters []chan struct{}
}

// Wait suspends the caller until signaled, releasing m while suspended.
func (c *condVar) Wait(m Mutex) {
	w := c.enqueue()
	depth := releaseForWait(m)
	<-w
	reacquireAfterWait(m, depth)
}

// TimedWait suspends the caller until signaled or until the timeout
// elapses. The timeout is converted to an absolute wall-clock deadline
// before parking. Returns true only on genuine expiry: a signal that lands
// while the timeout is being processed still counts as a wakeup.
func (c *condVar) TimedWait(m Mutex, timeout time.Duration) bool {
	w := c.enqueue()
	depth := releaseForWait(m)

	now := c.clock.Now()
	deadline := absDeadline(now, timeout)
	timer := c.clock.NewTimer(deadline.time().Sub(now))

	var timedOut bool
	select {
	case <-w:
	case <-timer.Chan():
		timedOut = !c.remove(w)
	}
	timer.Stop()

	reacquireAfterWait(m, depth)
	return timedOut
}

// Signal wakes the head waiter, if any.
func (c *condVar) Signal() {
	c.mu.Lock()
	if len(c.waiters) > 0 {
		w := c.waiters[0]
		c.waiters = c.waiters[1:]
		w <- struct{}{}
	}
	c.mu.Unlock()
}

// Broadcast wakes every current waiter.
func (c *condVar) Broadcast() {
	c.mu.Lock()
	for _, w := range c.waiters {
		w <- struct{}{}
	}
	c.waiters = nil
	c.mu.Unlock()
}

// Destroy releases the condition variable's resources. The caller
// guarantees no waiter is parked and no concurrent use is in flight.
func (c *condVar) Destroy() {
	c.mu.Lock()
	c.waiters = nil
	c.mu.Unlock()
}

// enqueue registers the calling goroutine as a waiter. Registration happens
// before the caller releases its lock, so a signal arriving between the
// release and the park still finds the waiter.
func (c *condVar) enqueue() chan struct{} {
	w := make(chan struct{}, 1)
	c.mu.Lock()
	c.waiters = append(c.waiters, w)
	c.mu.Unlock()
	return w
}

// remove deregisters a timed-out waiter. It returns true when a signal
// claimed the waiter first; in that case the pending token is consumed so
// it cannot leak into a later wait on the same channel.
func (c *condVar) remove(w chan struct{}) (signaled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, x := range c.waiters {
		if x == w {
			c.waiters = append(c.waiters[:i], c.waiters[i+1:]...)
			return false
		}
	}

	// Signal or Broadcast already popped this waiter; the token was posted
	// while holding c.mu, so it is already in the channel.
	<-w
	return true
}

// releaseForWait releases the underlying lock of m for the duration of a
// wait and returns the caller's reentry count so it can be restored on
// resume. For a recursive mutex the ownership state is cleared first, so
// the lock reads as unowned while it is physically unlocked and an interim
// owner starts from a clean count. For a plain mutex the release also
// surfaces the wait-without-holding bug through Unlock's own reporting.
func releaseForWait(m Mutex) uint64 {
	switch l := m.(type) {
	case *recursiveMutex:
		depth := l.depth
		l.depth = 0
		l.owner.Store(0)
		l.mutex.Unlock()
		return depth
	case *mutex:
		l.Unlock()
	default:
		log.Error().Msg("condvar wait on unknown mutex implementation")
	}
	return 0
}

// reacquireAfterWait reacquires the underlying lock after a wait and, for a
// recursive mutex, restores ownership and the caller's reentry count. The
// caller's logical hold across the wait is unchanged: it resumes holding
// exactly the levels it held when it started waiting.
func reacquireAfterWait(m Mutex, depth uint64) {
	switch l := m.(type) {
	case *recursiveMutex:
		l.mutex.acquire()
		l.owner.Store(gid.Get())
		l.depth = depth
	case *mutex:
		l.acquire()
	}
}
