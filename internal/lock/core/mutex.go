// Package core implements the synchronization primitives behind the public
// lock package: a plain exclusive mutex, a recursive mutex that tracks its
// owning goroutine, and a condition variable with timed wait.
//
// The primitives are created through factories selecting the variant and
// destroyed explicitly. Misuse (unlocking a lock that is not held, unlocking
// another goroutine's recursive lock) is not an error condition the caller
// can handle; it is a bug in the caller, reported through the process-wide
// zerolog logger at the point of misuse, after which execution continues
// best-effort.
//
// When built with the lockprofiler tag, every mutex additionally accumulates
// the time its acquirers spent blocked and remembers its creation site;
// locks destroyed with more than a threshold of accumulated wait are
// reported. The default build compiles all of this down to nothing.
package core

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// MutexType selects the mutex variant produced by NewMutex.
type MutexType int

const (
	// MutexTypeDefault is a non-recursive exclusive lock. A goroutine that
	// already holds it and locks it again deadlocks.
	MutexTypeDefault MutexType = iota

	// MutexTypeRecursive is an exclusive lock the owning goroutine may
	// reacquire. Nested acquires are counted and must be released
	// symmetrically.
	MutexTypeRecursive
)

// Mutex is an exclusive lock created by NewMutex.
//
// All methods are called on the same instance from arbitrary goroutines.
// Destroy must be called exactly once, with no concurrent or subsequent use
// of the lock.
type Mutex interface {
	// Lock blocks the calling goroutine until the lock is acquired.
	Lock()

	// Unlock releases the lock. Unlocking a lock that is not held is a
	// caller bug; it is reported and the release is attempted anyway.
	Unlock()

	// Destroy releases the lock's resources and, in profiling builds,
	// reports accumulated contention.
	Destroy()
}

// NewMutex creates a mutex of the requested variant.
func NewMutex(t MutexType) Mutex {
	switch t {
	case MutexTypeRecursive:
		m := &recursiveMutex{}
		m.mutex.init()
		return m
	default:
		m := &mutex{}
		m.init()
		return m
	}
}

// mutex is the non-recursive variant. It carries no ownership metadata:
// exclusion is a held flag guarded by an internal state mutex, and blocked
// acquirers park on a wake channel until a release posts a token.
type mutex struct {
	mu   sync.Mutex // guards held
	held bool
	wake chan struct{}
	prof profiler
}

func (m *mutex) init() {
	m.wake = make(chan struct{}, 1)
	m.prof.init()
}

// Lock blocks until the lock is acquired. The time spent inside the acquire
// is charged to the profiler even when the lock was free, so accounting
// stays uniform across contended and uncontended acquires.
func (m *mutex) Lock() {
	start := m.prof.begin()
	m.acquire()
	m.prof.end(start)
}

// acquire is the unprofiled blocking acquire. The condition variable uses
// it directly when reacquiring after a wait, which is not a contended
// acquire from the profiler's point of view.
func (m *mutex) acquire() {
	for {
		m.mu.Lock()
		if !m.held {
			m.held = true
			m.mu.Unlock()
			return
		}
		m.mu.Unlock()

		// Park until a release posts a token, then recheck. Another
		// goroutine may have taken the lock in between.
		<-m.wake
	}
}

// Unlock releases the lock and wakes one parked acquirer, if any.
func (m *mutex) Unlock() {
	m.mu.Lock()
	if !m.held {
		log.Error().Msg("mutex unlocked while not held")
	}
	m.held = false
	m.mu.Unlock()

	select {
	case m.wake <- struct{}{}:
	default:
		// A wakeup token is already pending; one is enough, parked
		// acquirers recheck in a loop.
	}
}

// Destroy ends the lock's life. In profiling builds it reports the
// accumulated wait if it crossed the reporting threshold and frees the
// creation backtrace; everything else is reclaimed by the garbage
// collector once the owner drops its reference.
func (m *mutex) Destroy() {
	m.prof.report()
}
