package core

import (
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/kolkov/synckit/internal/lock/gid"
)

// recursiveMutex extends the plain mutex with owner tracking so the holding
// goroutine can reenter without blocking.
//
// owner is read by contending goroutines while the holder updates it, so it
// is atomic. depth is only ever touched by the goroutine that currently
// owns the lock: a first-level acquire happens strictly after the previous
// owner cleared its ownership, and non-owners are turned away before
// reaching it. That protocol, not an extra lock, is what keeps depth
// consistent.
//
// Invariant: owner is non-zero exactly while depth > 0, and owner changes
// only 0→self (first-level acquire) or self→0 (final release).
type recursiveMutex struct {
	mutex
	owner atomic.Int64 // goroutine ID of the current owner, 0 when unowned
	depth uint64       // reentry count, touched only by the owner
}

// Lock acquires the lock, counting a reentry if the calling goroutine
// already owns it. A reentrant acquire never blocks and takes no profiling
// sample; only the first-level acquire can be contended.
func (m *recursiveMutex) Lock() {
	self := gid.Get()
	if m.owner.Load() == self {
		m.depth++
		return
	}

	m.mutex.Lock()
	m.owner.Store(self)
	m.depth = 1
}

// Unlock undoes one level of acquire. The underlying lock is released only
// when the count returns to zero. An unlock from a goroutine that does not
// own the lock is a caller bug: it is reported and the owner's count is
// left untouched.
func (m *recursiveMutex) Unlock() {
	self := gid.Get()
	if m.owner.Load() != self {
		log.Error().
			Int64("goroutine", self).
			Msg("recursive mutex unlocked by goroutine that does not own it")
		return
	}

	m.depth--
	if m.depth == 0 {
		m.owner.Store(0)
		m.mutex.Unlock()
	}
}

// Destroy releases the lock's resources, including the reentry bookkeeping.
func (m *recursiveMutex) Destroy() {
	m.owner.Store(0)
	m.depth = 0
	m.mutex.Destroy()
}
