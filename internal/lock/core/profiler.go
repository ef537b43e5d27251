//go:build lockprofiler

package core

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/kolkov/synckit/internal/lock/backtrace"
)

// ProfilingEnabled reports whether this build carries the contention
// profiler. Builds with the lockprofiler tag do.
const ProfilingEnabled = true

// profileThreshold is the minimum accumulated wait for a destroyed mutex to
// be reported. Locks that never crossed it stay silent.
const profileThreshold = 1000 * time.Microsecond

// profClock is the profiler's time source. Swapped for a fake in tests.
var profClock clockwork.Clock = clockwork.NewRealClock()

// profiler accumulates, for one mutex, the time acquirers spent blocked,
// and remembers the call site that created the mutex.
//
// waited is only ever updated by a goroutine that has just acquired the
// underlying lock, so the lock itself orders all updates and no further
// synchronization is needed.
type profiler struct {
	waited  time.Duration
	created *backtrace.Trace
}

func (p *profiler) init() {
	// Start the trace at the caller of the mutex factory: skips init,
	// mutex.init and NewMutex.
	p.created = backtrace.Capture(3)
}

// begin takes the timestamp just before the blocking acquire.
func (p *profiler) begin() time.Time {
	return profClock.Now()
}

// end charges the time since begin to the mutex.
func (p *profiler) end(start time.Time) {
	p.waited += profClock.Since(start)
}

// report emits the accumulated wait and the creation site if the mutex
// crossed the reporting threshold, then drops the trace. Called exactly
// once, from Destroy.
func (p *profiler) report() {
	if p.waited > profileThreshold {
		log.Warn().
			Dur("waited", p.waited).
			Str("created_at", p.created.Format()).
			Msg("contended mutex destroyed")
	}
	p.created = nil
}
