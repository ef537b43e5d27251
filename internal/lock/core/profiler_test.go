//go:build lockprofiler

package core

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolkov/synckit/internal/lock/backtrace"
)

// contend runs cycles of holder-sleeps-while-contender-waits against m,
// injecting roughly delay of blocked time per cycle.
func contend(t *testing.T, m Mutex, cycles int, delay time.Duration) {
	t.Helper()

	for i := 0; i < cycles; i++ {
		m.Lock()

		blocked := make(chan struct{})
		released := make(chan struct{})
		go func() {
			close(blocked)
			m.Lock()
			m.Unlock()
			close(released)
		}()

		<-blocked
		// Hold past the injected delay so the contender, however late it
		// reached its acquire, blocks for at least delay.
		time.Sleep(delay + 10*time.Millisecond)
		m.Unlock()
		<-released
	}
}

// TestProfilerAccumulatesContendedWait injects a known delay per contended
// cycle and checks the accumulated wait is bounded below by cycles×delay.
func TestProfilerAccumulatesContendedWait(t *testing.T) {
	const (
		cycles = 3
		delay  = 20 * time.Millisecond
	)

	buf := captureLog(t)

	m := NewMutex(MutexTypeDefault)
	contend(t, m, cycles, delay)

	pm := m.(*mutex)
	assert.GreaterOrEqual(t, pm.prof.waited, time.Duration(cycles)*delay,
		"accumulated wait below the injected contention")

	m.Destroy()
	assert.Contains(t, buf.String(), "contended mutex destroyed")
	assert.Contains(t, buf.String(), "created_at")
	assert.Contains(t, buf.String(), "TestProfilerAccumulatesContendedWait",
		"report should carry the creation site")
}

// TestProfilerSilentWhenUncontended verifies an uncontended lock stays
// below the reporting threshold and destroy emits nothing.
func TestProfilerSilentWhenUncontended(t *testing.T) {
	buf := captureLog(t)

	m := NewMutex(MutexTypeDefault)
	for i := 0; i < 100; i++ {
		m.Lock()
		m.Unlock()
	}
	m.Destroy()

	assert.Empty(t, buf.String(), "uncontended mutex reported at destroy")
}

// TestProfilerSampling pins the clock and verifies begin/end charge
// exactly the elapsed fake time, including a zero-length sample for an
// immediate acquire.
func TestProfilerSampling(t *testing.T) {
	fc := clockwork.NewFakeClock()
	old := profClock
	profClock = fc
	t.Cleanup(func() { profClock = old })

	p := &profiler{}

	start := p.begin()
	fc.Advance(5 * time.Millisecond)
	p.end(start)
	assert.Equal(t, 5*time.Millisecond, p.waited)

	// Immediate acquire: sampled all the same, contributes zero.
	start = p.begin()
	p.end(start)
	assert.Equal(t, 5*time.Millisecond, p.waited)
}

// TestProfilerReportThreshold checks the 1000µs reporting cutoff from both
// sides.
func TestProfilerReportThreshold(t *testing.T) {
	below := captureLog(t)
	p := &profiler{waited: 1000 * time.Microsecond, created: backtrace.Capture(0)}
	p.report()
	assert.Empty(t, below.String(), "wait at the threshold must not be reported")

	above := captureLog(t)
	p = &profiler{waited: 1001 * time.Microsecond, created: backtrace.Capture(0)}
	p.report()
	assert.Contains(t, above.String(), "contended mutex destroyed")
	require.Nil(t, p.created, "report must drop the trace")
}

func TestProfilingEnabledFlag(t *testing.T) {
	assert.True(t, ProfilingEnabled)
}
