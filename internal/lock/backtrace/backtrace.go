// Package backtrace captures bounded call-stack snapshots for lock
// diagnostics.
//
// Each profiled lock records the call stack of its construction site. The
// snapshot is owned exclusively by the lock that captured it and is
// formatted at most once, when the lock is destroyed with enough
// accumulated contention to be worth reporting.
//
// Design:
//   - Fixed-size traces (8 frames, 64 bytes). Most creation sites are
//     identifiable within the top 8 frames.
//   - Capture is cheap (runtime.Callers only); symbolization via
//     runtime.CallersFrames is deferred to Format, which runs only on the
//     rare reporting path.
package backtrace

import (
	"fmt"
	"runtime"
	"strings"
)

// MaxFrames is the maximum number of stack frames captured per trace.
const MaxFrames = 8

// Trace is a fixed-size snapshot of program counters.
type Trace struct {
	pc [MaxFrames]uintptr
	n  int
}

// Capture records the current call stack and returns the snapshot.
//
// skip is the number of frames to omit beyond Capture itself: Capture(0)
// starts the trace at Capture's caller. Returns nil if no frames are
// available.
func Capture(skip int) *Trace {
	t := &Trace{}
	// +2 skips runtime.Callers and Capture.
	t.n = runtime.Callers(skip+2, t.pc[:])
	if t.n == 0 {
		return nil
	}
	return t
}

// Format symbolizes the trace for a diagnostic report.
//
// Output format, one frame per pair of lines:
//
//	  main.newWorker()
//	      /path/to/worker.go:45
//
// Runtime-internal frames are filtered out. Symbolization is relatively
// slow (~10µs) and is intended for the reporting path only.
func (t *Trace) Format() string {
	if t == nil || t.n == 0 {
		return "  <unknown>\n"
	}

	frames := runtime.CallersFrames(t.pc[:t.n])

	var buf strings.Builder
	for {
		frame, more := frames.Next()
		if frame.PC == 0 {
			break
		}
		if strings.HasPrefix(frame.Function, "runtime.") {
			if !more {
				break
			}
			continue
		}

		fmt.Fprintf(&buf, "  %s()\n", frame.Function)
		fmt.Fprintf(&buf, "      %s:%d\n", frame.File, frame.Line)

		if !more {
			break
		}
	}

	out := buf.String()
	if out == "" {
		return "  <runtime internal>\n"
	}
	return out
}
