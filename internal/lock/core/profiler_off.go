//go:build !lockprofiler

package core

import "time"

// ProfilingEnabled reports whether this build carries the contention
// profiler. Default builds do not.
const ProfilingEnabled = false

// profiler is a zero-size placeholder in non-profiling builds. Every
// method is an empty no-op the compiler erases, so the hooks in the lock
// paths cost nothing.
type profiler struct{}

func (profiler) init()            {}
func (profiler) begin() time.Time { return time.Time{} }
func (profiler) end(time.Time)    {}
func (profiler) report()          {}
