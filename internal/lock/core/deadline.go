package core

import "time"

// timespec is an absolute wall-clock deadline split into whole seconds and
// nanoseconds, the shape the timed wait computes in. nsec is always in
// [0, 1e9).
type timespec struct {
	sec  int64
	nsec int64
}

// absDeadline converts now plus a relative timeout into an absolute
// deadline. The nanosecond components of now and the timeout each sit
// below one second, so their sum overflows at most once and a single carry
// normalizes it.
func absDeadline(now time.Time, timeout time.Duration) timespec {
	ts := timespec{
		sec:  now.Unix(),
		nsec: int64(now.Nanosecond()),
	}

	ts.sec += int64(timeout / time.Second)
	ts.nsec += int64(timeout % time.Second)
	if ts.nsec >= int64(time.Second) {
		ts.nsec -= int64(time.Second)
		ts.sec++
	}
	return ts
}

// time converts the deadline back into a time.Time for the timer layer.
func (ts timespec) time() time.Time {
	return time.Unix(ts.sec, ts.nsec)
}
