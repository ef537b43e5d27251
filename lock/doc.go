// Package lock provides thread-synchronization primitives: a plain
// exclusive mutex, a recursive mutex, and a condition variable with timed
// wait.
//
// # Quick Start
//
//	mu := lock.NewMutex(lock.MutexTypeDefault)
//	defer mu.Destroy()
//
//	mu.Lock()
//	// critical section
//	mu.Unlock()
//
// A recursive mutex may be reacquired by the goroutine that already holds
// it; nested acquires are counted and released symmetrically:
//
//	mu := lock.NewMutex(lock.MutexTypeRecursive)
//	defer mu.Destroy()
//
//	mu.Lock()
//	mu.Lock()   // same goroutine, does not block
//	mu.Unlock()
//	mu.Unlock() // lock becomes available here
//
// A condition variable suspends a goroutine that holds a mutex, releasing
// the mutex for the duration of the wait and reacquiring it before the
// wait returns. Callers recheck their predicate in a loop, the standard
// condition-variable discipline:
//
//	mu := lock.NewMutex(lock.MutexTypeDefault)
//	cv := lock.NewCondVar(lock.CondVarTypeDefault)
//
//	mu.Lock()
//	for !ready {
//		cv.Wait(mu)
//	}
//	mu.Unlock()
//
// # Contracts
//
// These are blocking primitives, and their misuse is a bug in the caller
// rather than an error the caller could handle: no method returns an
// error. Unlocking a mutex that is not held, unlocking another goroutine's
// recursive mutex, or waiting on a condition variable without holding the
// mutex is reported through the process-wide zerolog logger and execution
// continues best-effort. TimedWait's boolean result is the one ordinary
// outcome callers branch on: true means the timeout elapsed before a
// signal.
//
// No fairness or wake-order guarantee is made between goroutines blocked
// on the same mutex or condition variable.
//
// # Lifecycle
//
// Every Mutex and CondVar is created by a factory and must be destroyed
// exactly once by its owner, with no concurrent or subsequent use.
//
// # Contention profiling
//
// Builds with the lockprofiler tag record, per mutex, the cumulative time
// goroutines spent blocked acquiring it and the call site that created it.
// Destroying a mutex that accumulated more than 1ms of wait logs the total
// and the creation site. Default builds compile the hooks away entirely;
// GetInfo reports which build is running.
package lock
