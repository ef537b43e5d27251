package lock_test

import (
	"fmt"

	"github.com/kolkov/synckit/lock"
)

// Example demonstrates basic mutual exclusion with a plain mutex.
func Example() {
	mu := lock.NewMutex(lock.MutexTypeDefault)
	defer mu.Destroy()

	counter := 0

	mu.Lock()
	counter++
	mu.Unlock()

	fmt.Println(counter)

	// Output:
	// 1
}

// Example_recursive demonstrates reentrant locking through a call chain.
func Example_recursive() {
	mu := lock.NewMutex(lock.MutexTypeRecursive)
	defer mu.Destroy()

	var leaf func(depth int)
	leaf = func(depth int) {
		mu.Lock()
		defer mu.Unlock()
		if depth > 0 {
			leaf(depth - 1) // reenters without blocking
		}
	}

	leaf(3)
	fmt.Println("done")

	// Output:
	// done
}

// Example_condVar demonstrates the wait/signal handshake. The waiting
// goroutine rechecks its predicate in a loop, so a stray wakeup is
// harmless.
func Example_condVar() {
	mu := lock.NewMutex(lock.MutexTypeDefault)
	cv := lock.NewCondVar(lock.CondVarTypeDefault)
	defer mu.Destroy()
	defer cv.Destroy()

	ready := false
	done := make(chan struct{})

	go func() {
		mu.Lock()
		for !ready {
			cv.Wait(mu)
		}
		mu.Unlock()
		close(done)
	}()

	mu.Lock()
	ready = true
	cv.Signal()
	mu.Unlock()

	<-done
	fmt.Println("signaled")

	// Output:
	// signaled
}
