package lock

import internal "github.com/kolkov/synckit/internal/lock/core"

// Mutex is an exclusive lock. See the package documentation for the
// locking contracts.
type Mutex = internal.Mutex

// CondVar is a condition variable usable with any Mutex from this package.
type CondVar = internal.CondVar

// MutexType selects the mutex variant produced by NewMutex.
type MutexType = internal.MutexType

// CondVarType selects the condition-variable variant produced by
// NewCondVar.
type CondVarType = internal.CondVarType

const (
	// MutexTypeDefault is a non-recursive exclusive lock. A goroutine that
	// already holds it and locks it again deadlocks.
	MutexTypeDefault = internal.MutexTypeDefault

	// MutexTypeRecursive is an exclusive lock the owning goroutine may
	// reacquire without blocking.
	MutexTypeRecursive = internal.MutexTypeRecursive

	// CondVarTypeDefault is the standard condition variable.
	CondVarTypeDefault = internal.CondVarTypeDefault
)

// NewMutex creates a mutex of the requested variant.
func NewMutex(t MutexType) Mutex {
	return internal.NewMutex(t)
}

// NewCondVar creates a condition variable of the requested variant.
func NewCondVar(t CondVarType) CondVar {
	return internal.NewCondVar(t)
}
