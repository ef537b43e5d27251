package lock

import internal "github.com/kolkov/synckit/internal/lock/core"

// Version information for the synckit lock library.
const (
	// Version is the current version of the library.
	Version = "0.1.0"

	// VersionMajor is the major version number.
	VersionMajor = 0

	// VersionMinor is the minor version number.
	VersionMinor = 1

	// VersionPatch is the patch version number.
	VersionPatch = 0
)

// Info provides build information about the library.
type Info struct {
	// Version is the library version string.
	Version string

	// Profiling indicates whether this build carries the contention
	// profiler (built with the lockprofiler tag).
	Profiling bool
}

// GetInfo returns information about the library build.
//
// Example:
//
//	info := lock.GetInfo()
//	fmt.Printf("synckit %s (profiling: %v)\n", info.Version, info.Profiling)
func GetInfo() Info {
	return Info{
		Version:   Version,
		Profiling: internal.ProfilingEnabled,
	}
}
