//go:build !linux && !darwin

package platform

// DisableCoreDumps is a no-op on platforms without the core rlimit.
func DisableCoreDumps() error { return nil }
