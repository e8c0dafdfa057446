// Package epoch tracks the memo epoch of each converter namespace.
//
// Every memo key embeds the namespace epoch. Bumping it makes all earlier
// entries unreachable at once; they are left for the store to expire.
package epoch

import "context"

// Store abstracts where epochs live.
// Use Local (default) for one process, or Redis when several processes share
// a memo store and must purge together.
type Store interface {
	// Current returns the epoch of ns; missing => 0.
	Current(ctx context.Context, ns string) (uint64, error)
	// Bump atomically increments and returns the new epoch.
	Bump(ctx context.Context, ns string) (uint64, error)
	// Close releases resources (no-op ok).
	Close(context.Context) error
}
