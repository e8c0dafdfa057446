package byteman

import "time"

const (
	defaultNamespace   = "byteman"
	defaultTTL         = 10 * time.Minute
	defaultMinMemoSize = 64
)

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
