package byteman

// Hooks lightweight callbacks for high-signal Converter events.
// Implementations MUST be cheap and non-blocking.
// The converter calls them on hot paths.
type Hooks interface {
	// An operation rejected its argument. err matches ErrInvalidArgument.
	ArgumentRejected(op string, err error)

	// A memoized result was served from, or missing in, the store.
	MemoHit(op string)
	MemoMiss(op string)

	// A memo entry was deleted on read.
	// reason ∈ {"corrupt", "kind_mismatch"}
	SelfHealMemo(storageKey, reason string)

	// Provider returned ok=false on Set (backpressure/eviction).
	ProviderSetRejected(storageKey string)

	// Provider or epoch store returned an error.
	// action ∈ {"get", "set", "del", "epoch"}; for "epoch" the key is the namespace.
	ProviderError(action, storageKey string, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) ArgumentRejected(string, error)      {}
func (NopHooks) MemoHit(string)                      {}
func (NopHooks) MemoMiss(string)                     {}
func (NopHooks) SelfHealMemo(string, string)         {}
func (NopHooks) ProviderSetRejected(string)          {}
func (NopHooks) ProviderError(string, string, error) {}
