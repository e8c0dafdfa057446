package byteman

import (
	"fmt"
	"strings"
	"time"

	"github.com/unkn0wn-root/byteman/epoch"
	pr "github.com/unkn0wn-root/byteman/provider"
)

// Options tune a Converter. The zero value is valid: no memo store, no
// logging, no hooks.
type Options struct {
	Logger Logger // if nil, NopLogger is used
	Hooks  Hooks  // if nil, NopHooks is used

	// Store memoizes conversion results. nil disables memoization.
	Store       pr.Provider
	Namespace   string        // key namespace inside Store; "" => "byteman"
	TTL         time.Duration // memo entry TTL; 0 => 10m
	MinMemoSize int           // framed inputs shorter than this are not memoized; 0 => 64

	// Epochs scopes memo keys so Purge can drop a namespace at once.
	// nil => epoch.NewLocal(). Share an epoch.Redis between processes that
	// share Store.
	Epochs epoch.Store
}

// New builds a Converter.
func New(opts Options) (*Converter, error) {
	if strings.Contains(opts.Namespace, ":") {
		return nil, fmt.Errorf("byteman: namespace %q must not contain ':'", opts.Namespace)
	}
	if opts.TTL < 0 {
		return nil, fmt.Errorf("byteman: negative TTL %s", opts.TTL)
	}
	if opts.MinMemoSize < 0 {
		return nil, fmt.Errorf("byteman: negative MinMemoSize %d", opts.MinMemoSize)
	}
	return newConverter(opts), nil
}
