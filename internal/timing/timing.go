// Package timing provides the scoped pass-duration counter the pass is
// specified against (spec §5, §6.5): entered once per run_preopt
// invocation, released on return.
//
// No third-party metrics/timing library appears anywhere in the example
// corpus this module was grounded on, so this is deliberately minimal
// standard-library code rather than an adapted dependency - see DESIGN.md.
package timing

import (
	"sync"
	"time"
)

// Counter accumulates the total time spent inside a named scope across
// every call, plus how many times the scope was entered.
type Counter struct {
	mu    sync.Mutex
	calls int64
	total time.Duration
}

var counters = struct {
	mu sync.Mutex
	m  map[string]*Counter
}{m: map[string]*Counter{}}

// Get returns the process-wide counter for name, creating it on first use.
func Get(name string) *Counter {
	counters.mu.Lock()
	defer counters.mu.Unlock()
	c, ok := counters.m[name]
	if !ok {
		c = &Counter{}
		counters.m[name] = c
	}
	return c
}

// Scope enters the named counter and returns a function that releases it;
// callers are expected to `defer timing.Scope("preopt")()`.
func Scope(name string) func() {
	start := time.Now()
	c := Get(name)
	return func() {
		elapsed := time.Since(start)
		c.mu.Lock()
		c.calls++
		c.total += elapsed
		c.mu.Unlock()
	}
}

// Calls reports how many times the counter has been entered.
func (c *Counter) Calls() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// Total reports the cumulative time spent inside the counter's scope.
func (c *Counter) Total() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}
