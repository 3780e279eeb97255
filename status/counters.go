package status

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
)

// Counters is a set of named activity counters
// Callers may cache the pointer from Get; increments are lock-free after that
type Counters struct {
	mu    sync.RWMutex
	items map[string]*atomic.Int64
}

// NewCounters creates an empty set
func NewCounters() *Counters {
	return &Counters{items: make(map[string]*atomic.Int64)}
}

// Get returns the counter for name, creating it at zero if absent
func (c *Counters) Get(name string) *atomic.Int64 {
	c.mu.RLock()
	if ptr, ok := c.items[name]; ok {
		c.mu.RUnlock()
		return ptr
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if ptr, ok := c.items[name]; ok {
		return ptr
	}
	ptr := new(atomic.Int64)
	c.items[name] = ptr
	return ptr
}

// Inc adds one to name
func (c *Counters) Inc(name string) {
	c.Get(name).Add(1)
}

// Value reads name without creating it
func (c *Counters) Value(name string) int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if ptr, ok := c.items[name]; ok {
		return ptr.Load()
	}
	return 0
}

// Range visits every counter in name order
func (c *Counters) Range(fn func(name string, value int64)) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.items))
	for k := range c.items {
		names = append(names, k)
	}
	slices.Sort(names)
	for _, k := range names {
		fn(k, c.items[k].Load())
	}
}

// Count returns the number of counters
func (c *Counters) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// String formats the set as "a=1 b=2" in name order
func (c *Counters) String() string {
	var sb strings.Builder
	c.Range(func(name string, value int64) {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s=%d", name, value)
	})
	return sb.String()
}
