package sleepsort

import (
	"slices"
	"sync"
)

// Collector is a Callback that records values in invocation order.
// The zero value is ready to use and safe for concurrent invocation.
type Collector[T Value] struct {
	mu     sync.Mutex
	values []T
}

// Invoke appends v to the recorded values.
func (c *Collector[T]) Invoke(v T) {
	c.mu.Lock()
	c.values = append(c.values, v)
	c.mu.Unlock()
}

// Values returns a copy of the values recorded so far.
func (c *Collector[T]) Values() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.values)
}

// Len returns how many values were recorded.
func (c *Collector[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.values)
}
