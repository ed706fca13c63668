// internal/library/counters.go
package library

import "sync/atomic"

// Counters tracks how many books and members have ever been added across
// every Library sharing this instance. Pass one Counters to each Library so
// the sharing is explicit; nothing resets it implicitly.
type Counters struct {
	books   atomic.Int64
	members atomic.Int64
}

// NewCounters creates a zeroed counter set.
func NewCounters() *Counters {
	return &Counters{}
}

// Books returns the total number of books ever added.
func (c *Counters) Books() int { return int(c.books.Load()) }

// Members returns the total number of members ever added.
func (c *Counters) Members() int { return int(c.members.Load()) }

// Reset zeroes both totals. Intended for tests only.
func (c *Counters) Reset() {
	c.books.Store(0)
	c.members.Store(0)
}
