package tank

import (
	"database/sql"
	"sync"
)

// PreparedCache keeps prepared statement handles per connection, keyed by
// statement text. Preparing happens outside the lock, so two goroutines
// may race to insert the same statement; the loser's handle is closed and
// the winner is shared.
type PreparedCache struct {
	mu    sync.RWMutex
	stmts map[string]*Prepared
}

// NewPreparedCache returns an empty cache.
func NewPreparedCache() *PreparedCache {
	return &PreparedCache{stmts: make(map[string]*Prepared)}
}

// Get returns the cached statement for the SQL text, if any.
func (c *PreparedCache) Get(sql string) (*Prepared, bool) {
	c.mu.RLock()
	p, ok := c.stmts[sql]
	c.mu.RUnlock()
	return p, ok
}

// Promote inserts a freshly prepared handle. When another goroutine got
// there first, the fresh handle is closed and the cached one returned.
func (c *PreparedCache) Promote(sql string, stmt *sql.Stmt) *Prepared {
	p := &Prepared{sql: sql, stmt: stmt}
	c.mu.Lock()
	if existing, ok := c.stmts[sql]; ok {
		c.mu.Unlock()
		stmt.Close()
		return existing
	}
	c.stmts[sql] = p
	c.mu.Unlock()
	return p
}

// Len returns the number of cached statements.
func (c *PreparedCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.stmts)
}

// Close releases every cached handle. The first close error wins.
func (c *PreparedCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var first error
	for _, p := range c.stmts {
		if err := p.Close(); err != nil && first == nil {
			first = err
		}
	}
	c.stmts = make(map[string]*Prepared)
	return first
}
