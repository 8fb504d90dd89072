package cache

import "database/sql"

// StmtCache keeps prepared statements keyed by SQL text.
// Statements leaving the cache are closed.
type StmtCache = LRU[*sql.Stmt]

// NewStmtCache creates a statement cache with the given capacity.
func NewStmtCache(capacity int) *StmtCache {
	return NewLRU(capacity, func(_ string, stmt *sql.Stmt) {
		_ = stmt.Close() // Best effort close.
	})
}
