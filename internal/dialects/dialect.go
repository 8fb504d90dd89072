// Package dialects provides database-specific SQL dialect implementations for
// PostgreSQL, MySQL, and SQLite, handling identifier quoting, placeholders, and
// parameter conversion.
package dialects

import "sync"

// Dialect defines database-specific behaviors.
type Dialect interface {
	// Name returns the canonical dialect name (postgres, mysql, sqlite).
	Name() string
	// QuoteIdentifier quotes a table or column name.
	QuoteIdentifier(string) string
	// Placeholder returns the positional marker for the 1-based parameter index.
	Placeholder(int) string
	// NumberedPlaceholders reports whether placeholders carry their index
	// ($1, $2). Parameters then bind by index; otherwise (?) they bind in
	// the order the placeholders appear in the SQL text.
	NumberedPlaceholders() bool
	// BindValue converts a bound value into something the driver accepts.
	BindValue(any) any
}

var (
	mu       sync.RWMutex
	dialects = make(map[string]Dialect)
)

// RegisterDialect registers a database dialect by driver name.
func RegisterDialect(name string, d Dialect) {
	mu.Lock()
	defer mu.Unlock()
	dialects[name] = d
}

// LookupDialect retrieves a registered dialect by driver name.
func LookupDialect(name string) (Dialect, bool) {
	mu.RLock()
	defer mu.RUnlock()
	d, ok := dialects[name]
	return d, ok
}

// GetDialect retrieves a registered dialect by driver name, panics if not found.
func GetDialect(name string) Dialect {
	if d, ok := LookupDialect(name); ok {
		return d
	}
	panic("unsupported dialect: " + name)
}

// IsNumbered reports whether d uses numbered placeholders.
func IsNumbered(d Dialect) bool {
	return d.NumberedPlaceholders()
}
