package dialects

// SQLiteDialect implements SQLite-specific SQL dialect.
type SQLiteDialect struct{}

func init() {
	RegisterDialect("sqlite", &SQLiteDialect{})
	RegisterDialect("sqlite3", &SQLiteDialect{})
}

// Name returns "sqlite".
func (d *SQLiteDialect) Name() string {
	return "sqlite"
}

// QuoteIdentifier quotes a SQLite identifier using double quotes.
func (d *SQLiteDialect) QuoteIdentifier(s string) string {
	return Quote(s, '"')
}

// NumberedPlaceholders returns false; "?" binds in textual order.
func (d *SQLiteDialect) NumberedPlaceholders() bool {
	return false
}

// Placeholder returns SQLite placeholder format (always "?").
func (d *SQLiteDialect) Placeholder(_ int) string {
	return "?"
}

// BindValue returns v unchanged.
func (d *SQLiteDialect) BindValue(v any) any {
	return v
}
