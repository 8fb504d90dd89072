package dialects

// MySQLDialect implements MySQL-specific SQL dialect.
type MySQLDialect struct{}

func init() {
	RegisterDialect("mysql", &MySQLDialect{})
}

// Name returns "mysql".
func (d *MySQLDialect) Name() string {
	return "mysql"
}

// QuoteIdentifier quotes a MySQL identifier using backticks.
func (d *MySQLDialect) QuoteIdentifier(s string) string {
	return Quote(s, '`')
}

// NumberedPlaceholders returns false; "?" binds in textual order.
func (d *MySQLDialect) NumberedPlaceholders() bool {
	return false
}

// Placeholder returns MySQL placeholder format (always "?").
func (d *MySQLDialect) Placeholder(_ int) string {
	return "?"
}

// BindValue returns v unchanged; MySQL has no array parameters.
func (d *MySQLDialect) BindValue(v any) any {
	return v
}
