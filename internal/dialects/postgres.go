package dialects

import (
	"strconv"

	"github.com/lib/pq"
)

// PostgresDialect implements PostgreSQL-specific SQL dialect.
type PostgresDialect struct{}

func init() {
	RegisterDialect("postgres", &PostgresDialect{})
	RegisterDialect("postgresql", &PostgresDialect{})
	RegisterDialect("pgx", &PostgresDialect{})
}

// Name returns "postgres".
func (d *PostgresDialect) Name() string {
	return "postgres"
}

// QuoteIdentifier quotes a PostgreSQL identifier using double quotes.
func (d *PostgresDialect) QuoteIdentifier(s string) string {
	return Quote(s, '"')
}

// NumberedPlaceholders returns true ($1, $2, ...).
func (d *PostgresDialect) NumberedPlaceholders() bool {
	return true
}

// Placeholder returns PostgreSQL placeholder format ($1, $2, etc.).
func (d *PostgresDialect) Placeholder(index int) string {
	return "$" + strconv.Itoa(index)
}

// BindValue wraps string and number slices as PostgreSQL arrays so that a
// whole sequence binds to a single placeholder (e.g. for IN).
func (d *PostgresDialect) BindValue(v any) any {
	switch v.(type) {
	case []string, []int, []int32, []int64, []float32, []float64, []bool, [][]byte:
		return pq.Array(v)
	}
	return v
}
