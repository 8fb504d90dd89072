package core

import (
	"database/sql"
	"strings"
)

// Row is one result row keyed by column name. Values are whatever the driver
// returns, except that textual []byte values are converted to string.
type Row map[string]any

// binaryTypes keep their []byte values.
var binaryTypes = map[string]bool{
	"BYTEA":      true,
	"BLOB":       true,
	"BINARY":     true,
	"VARBINARY":  true,
	"TINYBLOB":   true,
	"MEDIUMBLOB": true,
	"LONGBLOB":   true,
}

// scanRows reads every remaining row of rows.
func scanRows(rows *sql.Rows) ([]Row, error) {
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, WrapError(err, "reading result columns")
	}

	result := make([]Row, 0)
	values := make([]any, len(types))
	ptrs := make([]any, len(types))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, WrapError(err, "scanning row")
		}
		row := make(Row, len(types))
		for i, ct := range types {
			v := values[i]
			if b, ok := v.([]byte); ok {
				if binaryTypes[strings.ToUpper(ct.DatabaseTypeName())] {
					v = append([]byte(nil), b...)
				} else {
					v = string(b)
				}
			}
			row[ct.Name()] = v
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
