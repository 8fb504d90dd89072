package core

import (
	"fmt"

	"github.com/coregx/qbuild/internal/dialects"
)

// Direction is the ORDER BY sort direction.
type Direction string

// Sort directions.
const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// NullsOrder places NULLs first or last in ORDER BY.
type NullsOrder string

// Nulls placement options.
const (
	NullsFirst NullsOrder = "NULLS FIRST"
	NullsLast  NullsOrder = "NULLS LAST"
)

// OrderBy describes an ORDER BY clause on a single column.
// Zero Direction and Nulls are omitted from the SQL.
type OrderBy struct {
	Column    string
	Direction Direction
	Nulls     NullsOrder
}

// By orders by column with the database defaults.
func By(column string) OrderBy {
	return OrderBy{Column: column}
}

// Validate rejects directions and nulls options outside the known set.
func (o OrderBy) Validate() error {
	switch o.Direction {
	case "", Asc, Desc:
	default:
		return fmt.Errorf("%w: direction %q", ErrInvalidOrder, o.Direction)
	}
	switch o.Nulls {
	case "", NullsFirst, NullsLast:
	default:
		return fmt.Errorf("%w: nulls option %q", ErrInvalidOrder, o.Nulls)
	}
	return nil
}

func (o OrderBy) render(d dialects.Dialect) string {
	s := d.QuoteIdentifier(o.Column)
	if o.Direction != "" {
		s += " " + string(o.Direction)
	}
	if o.Nulls != "" {
		s += " " + string(o.Nulls)
	}
	return s
}
