package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/coregx/qbuild/internal/dialects"
)

// Operator is a comparison operator emitted verbatim into SQL.
type Operator string

// Supported comparison operators.
const (
	OpEquals          Operator = "="
	OpGreaterThan     Operator = ">"
	OpLessThan        Operator = "<"
	OpGreaterOrEquals Operator = ">="
	OpLessOrEquals    Operator = "<="
	OpNotEquals       Operator = "!="
	OpLike            Operator = "LIKE"
	OpIn              Operator = "IN"
)

// Valid reports whether op is one of the supported operators.
func (op Operator) Valid() bool {
	switch op {
	case OpEquals, OpGreaterThan, OpLessThan, OpGreaterOrEquals,
		OpLessOrEquals, OpNotEquals, OpLike, OpIn:
		return true
	}
	return false
}

// Term is a single column comparison contributing one WHERE term.
//
// A Term with an empty Op is the bare form and compares with "=". Value is
// expected to be a string, a number, a []string, a number slice, or nil;
// it is bound as a single parameter and never inlined into the SQL text.
type Term struct {
	Column string
	Op     Operator
	Value  any
}

// Operator returns the effective operator of the term.
func (t Term) Operator() Operator {
	if t.Op == "" {
		return OpEquals
	}
	return t.Op
}

// Bare creates an equality term in its bare form.
func Bare(column string, value any) Term {
	return Term{Column: column, Value: value}
}

// Compare creates a term with an explicit operator.
func Compare(column string, op Operator, value any) Term {
	return Term{Column: column, Op: op, Value: value}
}

// Eq creates a "column = value" term.
func Eq(column string, value any) Term { return Compare(column, OpEquals, value) }

// NotEq creates a "column != value" term.
func NotEq(column string, value any) Term { return Compare(column, OpNotEquals, value) }

// GreaterThan creates a "column > value" term.
func GreaterThan(column string, value any) Term { return Compare(column, OpGreaterThan, value) }

// LessThan creates a "column < value" term.
func LessThan(column string, value any) Term { return Compare(column, OpLessThan, value) }

// GreaterOrEqual creates a "column >= value" term.
func GreaterOrEqual(column string, value any) Term {
	return Compare(column, OpGreaterOrEquals, value)
}

// LessOrEqual creates a "column <= value" term.
func LessOrEqual(column string, value any) Term { return Compare(column, OpLessOrEquals, value) }

// Like creates a "column LIKE value" term. The pattern is bound as-is.
func Like(column string, pattern string) Term { return Compare(column, OpLike, pattern) }

// In creates a "column IN value" term. The whole sequence is bound to one
// placeholder; it is not expanded into a value list. On PostgreSQL the
// sequence is sent as an array parameter.
func In(column string, values any) Term { return Compare(column, OpIn, values) }

// Condition is an ordered list of terms joined with AND.
// Order determines placeholder numbering.
type Condition []Term

// Where builds a condition from terms, preserving their order.
func Where(terms ...Term) Condition {
	return Condition(terms)
}

// HashCondition builds a condition of bare equality terms from a map.
// Keys are sorted so the rendered SQL is deterministic.
func HashCondition(m map[string]any) Condition {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cond := make(Condition, 0, len(keys))
	for _, k := range keys {
		cond = append(cond, Bare(k, m[k]))
	}
	return cond
}

// And returns a copy of c with terms appended.
func (c Condition) And(terms ...Term) Condition {
	out := make(Condition, 0, len(c)+len(terms))
	out = append(out, c...)
	return append(out, terms...)
}

// Validate checks every operator against the supported set.
func (c Condition) Validate() error {
	for _, t := range c {
		if t.Op != "" && !t.Op.Valid() {
			return fmt.Errorf("%w: %q on column %q", ErrInvalidOperator, t.Op, t.Column)
		}
	}
	return nil
}

// Render produces the WHERE fragment and its parameters. An empty condition
// renders as "" with no parameters; otherwise the fragment starts with
// "WHERE " and the i-th term uses placeholder i.
func (c Condition) Render(d dialects.Dialect) (string, []any) {
	sql, params, _ := c.render(d)
	return sql, params
}

// render also returns the column bound to each parameter.
func (c Condition) render(d dialects.Dialect) (string, []any, []string) {
	if len(c) == 0 {
		return "", nil, nil
	}

	parts := make([]string, len(c))
	params := make([]any, len(c))
	columns := make([]string, len(c))
	for i, t := range c {
		parts[i] = d.QuoteIdentifier(t.Column) + " " + string(t.Operator()) + " " + d.Placeholder(i+1)
		params[i] = t.Value
		columns[i] = t.Column
	}
	return "WHERE " + strings.Join(parts, " AND "), params, columns
}
