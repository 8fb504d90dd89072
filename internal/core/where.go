package core

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/coregx/qbuild/internal/dialects"
)

// Alias maps a source column to an output name in a SELECT projection.
type Alias struct {
	Source string
	Name   string
}

// WhereQuery accumulates the state of one table-scoped statement: its
// condition, LIMIT, OFFSET, ORDER BY and column aliases. Chained calls mutate
// the query in place; a WhereQuery is meant for a single owner and may be
// reused after a terminal operation.
//
// Example:
//
//	rows, err := client.Where("users", qbuild.Where(
//	    qbuild.Eq("status", "active"),
//	    qbuild.GreaterThan("age", 18),
//	)).
//	    With("name").As("display_name").
//	    Order(qbuild.OrderBy{Column: "age", Direction: qbuild.Desc}).
//	    Limit(10).
//	    Select("id")
type WhereQuery struct {
	client    *Client
	table     string
	condition Condition
	limit     *int64
	offset    *int64
	order     *OrderBy
	aliases   []Alias
	pending   *string
	err       error
	ctx       context.Context
}

// WithContext sets the context used by the terminal operations.
func (q *WhereQuery) WithContext(ctx context.Context) *WhereQuery {
	q.ctx = ctx
	return q
}

// Limit sets LIMIT. The last call wins.
func (q *WhereQuery) Limit(n int64) *WhereQuery {
	q.limit = &n
	return q
}

// Offset sets OFFSET. The last call wins.
func (q *WhereQuery) Offset(n int64) *WhereQuery {
	q.offset = &n
	return q
}

// Order replaces the ORDER BY clause.
func (q *WhereQuery) Order(by OrderBy) *WhereQuery {
	q.order = &by
	return q
}

// OrderBy replaces the ORDER BY clause with a bare column.
func (q *WhereQuery) OrderBy(column string) *WhereQuery {
	return q.Order(By(column))
}

// With starts an alias declaration that As completes:
//
//	q.With("created_at").As("created")
//
// Calling With while another With is pending records ErrInvalidSequence
// and keeps the first pending column.
func (q *WhereQuery) With(column string) *WhereQuery {
	if q.pending != nil {
		q.fail(fmt.Errorf("%w: With(%q) called before As() for %q", ErrInvalidSequence, column, *q.pending))
		return q
	}
	q.pending = &column
	return q
}

// As completes the pending alias declaration. Without a pending With it
// records ErrInvalidSequence and changes nothing.
func (q *WhereQuery) As(alias string) *WhereQuery {
	if q.pending == nil {
		q.fail(fmt.Errorf("%w: As(%q) called without With()", ErrInvalidSequence, alias))
		return q
	}
	q.aliases = append(q.aliases, Alias{Source: *q.pending, Name: alias})
	q.pending = nil
	return q
}

// Err returns the first fluent-protocol error recorded on the query.
func (q *WhereQuery) Err() error {
	return q.err
}

func (q *WhereQuery) fail(err error) {
	if q.err == nil {
		q.err = err
	}
}

// check returns the recorded error or a validation error, if any.
func (q *WhereQuery) check() error {
	if q.err != nil {
		return q.err
	}
	if err := q.condition.Validate(); err != nil {
		return err
	}
	if q.order != nil {
		return q.order.Validate()
	}
	return nil
}

func (q *WhereQuery) dialect() dialects.Dialect {
	return q.client.dialect
}

// projection renders the SELECT column list. Explicit columns come first,
// followed by aliases; without explicit columns the list is "*" or, when
// aliases exist, the aliases alone.
func (q *WhereQuery) projection(columns []string) string {
	d := q.dialect()
	parts := make([]string, 0, len(columns)+len(q.aliases))
	for _, c := range columns {
		parts = append(parts, d.QuoteIdentifier(c))
	}
	for _, a := range q.aliases {
		parts = append(parts, d.QuoteIdentifier(a.Source)+" AS "+d.QuoteIdentifier(a.Name))
	}
	if len(parts) == 0 {
		return "*"
	}
	return strings.Join(parts, ", ")
}

// BuildSelect renders the SELECT statement without executing it.
func (q *WhereQuery) BuildSelect(columns ...string) (*Query, error) {
	if err := q.check(); err != nil {
		return nil, err
	}

	d := q.dialect()
	where, params, bound := q.condition.render(d)

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(q.projection(columns))
	sb.WriteString(" FROM ")
	sb.WriteString(d.QuoteIdentifier(q.table))
	if where != "" {
		sb.WriteString(" ")
		sb.WriteString(where)
	}
	if q.order != nil {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(q.order.render(d))
	}
	if q.limit != nil {
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.FormatInt(*q.limit, 10))
	}
	if q.offset != nil {
		sb.WriteString(" OFFSET ")
		sb.WriteString(strconv.FormatInt(*q.offset, 10))
	}

	return q.newQuery(sb.String(), params, bound), nil
}

// BuildUpdate renders the UPDATE statement without executing it.
//
// Condition parameters are bound first and SET placeholders continue the
// numbering after them, so on PostgreSQL a one-term condition yields
// `UPDATE "t" SET "name" = $2 WHERE "id" = $1`. Dialects with anonymous "?"
// placeholders bind in textual order instead (SET values, then condition).
func (q *WhereQuery) BuildUpdate(changes Record) (*Query, error) {
	if err := q.check(); err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return nil, ErrEmptyChangeSet
	}

	d := q.dialect()
	where, whereParams, whereCols := q.condition.render(d)

	sets := make([]string, len(changes))
	setParams := make([]any, len(changes))
	setCols := make([]string, len(changes))
	for i, f := range changes {
		sets[i] = d.QuoteIdentifier(f.Column) + " = " + d.Placeholder(len(whereParams)+i+1)
		setParams[i] = f.Value
		setCols[i] = f.Column
	}

	sql := "UPDATE " + d.QuoteIdentifier(q.table) + " SET " + strings.Join(sets, ", ")
	if where != "" {
		sql += " " + where
	}

	var params []any
	var bound []string
	if dialects.IsNumbered(d) {
		params = append(whereParams, setParams...)
		bound = append(whereCols, setCols...)
	} else {
		params = append(setParams, whereParams...)
		bound = append(setCols, whereCols...)
	}
	return q.newQuery(sql, params, bound), nil
}

// BuildDelete renders the DELETE statement without executing it.
func (q *WhereQuery) BuildDelete() (*Query, error) {
	if err := q.check(); err != nil {
		return nil, err
	}

	d := q.dialect()
	where, params, bound := q.condition.render(d)

	sql := "DELETE FROM " + d.QuoteIdentifier(q.table)
	if where != "" {
		sql += " " + where
	}
	return q.newQuery(sql, params, bound), nil
}

// Select executes the SELECT statement and returns its rows unmodified.
func (q *WhereQuery) Select(columns ...string) ([]Row, error) {
	query, err := q.BuildSelect(columns...)
	if err != nil {
		return nil, err
	}
	return query.All()
}

// Update executes the UPDATE statement and returns the query for reuse.
func (q *WhereQuery) Update(changes Record) (*WhereQuery, error) {
	query, err := q.BuildUpdate(changes)
	if err != nil {
		return q, err
	}
	_, err = query.Execute()
	return q, err
}

// Delete executes the DELETE statement and returns the query for reuse.
func (q *WhereQuery) Delete() (*WhereQuery, error) {
	query, err := q.BuildDelete()
	if err != nil {
		return q, err
	}
	_, err = query.Execute()
	return q, err
}

func (q *WhereQuery) newQuery(sql string, params []any, columns []string) *Query {
	return &Query{
		sql:     sql,
		params:  params,
		columns: columns,
		table:   q.table,
		client:  q.client,
		ctx:     q.ctx,
	}
}
