package core

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/coregx/qbuild/internal/security"
	"github.com/coregx/qbuild/internal/tracer"
)

// Query is a rendered statement: SQL text plus its ordered parameters.
// The i-th parameter belongs to the i-th placeholder.
type Query struct {
	sql     string
	params  []any
	columns []string // column bound to each parameter, for log masking
	table   string
	client  *Client
	ctx     context.Context
}

// SQL returns the statement text.
func (q *Query) SQL() string {
	return q.sql
}

// Params returns a copy of the bound parameters in placeholder order.
func (q *Query) Params() []any {
	out := make([]any, len(q.params))
	copy(out, q.params)
	return out
}

// String returns the statement text.
func (q *Query) String() string {
	return q.sql
}

// WithContext sets the context used by Execute and All.
func (q *Query) WithContext(ctx context.Context) *Query {
	q.ctx = ctx
	return q
}

// Execute runs a statement that returns no rows.
// Driver errors are returned unchanged.
func (q *Query) Execute() (sql.Result, error) {
	c := q.client
	ctx := q.context()
	if err := c.ready(ctx); err != nil {
		return nil, err
	}

	op := tracer.DetectOperation(q.sql)
	ctx, span := c.tracer.StartSpan(ctx, spanName(op))
	defer span.End()

	start := time.Now()
	var result sql.Result
	var err error
	if changesSchema(q.sql) {
		result, err = c.sqlDB.ExecContext(ctx, q.sql, q.args()...)
		if err == nil {
			// Cached statements may describe the old schema.
			c.stmtCache.Purge()
		}
	} else {
		var stmt *sql.Stmt
		stmt, err = c.prepare(ctx, q.sql)
		if err == nil {
			result, err = stmt.ExecContext(ctx, q.args()...)
		}
	}

	var affected int64
	if err == nil && result != nil {
		affected, _ = result.RowsAffected()
	}
	q.finish(ctx, span, op, time.Since(start), 0, affected, err)
	return result, err
}

// All runs a statement and returns every row it produces.
// Driver errors are returned unchanged.
func (q *Query) All() ([]Row, error) {
	c := q.client
	ctx := q.context()
	if err := c.ready(ctx); err != nil {
		return nil, err
	}

	op := tracer.DetectOperation(q.sql)
	ctx, span := c.tracer.StartSpan(ctx, spanName(op))
	defer span.End()

	start := time.Now()
	rows, err := q.fetch(ctx)
	q.finish(ctx, span, op, time.Since(start), len(rows), 0, err)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (q *Query) fetch(ctx context.Context) ([]Row, error) {
	stmt, err := q.client.prepare(ctx, q.sql)
	if err != nil {
		return nil, err
	}
	rows, err := stmt.QueryContext(ctx, q.args()...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanRows(rows)
}

// finish logs, traces, audits and reports a completed statement.
func (q *Query) finish(ctx context.Context, span tracer.Span, op string, elapsed time.Duration, rows int, affected int64, err error) {
	c := q.client
	params := c.sanitizer.FormatParams(c.sanitizer.MaskParams(q.columns, q.params))

	if err != nil {
		c.logger.Error("statement failed",
			"sql", q.sql,
			"params", params,
			"duration_ms", elapsed.Milliseconds(),
			"table", q.table,
			"database", c.dialect.Name(),
			"error", err,
		)
	} else {
		c.logger.Info("statement executed",
			"sql", q.sql,
			"params", params,
			"duration_ms", elapsed.Milliseconds(),
			"rows", rows,
			"rows_affected", affected,
			"table", q.table,
			"database", c.dialect.Name(),
		)
	}

	tracer.Annotate(span, &tracer.Statement{
		System:       c.dialect.Name(),
		SQL:          q.sql,
		Table:        q.table,
		Operation:    op,
		Params:       len(q.params),
		Rows:         rows,
		RowsAffected: affected,
		Duration:     elapsed,
		Err:          err,
	})

	if c.auditor != nil {
		c.auditor.Record(ctx, security.Entry{
			Operation:    op,
			Table:        q.table,
			SQL:          q.sql,
			Params:       q.params,
			RowsAffected: affected,
			Duration:     elapsed,
			Err:          err,
		})
	}

	c.invokeHook(ctx, QueryEvent{
		SQL:          q.sql,
		Args:         q.params,
		Table:        q.table,
		Operation:    op,
		Duration:     elapsed,
		Rows:         rows,
		RowsAffected: affected,
		Error:        err,
	})
}

// args converts parameters into driver values for the client's dialect.
func (q *Query) args() []any {
	out := make([]any, len(q.params))
	for i, p := range q.params {
		out[i] = q.client.dialect.BindValue(p)
	}
	return out
}

func (q *Query) context() context.Context {
	if q.ctx == nil {
		return context.Background()
	}
	return q.ctx
}

// schemaVerbs start statements that change table definitions.
var schemaVerbs = []string{"CREATE", "DROP", "ALTER", "RENAME", "TRUNCATE"}

// changesSchema reports whether sql changes table definitions. Such
// statements are never prepared, and a successful one empties the statement
// cache.
func changesSchema(sql string) bool {
	upper := strings.ToUpper(strings.TrimSpace(sql))
	for _, verb := range schemaVerbs {
		if strings.HasPrefix(upper, verb) {
			return true
		}
	}
	return false
}

func spanName(op string) string {
	return "qbuild." + strings.ToLower(op)
}
