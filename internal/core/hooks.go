package core

import (
	"context"
	"time"
)

// QueryEvent describes one executed statement.
// It is passed to QueryHook callbacks for logging, metrics, or debugging.
type QueryEvent struct {
	// SQL is the executed statement.
	SQL string
	// Args are the bound parameters, unmasked.
	Args []any
	// Table is the table the statement was built for; empty for raw SQL.
	Table string
	// Operation is SELECT, INSERT, UPDATE, DELETE, CREATE, DROP or UNKNOWN.
	Operation string
	// Duration is how long the statement took.
	Duration time.Duration
	// Rows is the number of rows returned by a SELECT.
	Rows int
	// RowsAffected is reported for statements without a result set.
	RowsAffected int64
	// Error is the driver error, unchanged; nil on success.
	Error error
}

// QueryHook is a callback function invoked after each statement.
//
// Example:
//
//	client, _ := qbuild.Open("postgres", dsn,
//	    qbuild.WithQueryHook(func(ctx context.Context, e qbuild.QueryEvent) {
//	        slog.Info("statement", "sql", e.SQL, "duration", e.Duration, "err", e.Error)
//	    }))
type QueryHook func(ctx context.Context, event QueryEvent)

func (c *Client) invokeHook(ctx context.Context, event QueryEvent) {
	if c.queryHook != nil {
		c.queryHook(ctx, event)
	}
}
