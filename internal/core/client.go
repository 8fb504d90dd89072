// Package core implements the statement builder: condition rendering,
// SELECT/UPDATE/DELETE assembly, table DDL and INSERT rendering, and the
// client that executes the rendered statements through database/sql.
package core

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coregx/qbuild/internal/cache"
	"github.com/coregx/qbuild/internal/dialects"
	"github.com/coregx/qbuild/internal/logger"
	"github.com/coregx/qbuild/internal/security"
	"github.com/coregx/qbuild/internal/tracer"
)

// Client executes rendered statements against a database and hands out
// table handles and WHERE builders.
type Client struct {
	sqlDB      *sql.DB
	driverName string
	dialect    dialects.Dialect
	stmtCache  *cache.StmtCache
	logger     logger.Logger
	sanitizer  *logger.Sanitizer
	tracer     tracer.Tracer
	queryHook  QueryHook
	validator  *security.Validator
	auditor    *security.Auditor

	// owned is true when the client opened sqlDB itself; such clients ping
	// once before their first statement and close sqlDB on Close.
	owned     bool
	readyMu   sync.Mutex
	readyDone bool
	readyErr  error
	closed    atomic.Bool
}

// readyTimeout bounds the readiness ping.
const readyTimeout = 30 * time.Second

// Open opens a database with the given driver and DSN.
// The connection is verified lazily, once, before the first statement.
func Open(driverName, dsn string, opts ...Option) (*Client, error) {
	d, ok := dialects.LookupDialect(driverName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDialect, driverName)
	}

	sqlDB, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}

	c := newClient(sqlDB, driverName, d, opts)
	c.owned = true
	return c, nil
}

// WrapDB wraps an existing *sql.DB. The caller keeps ownership of sqlDB:
// Close on the returned client does not close it, and no readiness ping
// is issued.
func WrapDB(sqlDB *sql.DB, driverName string, opts ...Option) (*Client, error) {
	d, ok := dialects.LookupDialect(driverName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDialect, driverName)
	}
	return newClient(sqlDB, driverName, d, opts), nil
}

func newClient(sqlDB *sql.DB, driverName string, d dialects.Dialect, opts []Option) *Client {
	c := &Client{
		sqlDB:      sqlDB,
		driverName: driverName,
		dialect:    d,
		stmtCache:  cache.NewStmtCache(cache.DefaultCapacity),
		logger:     logger.NoopLogger{},
		sanitizer:  logger.NewSanitizer(),
		tracer:     tracer.NoopTracer{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DB returns the underlying *sql.DB.
func (c *Client) DB() *sql.DB {
	return c.sqlDB
}

// DriverName returns the driver name the client was created with.
func (c *Client) DriverName() string {
	return c.driverName
}

// Dialect returns the dialect used to render statements.
func (c *Client) Dialect() dialects.Dialect {
	return c.dialect
}

// CacheStats returns prepared statement cache statistics.
func (c *Client) CacheStats() cache.Stats {
	return c.stmtCache.Stats()
}

// Where starts a statement on table filtered by cond.
func (c *Client) Where(table string, cond Condition) *WhereQuery {
	return c.Table(table).Where(cond)
}

// Table returns a handle on the named table.
func (c *Client) Table(name string) *Table {
	return &Table{client: c, name: name}
}

// Query executes raw SQL and returns the resulting rows.
// With WithValidator, query and params are checked first.
func (c *Client) Query(ctx context.Context, query string, params ...any) ([]Row, error) {
	if err := c.validate(ctx, query, params); err != nil {
		return nil, err
	}
	return (&Query{sql: query, params: params, client: c, ctx: ctx}).All()
}

// Exec executes raw SQL that returns no rows.
// With WithValidator, query and params are checked first.
func (c *Client) Exec(ctx context.Context, query string, params ...any) (sql.Result, error) {
	if err := c.validate(ctx, query, params); err != nil {
		return nil, err
	}
	return (&Query{sql: query, params: params, client: c, ctx: ctx}).Execute()
}

// validate runs the raw SQL validator, if any, and audits rejections.
func (c *Client) validate(ctx context.Context, query string, params []any) error {
	if c.validator == nil {
		return nil
	}
	err := c.validator.Validate(query, params)
	if err != nil {
		c.logger.Warn("statement blocked", "sql", query, "error", err)
		if c.auditor != nil {
			c.auditor.Blocked(ctx, query, err)
		}
	}
	return err
}

// Close releases cached statements and, for clients created by Open, closes
// the database. Statements executed after Close fail with ErrClosed.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	c.stmtCache.Purge()
	if c.owned {
		return c.sqlDB.Close()
	}
	return nil
}

// ready checks the client is open and, for owned clients, pings the database
// once. The ping ignores the caller's cancellation and runs under its own
// timeout. A failed ping is remembered and returned on every later call,
// except a timeout, which is retried by the next statement.
func (c *Client) ready(ctx context.Context) error {
	if c.closed.Load() {
		return ErrClosed
	}
	if !c.owned {
		return nil
	}

	c.readyMu.Lock()
	defer c.readyMu.Unlock()
	if c.readyDone {
		return c.readyErr
	}

	pingCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), readyTimeout)
	defer cancel()
	err := c.sqlDB.PingContext(pingCtx)
	if err != nil {
		c.logger.Error("database not ready", "database", c.dialect.Name(), "error", err)
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return err
		}
	}
	c.readyDone = true
	c.readyErr = err
	return err
}

// prepare returns a cached prepared statement for query, preparing it on a miss.
func (c *Client) prepare(ctx context.Context, query string) (*sql.Stmt, error) {
	if stmt, ok := c.stmtCache.Get(query); ok {
		return stmt, nil
	}

	stmt, err := c.sqlDB.PrepareContext(ctx, query)
	if err != nil {
		return nil, err
	}
	cached, added := c.stmtCache.AddIfAbsent(query, stmt)
	if !added {
		_ = stmt.Close()
	}
	return cached, nil
}
