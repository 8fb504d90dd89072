package core

import (
	"github.com/coregx/qbuild/internal/cache"
	"github.com/coregx/qbuild/internal/logger"
	"github.com/coregx/qbuild/internal/security"
	"github.com/coregx/qbuild/internal/tracer"
)

// Option is a functional option for configuring a Client.
type Option func(*Client)

// WithMaxOpenConns sets the maximum number of open connections.
func WithMaxOpenConns(n int) Option {
	return func(c *Client) {
		c.sqlDB.SetMaxOpenConns(n)
	}
}

// WithMaxIdleConns sets the maximum number of idle connections.
func WithMaxIdleConns(n int) Option {
	return func(c *Client) {
		c.sqlDB.SetMaxIdleConns(n)
	}
}

// WithStmtCacheCapacity sets the prepared statement cache capacity.
func WithStmtCacheCapacity(capacity int) Option {
	return func(c *Client) {
		c.stmtCache = cache.NewStmtCache(capacity)
	}
}

// WithLogger sets the statement logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSanitizer replaces the parameter sanitizer used in logs.
func WithSanitizer(s *logger.Sanitizer) Option {
	return func(c *Client) {
		if s != nil {
			c.sanitizer = s
		}
	}
}

// WithTracer sets the tracer used around statement execution.
func WithTracer(t tracer.Tracer) Option {
	return func(c *Client) {
		if t != nil {
			c.tracer = t
		}
	}
}

// WithQueryHook registers a callback invoked after every statement.
func WithQueryHook(hook QueryHook) Option {
	return func(c *Client) {
		c.queryHook = hook
	}
}

// WithValidator checks raw SQL passed to Client.Query and Client.Exec
// against injection patterns. Built statements are not checked.
func WithValidator(v *security.Validator) Option {
	return func(c *Client) {
		c.validator = v
	}
}

// WithAuditor records executed and blocked statements in an audit log.
func WithAuditor(a *security.Auditor) Option {
	return func(c *Client) {
		c.auditor = a
	}
}
