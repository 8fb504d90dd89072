package core

import (
	"database/sql"
	"testing"

	"github.com/coregx/qbuild/internal/dialects"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// mockClient returns a client that can render but not execute.
func mockClient(dialectName string) *Client {
	return &Client{dialect: dialects.GetDialect(dialectName)}
}

// setupSQLite returns a client over a private in-memory SQLite database.
func setupSQLite(t testing.TB, opts ...Option) *Client {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// One connection, so every statement sees the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	c, err := WrapDB(sqlDB, "sqlite", opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}
