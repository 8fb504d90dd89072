//go:build integration

package core

import (
	"os"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mysqlDSN() string {
	if dsn := os.Getenv("MYSQL_TEST_DSN"); dsn != "" {
		return dsn
	}
	if os.Getenv("MYSQL_TEST_ADDR") == "" {
		return ""
	}
	cfg := mysql.NewConfig()
	cfg.User = os.Getenv("MYSQL_TEST_USER")
	cfg.Passwd = os.Getenv("MYSQL_TEST_PASSWORD")
	cfg.Net = "tcp"
	cfg.Addr = os.Getenv("MYSQL_TEST_ADDR")
	cfg.DBName = os.Getenv("MYSQL_TEST_DB")
	cfg.ParseTime = true
	return cfg.FormatDSN()
}

func TestMySQL_Statements(t *testing.T) {
	dsn := mysqlDSN()
	if dsn == "" {
		t.Skip("MYSQL_TEST_DSN or MYSQL_TEST_ADDR not set")
	}

	c, err := Open("mysql", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	items, err := c.Table("qbuild_items").Create(Columns{
		{Name: "id", Type: Integer, Constraint: PrimaryKey},
		{Name: "name", Type: VarChar, Length: 64, NotNull: true},
		{Name: "qty", Type: Integer},
	}, DropIfExists)
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = items.Drop(true) })

	_, err = items.Insert(
		NewRecord().Set("id", 1).Set("name", "bolt").Set("qty", 5),
		NewRecord().Set("id", 2).Set("name", "nut"),
	)
	require.NoError(t, err)

	// Anonymous placeholders: SET values are bound before the condition.
	_, err = items.Where(Where(Eq("id", 2))).Update(NewRecord().Set("qty", 7))
	require.NoError(t, err)

	rows, err := items.Where(Where(Eq("id", 2))).Select("name", "qty")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "nut", rows[0]["name"])
	assert.Equal(t, int64(7), rows[0]["qty"])

	_, err = items.Delete()
	require.NoError(t, err)
	rows, err = items.Select()
	require.NoError(t, err)
	assert.Empty(t, rows)
}
