package core

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_BuildCreate(t *testing.T) {
	users := mockClient("postgres").Table("users")

	cols := Columns{
		{Name: "id", Type: Serial, Constraint: PrimaryKey},
		{Name: "name", Type: VarChar, Length: 64, NotNull: true},
		{Name: "tags", Type: Text, Array: true},
		{Name: "code", Type: Char, Length: 3, Array: true, NotNull: true, Constraint: Unique},
		Col("bio", Text),
	}

	tests := []struct {
		mode CreateMode
		want string
	}{
		{CreateDefault, `CREATE TABLE "users"(`},
		{IfNotExists, `CREATE TABLE IF NOT EXISTS "users"(`},
		{DropIfExists, `CREATE TABLE "users"(`},
	}

	body := `"id" SERIAL PRIMARY KEY, "name" VARCHAR(64) NOT NULL, "tags" TEXT[], ` +
		`"code" CHAR(3)[] NOT NULL UNIQUE, "bio" TEXT)`

	for _, tt := range tests {
		q := users.BuildCreate(cols, tt.mode)
		assert.Equal(t, tt.want+body, q.SQL())
		assert.Empty(t, q.Params())
	}
}

func TestTable_BuildDrop(t *testing.T) {
	users := mockClient("postgres").Table("users")
	assert.Equal(t, `DROP TABLE "users"`, users.BuildDrop(false).SQL())
	assert.Equal(t, `DROP TABLE IF EXISTS "users"`, users.BuildDrop(true).SQL())

	weird := mockClient("postgres").Table(`my"table`)
	assert.Equal(t, `DROP TABLE "my""table"`, weird.BuildDrop(false).SQL())
}

var quotedIdent = regexp.MustCompile(`"((?:[^"]|"")*)"`)

// Every identifier in the DDL unquotes back to the original name.
func TestTable_BuildCreate_IdentifierRoundTrip(t *testing.T) {
	names := []string{"plain", "with space", `quo"te`, `a""b`, "Mixed_Case", `end"`}
	cols := make(Columns, len(names))
	for i, n := range names {
		cols[i] = Col(n, Text)
	}

	sql := mockClient("postgres").Table(`ta"ble`).BuildCreate(cols, CreateDefault).SQL()

	var got []string
	for _, m := range quotedIdent.FindAllStringSubmatch(sql, -1) {
		got = append(got, strings.ReplaceAll(m[1], `""`, `"`))
	}
	assert.Equal(t, append([]string{`ta"ble`}, names...), got)
}

func TestTable_BuildInsert(t *testing.T) {
	users := mockClient("postgres").Table("users")

	t.Run("zero rows", func(t *testing.T) {
		q, err := users.BuildInsert()
		require.NoError(t, err)
		assert.Nil(t, q)
	})

	t.Run("rows without columns", func(t *testing.T) {
		q, err := users.BuildInsert(NewRecord(), NewRecord())
		assert.ErrorIs(t, err, ErrEmptyInsert)
		assert.Nil(t, q)
	})

	t.Run("single row", func(t *testing.T) {
		q := buildInsert(t, users, NewRecord().Set("name", "Alice").Set("age", 30))
		assert.Equal(t, `INSERT INTO "users"("name", "age") VALUES ($1, $2)`, q.SQL())
		assert.Equal(t, []any{"Alice", 30}, q.Params())
	})

	t.Run("disjoint keys", func(t *testing.T) {
		q := buildInsert(t, users, NewRecord().Set("a", 1), NewRecord().Set("b", 2))
		assert.Equal(t, `INSERT INTO "users"("a", "b") VALUES ($1, null), (null, $2)`, q.SQL())
		assert.Equal(t, []any{1, 2}, q.Params())
	})

	t.Run("global numbering and first-seen order", func(t *testing.T) {
		q := buildInsert(t, users,
			NewRecord().Set("b", "b1").Set("a", "a1"),
			NewRecord().Set("a", "a2").Set("c", "c2"),
			NewRecord().Set("c", "c3").Set("b", "b3").Set("a", "a3"),
		)
		assert.Equal(t,
			`INSERT INTO "users"("b", "a", "c") VALUES ($1, $2, null), (null, $3, $4), ($5, $6, $7)`,
			q.SQL())
		assert.Equal(t, []any{"b1", "a1", "a2", "c2", "b3", "a3", "c3"}, q.Params())
	})

	t.Run("explicit nil binds a parameter", func(t *testing.T) {
		q := buildInsert(t, users, NewRecord().Set("a", nil))
		assert.Equal(t, `INSERT INTO "users"("a") VALUES ($1)`, q.SQL())
		assert.Equal(t, []any{nil}, q.Params())
	})

	t.Run("mysql", func(t *testing.T) {
		q := buildInsert(t, mockClient("mysql").Table("users"), NewRecord().Set("a", 1), NewRecord().Set("b", 2))
		assert.Equal(t, "INSERT INTO `users`(`a`, `b`) VALUES (?, null), (null, ?)", q.SQL())
	})
}

func buildInsert(t *testing.T, tbl *Table, rows ...Record) *Query {
	t.Helper()
	q, err := tbl.BuildInsert(rows...)
	require.NoError(t, err)
	require.NotNil(t, q)
	return q
}

func TestTable_InsertEmptyRecordFails(t *testing.T) {
	// Fails before execution; the mock client has no database.
	users := mockClient("postgres").Table("users")
	_, err := users.Insert(NewRecord())
	assert.ErrorIs(t, err, ErrEmptyInsert)
}

func TestTable_InsertZeroRowsIsNoop(t *testing.T) {
	// The mock client has no database; executing anything would panic.
	users := mockClient("postgres").Table("users")
	got, err := users.Insert()
	require.NoError(t, err)
	assert.Same(t, users, got)
}

func TestTable_WholeTableShortcutsHaveNoWhere(t *testing.T) {
	users := mockClient("postgres").Table("users")
	wq := users.Where(nil)

	sel, err := wq.BuildSelect()
	require.NoError(t, err)
	assert.Equal(t, `SELECT * FROM "users"`, sel.SQL())

	upd, err := wq.BuildUpdate(NewRecord().Set("a", 1))
	require.NoError(t, err)
	assert.Equal(t, `UPDATE "users" SET "a" = $1`, upd.SQL())

	del, err := wq.BuildDelete()
	require.NoError(t, err)
	assert.Equal(t, `DELETE FROM "users"`, del.SQL())
}

func TestRecord(t *testing.T) {
	base := NewRecord().Set("a", 1)
	x := base.Set("b", 2)
	y := base.Set("c", 3)

	assert.Equal(t, []string{"a", "b"}, x.Columns())
	assert.Equal(t, []string{"a", "c"}, y.Columns())

	replaced := x.Set("a", 10)
	v, ok := replaced.Get("a")
	require.True(t, ok)
	assert.Equal(t, 10, v)
	assert.Equal(t, []string{"a", "b"}, replaced.Columns())

	v, _ = x.Get("a")
	assert.Equal(t, 1, v)

	_, ok = x.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"a", "b"}, RecordFromMap(map[string]any{"b": 1, "a": 2}).Columns())
}
