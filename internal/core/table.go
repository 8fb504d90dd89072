package core

import (
	"context"
	"strconv"
	"strings"
)

// DataType is a column data type emitted verbatim into CREATE TABLE.
type DataType string

// Built-in PostgreSQL data types.
const (
	Text        DataType = "TEXT"
	Integer     DataType = "INTEGER"
	Name        DataType = "NAME"
	VarChar     DataType = "VARCHAR"
	JSON        DataType = "JSON"
	JSONB       DataType = "JSONB"
	Serial      DataType = "SERIAL"
	Date        DataType = "DATE"
	Timestamp   DataType = "TIMESTAMP"
	TimestampTZ DataType = "TIMESTAMPTZ"
	Char        DataType = "CHAR"
	Boolean     DataType = "BOOLEAN"
	Interval    DataType = "INTERVAL"
	Time        DataType = "TIME"
	UUID        DataType = "UUID"
	ByteArray   DataType = "BYTEA"
	HStore      DataType = "HSTORE"
	Box         DataType = "BOX"
	Line        DataType = "LINE"
	Point       DataType = "POINT"
	LineSegment DataType = "LSEG"
	Polygon     DataType = "POLYGON"
	INet        DataType = "INET"
	MacAddr     DataType = "MACADDR"
)

// Constraint is a column constraint emitted verbatim into CREATE TABLE.
type Constraint string

// Column constraints.
const (
	NotNull    Constraint = "NOT NULL"
	Unique     Constraint = "UNIQUE"
	PrimaryKey Constraint = "PRIMARY KEY"
	Check      Constraint = "CHECK"
	ForeignKey Constraint = "FOREIGN KEY"
)

// Column describes one column of a CREATE TABLE statement.
// A column with only Name and Type renders as "<name> <type>".
type Column struct {
	Name       string
	Type       DataType
	Array      bool
	Length     int
	NotNull    bool
	Constraint Constraint
}

// Col creates a column with just a type.
func Col(name string, typ DataType) Column {
	return Column{Name: name, Type: typ}
}

// definition renders "<type>[(len)][[]][ NOT NULL][ constraint]".
func (c Column) definition() string {
	var sb strings.Builder
	sb.WriteString(string(c.Type))
	if c.Length > 0 {
		sb.WriteString("(")
		sb.WriteString(strconv.Itoa(c.Length))
		sb.WriteString(")")
	}
	if c.Array {
		sb.WriteString("[]")
	}
	if c.NotNull {
		sb.WriteString(" NOT NULL")
	}
	if c.Constraint != "" {
		sb.WriteString(" ")
		sb.WriteString(string(c.Constraint))
	}
	return sb.String()
}

// Columns is an ordered list of column definitions.
type Columns []Column

// CreateMode controls how CREATE TABLE treats an existing table.
type CreateMode int

const (
	// CreateDefault issues a plain CREATE TABLE.
	CreateDefault CreateMode = iota
	// IfNotExists adds IF NOT EXISTS.
	IfNotExists
	// DropIfExists drops any existing table first.
	DropIfExists
)

// Table is a handle on a single table. It renders DDL and INSERT statements
// and offers whole-table SELECT, UPDATE and DELETE shortcuts.
type Table struct {
	client *Client
	name   string
	ctx    context.Context
}

// Name returns the unquoted table name.
func (t *Table) Name() string {
	return t.name
}

// WithContext returns a copy of the table handle bound to ctx.
func (t *Table) WithContext(ctx context.Context) *Table {
	nt := *t
	nt.ctx = ctx
	return &nt
}

// Where starts a statement filtered by cond.
func (t *Table) Where(cond Condition) *WhereQuery {
	return &WhereQuery{
		client:    t.client,
		table:     t.name,
		condition: cond,
		ctx:       t.ctx,
	}
}

// BuildCreate renders CREATE TABLE. With DropIfExists the DROP statement is
// not part of the result; Create issues it separately.
func (t *Table) BuildCreate(cols Columns, mode CreateMode) *Query {
	d := t.client.dialect

	defs := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = d.QuoteIdentifier(c.Name) + " " + c.definition()
	}

	sql := "CREATE TABLE"
	if mode == IfNotExists {
		sql += " IF NOT EXISTS"
	}
	sql += " " + d.QuoteIdentifier(t.name) + "(" + strings.Join(defs, ", ") + ")"
	return t.newQuery(sql, nil, nil)
}

// BuildDrop renders DROP TABLE.
func (t *Table) BuildDrop(ifExists bool) *Query {
	sql := "DROP TABLE"
	if ifExists {
		sql += " IF EXISTS"
	}
	return t.newQuery(sql+" "+t.client.dialect.QuoteIdentifier(t.name), nil, nil)
}

// BuildInsert renders a multi-row INSERT. Zero rows yield a nil query and no
// error; rows that together set no column yield ErrEmptyInsert.
//
// The column list is the union of all row columns in first-seen order. A row
// lacking a column gets the literal null; every other cell gets the next
// placeholder of one parameter list shared by all rows:
//
//	INSERT INTO "t"("a", "b") VALUES ($1, null), (null, $2)
func (t *Table) BuildInsert(rows ...Record) (*Query, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	d := t.client.dialect

	var cols []string
	seen := make(map[string]bool)
	for _, r := range rows {
		for _, f := range r {
			if !seen[f.Column] {
				seen[f.Column] = true
				cols = append(cols, f.Column)
			}
		}
	}

	if len(cols) == 0 {
		return nil, ErrEmptyInsert
	}

	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = d.QuoteIdentifier(c)
	}

	var params []any
	var bound []string
	values := make([]string, len(rows))
	for i, r := range rows {
		byCol := make(map[string]any, len(r))
		for _, f := range r {
			byCol[f.Column] = f.Value
		}

		cells := make([]string, len(cols))
		for j, c := range cols {
			v, ok := byCol[c]
			if !ok {
				cells[j] = "null"
				continue
			}
			params = append(params, v)
			bound = append(bound, c)
			cells[j] = d.Placeholder(len(params))
		}
		values[i] = "(" + strings.Join(cells, ", ") + ")"
	}

	sql := "INSERT INTO " + d.QuoteIdentifier(t.name) +
		"(" + strings.Join(quoted, ", ") + ") VALUES " + strings.Join(values, ", ")
	return t.newQuery(sql, params, bound), nil
}

// Create executes CREATE TABLE. With DropIfExists it first executes
// DROP TABLE IF EXISTS.
func (t *Table) Create(cols Columns, mode CreateMode) (*Table, error) {
	if mode == DropIfExists {
		if _, err := t.BuildDrop(true).Execute(); err != nil {
			return t, err
		}
	}
	_, err := t.BuildCreate(cols, mode).Execute()
	return t, err
}

// Drop executes DROP TABLE [IF EXISTS].
func (t *Table) Drop(ifExists bool) (*Table, error) {
	_, err := t.BuildDrop(ifExists).Execute()
	return t, err
}

// Insert executes a multi-row INSERT. With no rows nothing is executed.
func (t *Table) Insert(rows ...Record) (*Table, error) {
	q, err := t.BuildInsert(rows...)
	if err != nil || q == nil {
		return t, err
	}
	_, err = q.Execute()
	return t, err
}

// Select returns every row of the table.
func (t *Table) Select(columns ...string) ([]Row, error) {
	return t.Where(nil).Select(columns...)
}

// Update applies changes to every row of the table.
func (t *Table) Update(changes Record) (*Table, error) {
	_, err := t.Where(nil).Update(changes)
	return t, err
}

// Delete removes every row of the table.
func (t *Table) Delete() (*Table, error) {
	_, err := t.Where(nil).Delete()
	return t, err
}

func (t *Table) newQuery(sql string, params []any, columns []string) *Query {
	return &Query{
		sql:     sql,
		params:  params,
		columns: columns,
		table:   t.name,
		client:  t.client,
		ctx:     t.ctx,
	}
}
