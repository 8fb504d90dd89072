// Package qbuild is a small SQL statement builder for PostgreSQL, MySQL, and
// SQLite. It renders SELECT, INSERT, UPDATE, DELETE, CREATE TABLE, and
// DROP TABLE statements as SQL text plus ordered parameters, quotes every
// identifier, and executes the result through database/sql.
//
// Example:
//
//	client, err := qbuild.Open("postgres", dsn)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	users := client.Table("users")
//	_, err = users.Insert(
//	    qbuild.NewRecord().Set("name", "Alice").Set("age", 30),
//	    qbuild.NewRecord().Set("name", "Bob"),
//	)
//
//	rows, err := users.Where(qbuild.Where(qbuild.GreaterThan("age", 18))).
//	    Order(qbuild.OrderBy{Column: "age", Direction: qbuild.Desc}).
//	    Limit(10).
//	    Select("name", "age")
package qbuild

import (
	"github.com/coregx/qbuild/internal/core"
	"github.com/coregx/qbuild/internal/dialects"
	"github.com/coregx/qbuild/internal/logger"
	"github.com/coregx/qbuild/internal/security"
	"github.com/coregx/qbuild/internal/tracer"
)

type (
	// Client executes rendered statements and hands out builders.
	Client = core.Client
	// Option is a functional option for configuring a Client.
	Option = core.Option
	// Query is a rendered statement with its parameters.
	Query = core.Query
	// Row is a result row keyed by column name.
	Row = core.Row
	// WhereQuery accumulates the state of a SELECT, UPDATE, or DELETE.
	WhereQuery = core.WhereQuery
	// Table is a handle on a single table.
	Table = core.Table

	// Term is a single column comparison.
	Term = core.Term
	// Condition is an ordered list of terms joined with AND.
	Condition = core.Condition
	// Operator is a comparison operator.
	Operator = core.Operator
	// Record is an ordered column/value mapping.
	Record = core.Record
	// Field is one column/value pair of a Record.
	Field = core.Field
	// Alias maps a source column to an output name.
	Alias = core.Alias
	// OrderBy describes an ORDER BY clause.
	OrderBy = core.OrderBy
	// Direction is ASC or DESC.
	Direction = core.Direction
	// NullsOrder is NULLS FIRST or NULLS LAST.
	NullsOrder = core.NullsOrder

	// Column describes a CREATE TABLE column.
	Column = core.Column
	// Columns is an ordered list of column definitions.
	Columns = core.Columns
	// DataType is a column data type.
	DataType = core.DataType
	// Constraint is a column constraint.
	Constraint = core.Constraint
	// CreateMode controls CREATE TABLE behavior for existing tables.
	CreateMode = core.CreateMode

	// QueryEvent describes an executed statement.
	QueryEvent = core.QueryEvent
	// QueryHook is invoked after every statement.
	QueryHook = core.QueryHook

	// Dialect defines database-specific rendering.
	Dialect = dialects.Dialect
	// Logger receives structured statement logs.
	Logger = logger.Logger
	// Tracer starts spans around statement execution.
	Tracer = tracer.Tracer

	// Validator rejects raw SQL matching injection patterns.
	Validator = security.Validator
	// Auditor records executed statements without their parameter values.
	Auditor = security.Auditor
	// AuditLevel selects which statements are audited.
	AuditLevel = security.AuditLevel
)

// Comparison operators.
const (
	OpEquals          = core.OpEquals
	OpGreaterThan     = core.OpGreaterThan
	OpLessThan        = core.OpLessThan
	OpGreaterOrEquals = core.OpGreaterOrEquals
	OpLessOrEquals    = core.OpLessOrEquals
	OpNotEquals       = core.OpNotEquals
	OpLike            = core.OpLike
	OpIn              = core.OpIn
)

// Ordering.
const (
	Asc        = core.Asc
	Desc       = core.Desc
	NullsFirst = core.NullsFirst
	NullsLast  = core.NullsLast
)

// Create modes.
const (
	CreateDefault = core.CreateDefault
	IfNotExists   = core.IfNotExists
	DropIfExists  = core.DropIfExists
)

// Data types.
const (
	Text        = core.Text
	Integer     = core.Integer
	Name        = core.Name
	VarChar     = core.VarChar
	JSON        = core.JSON
	JSONB       = core.JSONB
	Serial      = core.Serial
	Date        = core.Date
	Timestamp   = core.Timestamp
	TimestampTZ = core.TimestampTZ
	Char        = core.Char
	Boolean     = core.Boolean
	Interval    = core.Interval
	Time        = core.Time
	UUID        = core.UUID
	ByteArray   = core.ByteArray
	HStore      = core.HStore
	Box         = core.Box
	Line        = core.Line
	Point       = core.Point
	LineSegment = core.LineSegment
	Polygon     = core.Polygon
	INet        = core.INet
	MacAddr     = core.MacAddr
)

// Constraints.
const (
	NotNull    = core.NotNull
	Unique     = core.Unique
	PrimaryKey = core.PrimaryKey
	Check      = core.Check
	ForeignKey = core.ForeignKey
)

// Errors.
var (
	ErrInvalidSequence    = core.ErrInvalidSequence
	ErrInvalidOperator    = core.ErrInvalidOperator
	ErrInvalidOrder       = core.ErrInvalidOrder
	ErrEmptyChangeSet     = core.ErrEmptyChangeSet
	ErrEmptyInsert        = core.ErrEmptyInsert
	ErrUnsupportedDialect = core.ErrUnsupportedDialect
	ErrClosed             = core.ErrClosed

	ErrUnsafeQuery = security.ErrUnsafeQuery
	ErrUnsafeParam = security.ErrUnsafeParam
)

// Re-export core functions.
var (
	Open   = core.Open
	WrapDB = core.WrapDB

	WithMaxOpenConns      = core.WithMaxOpenConns
	WithMaxIdleConns      = core.WithMaxIdleConns
	WithStmtCacheCapacity = core.WithStmtCacheCapacity
	WithLogger            = core.WithLogger
	WithSanitizer         = core.WithSanitizer
	WithTracer            = core.WithTracer
	WithQueryHook         = core.WithQueryHook
	WithValidator         = core.WithValidator
	WithAuditor           = core.WithAuditor

	// Condition builders
	Where          = core.Where
	HashCondition  = core.HashCondition
	Bare           = core.Bare
	Compare        = core.Compare
	Eq             = core.Eq
	NotEq          = core.NotEq
	GreaterThan    = core.GreaterThan
	LessThan       = core.LessThan
	GreaterOrEqual = core.GreaterOrEqual
	LessOrEqual    = core.LessOrEqual
	Like           = core.Like
	In             = core.In

	NewRecord     = core.NewRecord
	RecordFromMap = core.RecordFromMap
	By            = core.By
	Col           = core.Col

	// Quote quotes an unquoted identifier with the given quote character.
	Quote = dialects.Quote

	NewSlogAdapter  = logger.NewSlogAdapter
	NewTextLogger   = logger.NewTextLogger
	NewSanitizer    = logger.NewSanitizer
	NewOtelTracer   = tracer.NewOtelTracer
	NewGlobalTracer = tracer.NewGlobalTracer

	NewValidator = security.NewValidator
	WithStrict   = security.WithStrict
	NewAuditor   = security.NewAuditor

	// Audit context metadata.
	WithUser      = security.WithUser
	WithClientIP  = security.WithClientIP
	WithRequestID = security.WithRequestID
)

// Audit levels.
const (
	AuditNone   = security.AuditNone
	AuditWrites = security.AuditWrites
	AuditReads  = security.AuditReads
	AuditAll    = security.AuditAll
)
