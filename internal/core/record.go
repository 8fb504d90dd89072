package core

import "sort"

// Field is one column/value pair of a Record.
type Field struct {
	Column string
	Value  any
}

// Record is an ordered column/value mapping used for INSERT rows and UPDATE
// change sets. Columns are unique; order is the order they were first set.
type Record []Field

// NewRecord returns an empty record.
func NewRecord() Record {
	return Record{}
}

// RecordFromMap builds a record from a map with sorted keys, so the rendered
// SQL is deterministic.
func RecordFromMap(m map[string]any) Record {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	r := make(Record, 0, len(keys))
	for _, k := range keys {
		r = append(r, Field{Column: k, Value: m[k]})
	}
	return r
}

// Set returns a copy of r with column set to value. An existing column keeps
// its position and gets the new value.
func (r Record) Set(column string, value any) Record {
	out := make(Record, len(r), len(r)+1)
	copy(out, r)
	for i := range out {
		if out[i].Column == column {
			out[i].Value = value
			return out
		}
	}
	return append(out, Field{Column: column, Value: value})
}

// Get returns the value stored for column.
func (r Record) Get(column string) (any, bool) {
	for _, f := range r {
		if f.Column == column {
			return f.Value, true
		}
	}
	return nil, false
}

// Columns returns the column names in order.
func (r Record) Columns() []string {
	cols := make([]string, len(r))
	for i, f := range r {
		cols[i] = f.Column
	}
	return cols
}
