// Package tables defines the tabular output contract shared by every report
// parser: a Table with named, typed columns, plus the multi-table container
// used when one downloaded artifact holds several logically distinct tables.
package tables

import (
	"encoding/json"
	"fmt"
	"time"
)

// Reserved column names marking a multi-table container. A Table whose two
// columns carry exactly these names holds one sub-table per row: the display
// name in the first cell and the nested *Table in the second, in matched
// order.
const (
	TableNamesColumn = "table_names"
	TablesColumn     = "tables"
)

// ColumnType declares the normalized Go type of every cell in a column.
type ColumnType int

const (
	String ColumnType = iota
	Int
	Float
	Time
	Nested
)

// String returns the lower-case name used in logs and JSON output.
func (t ColumnType) String() string {
	switch t {
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float"
	case Time:
		return "time"
	case Nested:
		return "table"
	default:
		return fmt.Sprintf("columntype(%d)", int(t))
	}
}

// MarshalJSON emits the type name rather than the enum ordinal.
func (t ColumnType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// Column is a named, typed column header.
type Column struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}

// Table is a row-major table with a declared column schema. Cells hold
// string, int64, float64, time.Time or *Table values according to the
// column type; nil marks a missing value.
type Table struct {
	Columns []Column `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// New returns an empty table with the given column schema.
func New(columns ...Column) *Table {
	return &Table{Columns: columns}
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// AppendRow adds one row. The cell count must match the column count.
func (t *Table) AppendRow(cells ...any) error {
	if len(cells) != len(t.Columns) {
		return fmt.Errorf("row has %d cells, table has %d columns", len(cells), len(t.Columns))
	}
	t.Rows = append(t.Rows, cells)
	return nil
}

// IsMulti reports whether the table is a multi-table container, detected
// purely by the sentinel column pair.
func (t *Table) IsMulti() bool {
	return len(t.Columns) == 2 &&
		t.Columns[0].Name == TableNamesColumn &&
		t.Columns[1].Name == TablesColumn
}

// NamedTable is one (display name, table) pair unpacked from a multi-table
// container.
type NamedTable struct {
	Name  string
	Table *Table
}

// SubTables unpacks a multi-table container into ordered (name, table)
// pairs. It returns nil when the receiver is not a container.
func (t *Table) SubTables() []NamedTable {
	if !t.IsMulti() {
		return nil
	}
	subs := make([]NamedTable, 0, len(t.Rows))
	for _, row := range t.Rows {
		name, _ := row[0].(string)
		sub, _ := row[1].(*Table)
		subs = append(subs, NamedTable{Name: name, Table: sub})
	}
	return subs
}

// NewMulti builds a multi-table container from matched name and table
// slices.
func NewMulti(names []string, tabs []*Table) (*Table, error) {
	if len(names) != len(tabs) {
		return nil, fmt.Errorf("multi-table container: %d names for %d tables", len(names), len(tabs))
	}
	t := New(
		Column{Name: TableNamesColumn, Type: String},
		Column{Name: TablesColumn, Type: Nested},
	)
	for i := range names {
		t.Rows = append(t.Rows, []any{names[i], tabs[i]})
	}
	return t, nil
}

// CellString formats a single cell for display output.
func CellString(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case time.Time:
		return c.Format("2006-01-02 15:04:05")
	case *Table:
		return fmt.Sprintf("<table %dx%d>", len(c.Columns), len(c.Rows))
	default:
		return fmt.Sprint(c)
	}
}
