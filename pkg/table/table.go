// Package table provides the small in-memory tabular type the ingestion
// pipeline works on: ordered named columns and rows of nullable string cells.
package table

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrArity is returned when a row does not match the table's column count.
var ErrArity = errors.New("row arity does not match column count")

// Cell is one nullable string value.
type Cell struct {
	Value string
	Valid bool
}

// Str returns a non-null cell.
func Str(s string) Cell { return Cell{Value: s, Valid: true} }

// Null returns a null cell.
func Null() Cell { return Cell{} }

// String renders the cell; null renders as the empty string.
func (c Cell) String() string {
	if !c.Valid {
		return ""
	}
	return c.Value
}

// Row is one record, aligned with the table's columns.
type Row []Cell

// Table is an ordered sequence of rows over an ordered set of columns.
type Table struct {
	columns []string
	index   map[string]int
	rows    []Row
}

// New creates an empty table with the given columns.
// Duplicate column names keep their first position.
func New(columns ...string) *Table {
	t := &Table{index: make(map[string]int, len(columns))}
	for _, c := range columns {
		if _, dup := t.index[c]; dup {
			continue
		}
		t.index[c] = len(t.columns)
		t.columns = append(t.columns, c)
	}
	return t
}

// Columns returns a copy of the column names in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool { return len(t.rows) == 0 }

// Index returns the position of a column, or -1.
func (t *Table) Index(column string) int {
	if i, ok := t.index[column]; ok {
		return i
	}
	return -1
}

// Has reports whether the column exists.
func (t *Table) Has(column string) bool {
	_, ok := t.index[column]
	return ok
}

// Row returns a copy of row i.
func (t *Table) Row(i int) Row {
	return append(Row(nil), t.rows[i]...)
}

// Value returns the cell at (row, column). ok is false for an unknown column.
func (t *Table) Value(row int, column string) (Cell, bool) {
	i, ok := t.index[column]
	if !ok {
		return Cell{}, false
	}
	return t.rows[row][i], true
}

// Append adds a row. The number of cells must equal the number of columns.
func (t *Table) Append(cells ...Cell) error {
	if len(cells) != len(t.columns) {
		return fmt.Errorf("%w: got %d cells for %d columns", ErrArity, len(cells), len(t.columns))
	}
	t.rows = append(t.rows, append(Row(nil), cells...))
	return nil
}

// AppendStrings adds a row of non-null values.
func (t *Table) AppendStrings(values ...string) error {
	cells := make([]Cell, len(values))
	for i, v := range values {
		cells[i] = Str(v)
	}
	return t.Append(cells...)
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	c := New(t.columns...)
	c.rows = make([]Row, len(t.rows))
	for i, r := range t.rows {
		c.rows[i] = append(Row(nil), r...)
	}
	return c
}

// rowKey encodes a row so that null and empty string never collide.
func rowKey(r Row) string {
	var b strings.Builder
	for _, c := range r {
		if !c.Valid {
			b.WriteString("n|")
			continue
		}
		b.WriteString("v")
		b.WriteString(strconv.Itoa(len(c.Value)))
		b.WriteByte(':')
		b.WriteString(c.Value)
		b.WriteByte('|')
	}
	return b.String()
}

// Dedup returns a table without exact duplicate rows. The first occurrence
// of each row is kept and relative order is preserved. Two nulls are equal.
func (t *Table) Dedup() *Table {
	out := New(t.columns...)
	seen := make(map[string]struct{}, len(t.rows))
	for _, r := range t.rows {
		k := rowKey(r)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out.rows = append(out.rows, append(Row(nil), r...))
	}
	return out
}

// DedupExcept is Dedup keyed on every column except the named ones; the
// first row of each key is kept whole.
func (t *Table) DedupExcept(columns ...string) *Table {
	skip := make(map[int]struct{}, len(columns))
	for _, c := range columns {
		if i, ok := t.index[c]; ok {
			skip[i] = struct{}{}
		}
	}
	out := New(t.columns...)
	seen := make(map[string]struct{}, len(t.rows))
	key := make(Row, 0, len(t.columns))
	for _, r := range t.rows {
		key = key[:0]
		for i, c := range r {
			if _, ok := skip[i]; !ok {
				key = append(key, c)
			}
		}
		k := rowKey(key)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out.rows = append(out.rows, append(Row(nil), r...))
	}
	return out
}

// Select returns a table with only the named columns, in the given order.
// Unknown columns are ignored.
func (t *Table) Select(columns ...string) *Table {
	var keep []string
	for _, c := range columns {
		if t.Has(c) {
			keep = append(keep, c)
		}
	}
	out := New(keep...)
	idx := make([]int, len(out.columns))
	for i, c := range out.columns {
		idx[i] = t.index[c]
	}
	out.rows = make([]Row, len(t.rows))
	for ri, r := range t.rows {
		nr := make(Row, len(idx))
		for i, src := range idx {
			nr[i] = r[src]
		}
		out.rows[ri] = nr
	}
	return out
}

// Drop returns a table without the named columns.
func (t *Table) Drop(columns ...string) *Table {
	drop := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		drop[c] = struct{}{}
	}
	var keep []string
	for _, c := range t.columns {
		if _, ok := drop[c]; !ok {
			keep = append(keep, c)
		}
	}
	return t.Select(keep...)
}

// Rename returns a table with columns renamed through fn. When two columns
// map to the same name the first one wins and the later one is dropped.
func (t *Table) Rename(fn func(string) string) *Table {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = fn(c)
	}
	out := New(names...)
	src := make([]int, len(out.columns))
	for i, name := range out.columns {
		for j, n := range names {
			if n == name {
				src[i] = j
				break
			}
		}
	}
	out.rows = make([]Row, len(t.rows))
	for ri, r := range t.rows {
		nr := make(Row, len(src))
		for i, j := range src {
			nr[i] = r[j]
		}
		out.rows[ri] = nr
	}
	return out
}

// SetColumn adds or overwrites a column, computing each cell with fn.
// New columns are appended at the end.
func (t *Table) SetColumn(column string, fn func(row int, r Row) Cell) {
	i, ok := t.index[column]
	if !ok {
		i = len(t.columns)
		t.index[column] = i
		t.columns = append(t.columns, column)
		for ri := range t.rows {
			t.rows[ri] = append(t.rows[ri], Cell{})
		}
	}
	for ri, r := range t.rows {
		t.rows[ri][i] = fn(ri, r)
	}
}

// MapColumn rewrites the non-null cells of an existing column. Unknown
// columns are a no-op.
func (t *Table) MapColumn(column string, fn func(string) Cell) {
	i, ok := t.index[column]
	if !ok {
		return
	}
	for _, r := range t.rows {
		if r[i].Valid {
			r[i] = fn(r[i].Value)
		}
	}
}

// ColumnsWithNulls returns the columns that contain at least one null.
func (t *Table) ColumnsWithNulls() []string {
	var out []string
	for i, c := range t.columns {
		for _, r := range t.rows {
			if !r[i].Valid {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// Concat stacks tables vertically. The result's columns are the union of
// all input columns in first-seen order; cells for absent columns are null.
func Concat(tables ...*Table) *Table {
	var cols []string
	seen := make(map[string]struct{})
	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, c := range t.columns {
			if _, ok := seen[c]; !ok {
				seen[c] = struct{}{}
				cols = append(cols, c)
			}
		}
	}
	out := New(cols...)
	for _, t := range tables {
		if t == nil {
			continue
		}
		mapping := make([]int, len(t.columns))
		for i, c := range t.columns {
			mapping[i] = out.index[c]
		}
		for _, r := range t.rows {
			nr := make(Row, len(out.columns))
			for i, dst := range mapping {
				nr[dst] = r[i]
			}
			out.rows = append(out.rows, nr)
		}
	}
	return out
}
