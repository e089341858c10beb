package frame

import (
	"github.com/tabular-dev/tabular/pkg/taberrors"
)

// Table is an ordered sequence of columns with unique names and a shared
// row count. Tables are constructed whole (by the CSV reader, or by the
// caller from finished columns), so a consistent row count is an invariant
// of every reachable Table, never an intermediate state.
type Table struct {
	cols  []Column
	index map[string]int
	nrows int
}

// NewTable creates a table from the given columns, validating that names
// are unique and every column has the same length. Insertion order is
// display order.
func NewTable(cols ...Column) (*Table, error) {
	t := &Table{
		cols:  make([]Column, 0, len(cols)),
		index: make(map[string]int, len(cols)),
	}
	for i, col := range cols {
		if _, exists := t.index[col.Name()]; exists {
			return nil, taberrors.Newf(taberrors.ErrorTypeValidation,
				"duplicate column name %q", col.Name())
		}
		if i == 0 {
			t.nrows = col.Len()
		} else if col.Len() != t.nrows {
			return nil, taberrors.Newf(taberrors.ErrorTypeValidation,
				"column %q has %d rows, want %d", col.Name(), col.Len(), t.nrows)
		}
		t.index[col.Name()] = i
		t.cols = append(t.cols, col)
	}
	return t, nil
}

// Empty returns a zero-row, zero-column table.
func Empty() *Table {
	return &Table{index: make(map[string]int)}
}

// NumRows returns the shared row count.
func (t *Table) NumRows() int { return t.nrows }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.cols) }

// Names returns the column names in display order.
func (t *Table) Names() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name()
	}
	return names
}

// Types returns the column types in display order.
func (t *Table) Types() []Type {
	types := make([]Type, len(t.cols))
	for i, c := range t.cols {
		types[i] = c.Type()
	}
	return types
}

// Column returns the column with the given name.
func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.cols[i], true
}

// ColumnAt returns the column at position i.
func (t *Table) ColumnAt(i int) Column { return t.cols[i] }

// Equal reports whether two tables have identical shape, names, types,
// values, and NA positions.
func (t *Table) Equal(o *Table) bool {
	if o == nil || t.nrows != o.nrows || len(t.cols) != len(o.cols) {
		return false
	}
	for i, c := range t.cols {
		oc := o.cols[i]
		if c.Name() != oc.Name() || c.Type() != oc.Type() {
			return false
		}
		for r := 0; r < t.nrows; r++ {
			if c.IsNA(r) != oc.IsNA(r) {
				return false
			}
			if !c.IsNA(r) && c.Value(r) != oc.Value(r) {
				return false
			}
		}
	}
	return true
}
