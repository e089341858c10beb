package frame

import (
	"math"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/tabular-dev/tabular/pkg/taberrors"
)

// arrowType maps a column type to its Arrow equivalent.
func arrowType(t Type) arrow.DataType {
	switch t {
	case Bool:
		return arrow.FixedWidthTypes.Boolean
	case Int32:
		return arrow.PrimitiveTypes.Int32
	case Int64:
		return arrow.PrimitiveTypes.Int64
	case Float64:
		return arrow.PrimitiveTypes.Float64
	default:
		return arrow.BinaryTypes.String
	}
}

// ToArrow converts the table into an Arrow record batch. NA values become
// Arrow nulls. The caller owns the returned record and must Release it.
func (t *Table) ToArrow(mem memory.Allocator) arrow.Record {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}

	fields := make([]arrow.Field, t.NumCols())
	arrs := make([]arrow.Array, t.NumCols())

	for i, col := range t.cols {
		fields[i] = arrow.Field{Name: col.Name(), Type: arrowType(col.Type()), Nullable: true}
		arrs[i] = columnToArrow(col, mem)
	}

	schema := arrow.NewSchema(fields, nil)
	rec := array.NewRecord(schema, arrs, int64(t.nrows))
	for _, a := range arrs {
		a.Release()
	}
	return rec
}

func columnToArrow(col Column, mem memory.Allocator) arrow.Array {
	n := col.Len()
	switch c := col.(type) {
	case *BoolColumn:
		b := array.NewBooleanBuilder(mem)
		defer b.Release()
		b.Reserve(n)
		for i := 0; i < n; i++ {
			if v, ok := c.Bool(i); ok {
				b.Append(v)
			} else {
				b.AppendNull()
			}
		}
		return b.NewBooleanArray()
	case *Int32Column:
		b := array.NewInt32Builder(mem)
		defer b.Release()
		b.Reserve(n)
		for i := 0; i < n; i++ {
			if v, ok := c.Int32(i); ok {
				b.Append(v)
			} else {
				b.AppendNull()
			}
		}
		return b.NewInt32Array()
	case *Int64Column:
		b := array.NewInt64Builder(mem)
		defer b.Release()
		b.Reserve(n)
		for i := 0; i < n; i++ {
			if v, ok := c.Int64(i); ok {
				b.Append(v)
			} else {
				b.AppendNull()
			}
		}
		return b.NewInt64Array()
	case *Float64Column:
		b := array.NewFloat64Builder(mem)
		defer b.Release()
		b.Reserve(n)
		for i := 0; i < n; i++ {
			if v, ok := c.Float64(i); ok {
				b.Append(v)
			} else {
				b.AppendNull()
			}
		}
		return b.NewFloat64Array()
	default:
		sc := col.(*StringColumn)
		b := array.NewStringBuilder(mem)
		defer b.Release()
		b.Reserve(n)
		for i := 0; i < n; i++ {
			if v, ok := sc.Str(i); ok {
				b.Append(v)
			} else {
				b.AppendNull()
			}
		}
		return b.NewStringArray()
	}
}

// FromArrow converts an Arrow record batch into a table. Arrow nulls become
// NA. Only the column types the store supports are accepted.
func FromArrow(rec arrow.Record) (*Table, error) {
	cols := make([]Column, rec.NumCols())
	n := int(rec.NumRows())

	for i := 0; i < int(rec.NumCols()); i++ {
		name := rec.Schema().Field(i).Name
		col, err := arrowToColumn(name, rec.Column(i), n)
		if err != nil {
			return nil, err
		}
		cols[i] = col
	}
	return NewTable(cols...)
}

func arrowToColumn(name string, arr arrow.Array, n int) (Column, error) {
	switch a := arr.(type) {
	case *array.Boolean:
		c := EmptyBoolColumn(name, n)
		for i := 0; i < n; i++ {
			if a.IsNull(i) {
				c.AppendNA()
			} else {
				c.Append(a.Value(i))
			}
		}
		return c, nil
	case *array.Int32:
		// math.MinInt32 is the in-band NA sentinel; a record carrying it
		// as a value widens to Int64, same as the sentinel does in text.
		if arrowInt32NeedsWiden(a, n) {
			c := EmptyInt64Column(name, n)
			for i := 0; i < n; i++ {
				if a.IsNull(i) {
					c.AppendNA()
				} else {
					c.Append(int64(a.Value(i)))
				}
			}
			return c, nil
		}
		c := EmptyInt32Column(name, n)
		for i := 0; i < n; i++ {
			if a.IsNull(i) {
				c.AppendNA()
			} else {
				c.Append(a.Value(i))
			}
		}
		return c, nil
	case *array.Int64:
		// math.MinInt64 widens to Float64, which represents it exactly.
		if arrowInt64NeedsWiden(a, n) {
			c := EmptyFloat64Column(name, n)
			for i := 0; i < n; i++ {
				if a.IsNull(i) {
					c.AppendNA()
				} else {
					c.Append(float64(a.Value(i)))
				}
			}
			return c, nil
		}
		c := EmptyInt64Column(name, n)
		for i := 0; i < n; i++ {
			if a.IsNull(i) {
				c.AppendNA()
			} else {
				c.Append(a.Value(i))
			}
		}
		return c, nil
	case *array.Float64:
		c := EmptyFloat64Column(name, n)
		for i := 0; i < n; i++ {
			if a.IsNull(i) {
				c.AppendNA()
			} else {
				c.Append(a.Value(i))
			}
		}
		return c, nil
	case *array.String:
		c := EmptyStringColumn(name, n, n*8)
		for i := 0; i < n; i++ {
			if a.IsNull(i) {
				c.AppendNA()
			} else {
				c.Append(a.Value(i))
			}
		}
		return c, nil
	default:
		return nil, taberrors.Newf(taberrors.ErrorTypeValidation,
			"unsupported arrow column type %s for column %q", arr.DataType(), name)
	}
}

func arrowInt32NeedsWiden(a *array.Int32, n int) bool {
	for i := 0; i < n; i++ {
		if !a.IsNull(i) && a.Value(i) == math.MinInt32 {
			return true
		}
	}
	return false
}

func arrowInt64NeedsWiden(a *array.Int64, n int) bool {
	for i := 0; i < n; i++ {
		if !a.IsNull(i) && a.Value(i) == math.MinInt64 {
			return true
		}
	}
	return false
}
