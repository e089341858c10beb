package frame

import (
	"math"

	"github.com/tabular-dev/tabular/pkg/taberrors"
)

// BoolColumn stores three-state booleans as int8 (0, 1, NABool).
type BoolColumn struct {
	name string
	vals []int8
}

// NewBoolColumn creates a bool column from values with an optional na mask.
func NewBoolColumn(name string, values []bool, na []bool) *BoolColumn {
	c := &BoolColumn{name: name, vals: make([]int8, 0, len(values))}
	for i, v := range values {
		if na != nil && na[i] {
			c.vals = append(c.vals, NABool)
		} else if v {
			c.vals = append(c.vals, 1)
		} else {
			c.vals = append(c.vals, 0)
		}
	}
	return c
}

// EmptyBoolColumn creates an empty bool column with the given capacity.
func EmptyBoolColumn(name string, capacity int) *BoolColumn {
	return &BoolColumn{name: name, vals: make([]int8, 0, capacity)}
}

// Name returns the column name.
func (c *BoolColumn) Name() string { return c.name }

// Type returns Bool.
func (c *BoolColumn) Type() Type { return Bool }

// Len returns the number of rows.
func (c *BoolColumn) Len() int { return len(c.vals) }

// IsNA reports whether row i is missing.
func (c *BoolColumn) IsNA(i int) bool { return c.vals[i] == NABool }

// Bool returns the value at row i; ok is false for NA.
func (c *BoolColumn) Bool(i int) (v, ok bool) {
	if c.vals[i] == NABool {
		return false, false
	}
	return c.vals[i] != 0, true
}

// Value returns the boxed value at row i, nil for NA.
func (c *BoolColumn) Value(i int) interface{} {
	if c.vals[i] == NABool {
		return nil
	}
	return c.vals[i] != 0
}

// Append adds a value.
func (c *BoolColumn) Append(v bool) {
	if v {
		c.vals = append(c.vals, 1)
	} else {
		c.vals = append(c.vals, 0)
	}
}

// AppendNA adds a missing value.
func (c *BoolColumn) AppendNA() { c.vals = append(c.vals, NABool) }

// AppendFrom implements Column.
func (c *BoolColumn) AppendFrom(other Column) error {
	o, ok := other.(*BoolColumn)
	if !ok {
		return taberrors.Newf(taberrors.ErrorTypeInternal,
			"cannot append %s column into bool column", other.Type())
	}
	c.vals = append(c.vals, o.vals...)
	return nil
}

// Int32Column stores 32-bit integers with NAInt32 as the missing sentinel.
type Int32Column struct {
	name string
	vals []int32
}

// NewInt32Column creates an int32 column from values with an optional na mask.
func NewInt32Column(name string, values []int32, na []bool) *Int32Column {
	c := &Int32Column{name: name, vals: make([]int32, 0, len(values))}
	for i, v := range values {
		if na != nil && na[i] {
			c.vals = append(c.vals, NAInt32)
		} else {
			c.vals = append(c.vals, v)
		}
	}
	return c
}

// EmptyInt32Column creates an empty int32 column with the given capacity.
func EmptyInt32Column(name string, capacity int) *Int32Column {
	return &Int32Column{name: name, vals: make([]int32, 0, capacity)}
}

// Name returns the column name.
func (c *Int32Column) Name() string { return c.name }

// Type returns Int32.
func (c *Int32Column) Type() Type { return Int32 }

// Len returns the number of rows.
func (c *Int32Column) Len() int { return len(c.vals) }

// IsNA reports whether row i is missing.
func (c *Int32Column) IsNA(i int) bool { return c.vals[i] == NAInt32 }

// Int32 returns the value at row i; ok is false for NA.
func (c *Int32Column) Int32(i int) (v int32, ok bool) {
	if c.vals[i] == NAInt32 {
		return 0, false
	}
	return c.vals[i], true
}

// Value returns the boxed value at row i, nil for NA.
func (c *Int32Column) Value(i int) interface{} {
	if c.vals[i] == NAInt32 {
		return nil
	}
	return c.vals[i]
}

// Append adds a value.
func (c *Int32Column) Append(v int32) { c.vals = append(c.vals, v) }

// AppendNA adds a missing value.
func (c *Int32Column) AppendNA() { c.vals = append(c.vals, NAInt32) }

// AppendFrom implements Column.
func (c *Int32Column) AppendFrom(other Column) error {
	o, ok := other.(*Int32Column)
	if !ok {
		return taberrors.Newf(taberrors.ErrorTypeInternal,
			"cannot append %s column into int32 column", other.Type())
	}
	c.vals = append(c.vals, o.vals...)
	return nil
}

// Int64Column stores 64-bit integers with NAInt64 as the missing sentinel.
type Int64Column struct {
	name string
	vals []int64
}

// NewInt64Column creates an int64 column from values with an optional na mask.
func NewInt64Column(name string, values []int64, na []bool) *Int64Column {
	c := &Int64Column{name: name, vals: make([]int64, 0, len(values))}
	for i, v := range values {
		if na != nil && na[i] {
			c.vals = append(c.vals, NAInt64)
		} else {
			c.vals = append(c.vals, v)
		}
	}
	return c
}

// EmptyInt64Column creates an empty int64 column with the given capacity.
func EmptyInt64Column(name string, capacity int) *Int64Column {
	return &Int64Column{name: name, vals: make([]int64, 0, capacity)}
}

// Name returns the column name.
func (c *Int64Column) Name() string { return c.name }

// Type returns Int64.
func (c *Int64Column) Type() Type { return Int64 }

// Len returns the number of rows.
func (c *Int64Column) Len() int { return len(c.vals) }

// IsNA reports whether row i is missing.
func (c *Int64Column) IsNA(i int) bool { return c.vals[i] == NAInt64 }

// Int64 returns the value at row i; ok is false for NA.
func (c *Int64Column) Int64(i int) (v int64, ok bool) {
	if c.vals[i] == NAInt64 {
		return 0, false
	}
	return c.vals[i], true
}

// Value returns the boxed value at row i, nil for NA.
func (c *Int64Column) Value(i int) interface{} {
	if c.vals[i] == NAInt64 {
		return nil
	}
	return c.vals[i]
}

// Append adds a value.
func (c *Int64Column) Append(v int64) { c.vals = append(c.vals, v) }

// AppendNA adds a missing value.
func (c *Int64Column) AppendNA() { c.vals = append(c.vals, NAInt64) }

// AppendFrom implements Column.
func (c *Int64Column) AppendFrom(other Column) error {
	o, ok := other.(*Int64Column)
	if !ok {
		return taberrors.Newf(taberrors.ErrorTypeInternal,
			"cannot append %s column into int64 column", other.Type())
	}
	c.vals = append(c.vals, o.vals...)
	return nil
}

// Float64Column stores doubles with NaN as the missing sentinel.
type Float64Column struct {
	name string
	vals []float64
}

// NewFloat64Column creates a float64 column from values with an optional na
// mask. NaN values are missing regardless of the mask.
func NewFloat64Column(name string, values []float64, na []bool) *Float64Column {
	c := &Float64Column{name: name, vals: make([]float64, 0, len(values))}
	for i, v := range values {
		if na != nil && na[i] {
			c.vals = append(c.vals, math.NaN())
		} else {
			c.vals = append(c.vals, v)
		}
	}
	return c
}

// EmptyFloat64Column creates an empty float64 column with the given capacity.
func EmptyFloat64Column(name string, capacity int) *Float64Column {
	return &Float64Column{name: name, vals: make([]float64, 0, capacity)}
}

// Name returns the column name.
func (c *Float64Column) Name() string { return c.name }

// Type returns Float64.
func (c *Float64Column) Type() Type { return Float64 }

// Len returns the number of rows.
func (c *Float64Column) Len() int { return len(c.vals) }

// IsNA reports whether row i is missing.
func (c *Float64Column) IsNA(i int) bool { return math.IsNaN(c.vals[i]) }

// Float64 returns the value at row i; ok is false for NA.
func (c *Float64Column) Float64(i int) (v float64, ok bool) {
	if math.IsNaN(c.vals[i]) {
		return 0, false
	}
	return c.vals[i], true
}

// Value returns the boxed value at row i, nil for NA.
func (c *Float64Column) Value(i int) interface{} {
	if math.IsNaN(c.vals[i]) {
		return nil
	}
	return c.vals[i]
}

// Append adds a value. NaN counts as NA.
func (c *Float64Column) Append(v float64) { c.vals = append(c.vals, v) }

// AppendNA adds a missing value.
func (c *Float64Column) AppendNA() { c.vals = append(c.vals, math.NaN()) }

// AppendFrom implements Column.
func (c *Float64Column) AppendFrom(other Column) error {
	o, ok := other.(*Float64Column)
	if !ok {
		return taberrors.Newf(taberrors.ErrorTypeInternal,
			"cannot append %s column into float64 column", other.Type())
	}
	c.vals = append(c.vals, o.vals...)
	return nil
}
