package frame

import (
	stringpool "github.com/tabular-dev/tabular/pkg/strings"
	"github.com/tabular-dev/tabular/pkg/taberrors"
)

// StringColumn stores variable-length text as one contiguous byte buffer
// plus an end-offsets array, keeping row access O(1) with no per-value
// allocation.
//
// ends[i] is the exclusive end of row i's bytes in data; the start is the
// magnitude of ends[i-1] (0 for the first row). A negative ends[i] marks
// row i as NA while its magnitude carries the running offset forward, so
// an NA is distinguishable from an empty string and later rows still
// resolve without scanning.
type StringColumn struct {
	name string
	data []byte
	ends []int32
}

// NewStringColumn creates a string column from values with an optional na mask.
func NewStringColumn(name string, values []string, na []bool) *StringColumn {
	total := 0
	for _, v := range values {
		total += len(v)
	}
	c := &StringColumn{
		name: name,
		data: make([]byte, 0, total),
		ends: make([]int32, 0, len(values)),
	}
	for i, v := range values {
		if na != nil && na[i] {
			c.AppendNA()
		} else {
			c.Append(v)
		}
	}
	return c
}

// EmptyStringColumn creates an empty string column with row capacity rows
// and byte capacity bytes.
func EmptyStringColumn(name string, rows, bytes int) *StringColumn {
	return &StringColumn{
		name: name,
		data: make([]byte, 0, bytes),
		ends: make([]int32, 0, rows),
	}
}

// Name returns the column name.
func (c *StringColumn) Name() string { return c.name }

// Type returns String.
func (c *StringColumn) Type() Type { return String }

// Len returns the number of rows.
func (c *StringColumn) Len() int { return len(c.ends) }

// IsNA reports whether row i is missing.
func (c *StringColumn) IsNA(i int) bool { return c.ends[i] < 0 }

func (c *StringColumn) start(i int) int32 {
	if i == 0 {
		return 0
	}
	e := c.ends[i-1]
	if e == NAInt32 {
		return 0
	}
	if e < 0 {
		return -e
	}
	return e
}

// Str returns the value at row i; ok is false for NA. The returned string
// aliases the column's internal buffer.
func (c *StringColumn) Str(i int) (v string, ok bool) {
	end := c.ends[i]
	if end < 0 {
		return "", false
	}
	return stringpool.BytesToString(c.data[c.start(i):end]), true
}

// Value returns the boxed value at row i, nil for NA.
func (c *StringColumn) Value(i int) interface{} {
	v, ok := c.Str(i)
	if !ok {
		return nil
	}
	return v
}

// Append adds a value, copying its bytes into the shared buffer.
func (c *StringColumn) Append(v string) {
	c.data = append(c.data, v...)
	c.ends = append(c.ends, int32(len(c.data)))
}

// AppendBytes adds a value from a byte slice without an intermediate string.
func (c *StringColumn) AppendBytes(v []byte) {
	c.data = append(c.data, v...)
	c.ends = append(c.ends, int32(len(c.data)))
}

// AppendNA adds a missing value.
func (c *StringColumn) AppendNA() {
	// Negative end keeps the running offset; an empty string at offset 0
	// would collide with -0, so NA there is marked by the smallest int32.
	end := int32(len(c.data))
	if end == 0 {
		c.ends = append(c.ends, NAInt32)
		return
	}
	c.ends = append(c.ends, -end)
}

// AppendFrom implements Column.
func (c *StringColumn) AppendFrom(other Column) error {
	o, ok := other.(*StringColumn)
	if !ok {
		return taberrors.Newf(taberrors.ErrorTypeInternal,
			"cannot append %s column into string column", other.Type())
	}
	base := int32(len(c.data))
	c.data = append(c.data, o.data...)
	for _, e := range o.ends {
		if e < 0 {
			run := -e
			if e == NAInt32 {
				run = 0
			}
			if base+run == 0 {
				c.ends = append(c.ends, NAInt32)
			} else {
				c.ends = append(c.ends, -(base + run))
			}
		} else {
			c.ends = append(c.ends, base+e)
		}
	}
	return nil
}

// Bytes returns the backing character buffer. Intended for size accounting.
func (c *StringColumn) Bytes() int { return len(c.data) }
