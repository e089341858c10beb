// Package frame provides the in-memory columnar table: a named, ordered
// sequence of typed columns sharing one row count.
//
// Missing values (NA) are first-class for every column type and are stored
// in-band as reserved sentinel patterns rather than behind a nullable
// wrapper:
//
//   - Bool columns store int8 values where 0/1 are false/true and
//     math.MinInt8 is NA
//   - Int32/Int64 columns reserve math.MinInt32 / math.MinInt64
//   - Float64 columns use NaN
//   - String columns use a negative end offset in the offsets buffer
//
// None of the sentinels can arise from parsing valid input: the CSV reader
// routes tokens that would collide (e.g. the literal math.MinInt32) to the
// next wider type.
package frame

import "math"

// Type identifies the storage type of a column. The declaration order is
// the promotion order: a value representable at one type is representable
// at every later type.
type Type int8

const (
	// Bool is a three-state boolean (false, true, NA) stored as int8.
	Bool Type = iota
	// Int32 is a 32-bit signed integer.
	Int32
	// Int64 is a 64-bit signed integer.
	Int64
	// Float64 is a double-precision float.
	Float64
	// String is variable-length text stored as offsets into a shared
	// byte buffer.
	String
)

// String returns the lowercase name of the type.
func (t Type) String() string {
	switch t {
	case Bool:
		return "bool"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float64:
		return "float64"
	case String:
		return "string"
	default:
		return "unknown"
	}
}

// NA sentinels for the fixed-width types.
const (
	NABool  = int8(math.MinInt8)
	NAInt32 = int32(math.MinInt32)
	NAInt64 = int64(math.MinInt64)
)

// NAFloat64 returns the missing-value marker for Float64 columns.
func NAFloat64() float64 {
	return math.NaN()
}

// Column is the read surface shared by all column types. Typed access and
// appends are methods on the concrete types.
type Column interface {
	// Name returns the column name.
	Name() string
	// Type returns the storage type.
	Type() Type
	// Len returns the number of rows.
	Len() int
	// IsNA reports whether row i holds the missing-value sentinel.
	IsNA(i int) bool
	// Value returns the value at row i boxed, or nil for NA.
	Value(i int) interface{}
	// AppendFrom appends every row of other, which must have the same
	// concrete type. The reader uses it to concatenate per-chunk buffers
	// in chunk order.
	AppendFrom(other Column) error
}
