// Package strings provides high-performance, zero-copy string utilities with pooling for tabular
package strings

import (
	"fmt"
	"strconv"
	"unsafe"
)

// BytesToString converts byte slice to string without allocation.
// WARNING: The returned string shares memory with the byte slice.
// Do not modify the byte slice after calling this function.
func BytesToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// StringToBytes converts string to byte slice without allocation.
// WARNING: The returned byte slice shares memory with the string.
// Do not modify the returned slice.
func StringToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// Builder provides efficient string building backed by a single byte buffer.
// Unlike strings.Builder it exposes its bytes for direct copying, which the
// CSV writer uses to assemble per-range output without a second copy.
type Builder struct {
	buf []byte
}

// NewBuilder creates a new builder with the given initial capacity.
func NewBuilder(capacity int) *Builder {
	return &Builder{
		buf: make([]byte, 0, capacity),
	}
}

// WriteString appends a string to the builder.
func (b *Builder) WriteString(s string) {
	b.buf = append(b.buf, s...)
}

// WriteBytes appends bytes to the builder.
func (b *Builder) WriteBytes(data []byte) {
	b.buf = append(b.buf, data...)
}

// WriteByte appends a single byte.
func (b *Builder) WriteByte(c byte) {
	b.buf = append(b.buf, c)
}

// WriteInt appends the decimal representation of v.
func (b *Builder) WriteInt(v int64) {
	b.buf = strconv.AppendInt(b.buf, v, 10)
}

// WriteFloat appends the shortest representation of v that parses back
// to the same float64.
func (b *Builder) WriteFloat(v float64) {
	b.buf = strconv.AppendFloat(b.buf, v, 'g', -1, 64)
}

// Write implements io.Writer.
func (b *Builder) Write(p []byte) (n int, err error) {
	b.buf = append(b.buf, p...)
	return len(p), nil
}

// String returns the built string using zero-copy conversion.
func (b *Builder) String() string {
	return BytesToString(b.buf)
}

// Bytes returns the underlying byte slice.
func (b *Builder) Bytes() []byte {
	return b.buf
}

// Len returns the length of the built string.
func (b *Builder) Len() int {
	return len(b.buf)
}

// Cap returns the capacity of the underlying buffer.
func (b *Builder) Cap() int {
	return cap(b.buf)
}

// Reset resets the builder for reuse.
func (b *Builder) Reset() {
	b.buf = b.buf[:0]
}

// Grow ensures the buffer has room for at least n more bytes.
func (b *Builder) Grow(n int) {
	if cap(b.buf)-len(b.buf) < n {
		newSize := len(b.buf) + 2*cap(b.buf) + n
		newBuf := make([]byte, len(b.buf), newSize)
		copy(newBuf, b.buf)
		b.buf = newBuf
	}
}

// Pool manages a pool of string builders.
type Pool struct {
	builders chan *Builder
	capacity int
}

// NewPool creates a new builder pool, pre-populated with poolSize
// builders of builderCapacity bytes each.
func NewPool(poolSize, builderCapacity int) *Pool {
	p := &Pool{
		builders: make(chan *Builder, poolSize),
		capacity: builderCapacity,
	}

	for i := 0; i < poolSize; i++ {
		p.builders <- NewBuilder(builderCapacity)
	}

	return p
}

// Get retrieves a builder from the pool, allocating if the pool is empty.
func (p *Pool) Get() *Builder {
	select {
	case builder := <-p.builders:
		return builder
	default:
		return NewBuilder(p.capacity)
	}
}

// Put returns a builder to the pool. Full pools drop the builder.
func (p *Pool) Put(builder *Builder) {
	builder.Reset()
	select {
	case p.builders <- builder:
	default:
	}
}

// Clone creates a copy of a string (useful when you need to own the memory).
func Clone(s string) string {
	if len(s) == 0 {
		return ""
	}
	b := make([]byte, len(s))
	copy(b, StringToBytes(s))
	return BytesToString(b)
}

// defaultPool backs Sprintf and Concat.
var defaultPool = NewPool(32, 256)

// Sprintf formats using a pooled builder for short results.
func Sprintf(format string, args ...interface{}) string {
	b := defaultPool.Get()
	fmt.Fprintf(b, format, args...)
	s := string(b.buf)
	defaultPool.Put(b)
	return s
}

// Concat joins strings with no delimiter using a pooled builder.
func Concat(parts ...string) string {
	b := defaultPool.Get()
	for _, s := range parts {
		b.WriteString(s)
	}
	s := string(b.buf)
	defaultPool.Put(b)
	return s
}
