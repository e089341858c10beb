package csv

import (
	"github.com/tabular-dev/tabular/pkg/pool"
	"github.com/tabular-dev/tabular/pkg/taberrors"
)

// tokenizer splits one chunk's bytes into records of unescaped fields.
// Field bytes for the current record live in an internal buffer that is
// reused on the next call, so callers must consume or convert fields
// before advancing.
type tokenizer struct {
	data  []byte
	pos   int
	base  int // global byte offset of data[0], for error reporting
	line  int // 1-based line number of the current record
	delim byte
	quote byte

	buf    []byte  // unescaped content of the current record
	bounds []int32 // field start/end pairs into buf
	fields [][]byte
}

func newTokenizer(data []byte, base, line int, delim, quote byte) *tokenizer {
	return &tokenizer{
		data:   data,
		base:   base,
		line:   line,
		delim:  delim,
		quote:  quote,
		buf:    pool.GlobalBufferPool.Get(512)[:0],
		bounds: make([]int32, 0, 64),
		fields: pool.GetFields(),
	}
}

// release returns the tokenizer's scratch buffers to their pools. The
// tokenizer must not be used afterwards.
func (z *tokenizer) release() {
	pool.GlobalBufferPool.Put(z.buf[:cap(z.buf)])
	pool.PutFields(z.fields)
	z.buf, z.fields = nil, nil
}

// next returns the fields of the next record, or nil when the chunk is
// exhausted. Blank lines are skipped: the writer never emits them and they
// carry no fields.
func (z *tokenizer) next() ([][]byte, error) {
	for z.pos < len(z.data) {
		if z.data[z.pos] == '\n' {
			z.pos++
			z.line++
			continue
		}
		if z.data[z.pos] == '\r' && z.pos+1 < len(z.data) && z.data[z.pos+1] == '\n' {
			z.pos += 2
			z.line++
			continue
		}
		break
	}
	if z.pos >= len(z.data) {
		return nil, nil
	}

	z.buf = z.buf[:0]
	z.bounds = z.bounds[:0]
	fieldStart := 0
	quotedField := false

	endField := func() {
		end := len(z.buf)
		z.bounds = append(z.bounds, int32(fieldStart), int32(end))
		fieldStart = end
		quotedField = false
	}

	for {
		if z.pos >= len(z.data) {
			// Input ended without a final terminator; the buffered field
			// still belongs to this record.
			endField()
			z.line++
			return z.materialize(), nil
		}

		b := z.data[z.pos]
		switch {
		case b == z.quote:
			if len(z.buf) != fieldStart || quotedField {
				return nil, z.malformed(z.pos, "bare quote inside unquoted field")
			}
			openAt := z.pos
			z.pos++
			closed := false
			for z.pos < len(z.data) {
				c := z.data[z.pos]
				if c == z.quote {
					if z.pos+1 < len(z.data) && z.data[z.pos+1] == z.quote {
						// Doubled quote is a literal quote character.
						z.buf = append(z.buf, z.quote)
						z.pos += 2
						continue
					}
					z.pos++
					closed = true
					break
				}
				if c == '\n' {
					z.line++
				}
				z.buf = append(z.buf, c)
				z.pos++
			}
			if !closed {
				return nil, z.malformed(openAt, "quoted field is not terminated before end of input")
			}
			quotedField = true

		case b == z.delim:
			z.pos++
			endField()

		case b == '\n':
			z.pos++
			z.line++
			endField()
			return z.materialize(), nil

		case b == '\r' && z.pos+1 < len(z.data) && z.data[z.pos+1] == '\n':
			z.pos += 2
			z.line++
			endField()
			return z.materialize(), nil

		default:
			if quotedField {
				return nil, z.malformed(z.pos, "unexpected character after closing quote")
			}
			z.buf = append(z.buf, b)
			z.pos++
		}
	}
}

func (z *tokenizer) materialize() [][]byte {
	n := len(z.bounds) / 2
	if cap(z.fields) < n {
		z.fields = make([][]byte, n)
	}
	z.fields = z.fields[:n]
	for i := 0; i < n; i++ {
		z.fields[i] = z.buf[z.bounds[2*i]:z.bounds[2*i+1]]
	}
	return z.fields
}

func (z *tokenizer) malformed(pos int, msg string) error {
	return taberrors.New(taberrors.ErrorTypeMalformed, msg).
		WithDetail("byte_offset", z.base+pos).
		WithDetail("line", z.line)
}
