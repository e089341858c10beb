package csv

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/tabular-dev/tabular/pkg/frame"
	"github.com/tabular-dev/tabular/pkg/metrics"
	stringpool "github.com/tabular-dev/tabular/pkg/strings"
	"github.com/tabular-dev/tabular/pkg/workerpool"
)

// Write serializes a table to CSV bytes.
//
// Rows are split into contiguous ranges, one serialization task per range,
// and the per-range buffers are concatenated in range order so the output
// row order always matches the table. Every row, including the last, is
// terminated. NA values render as empty fields; booleans render as 1 and 0;
// floats render in shortest round-trip form with a ".0" suffix when the
// value is integral, so a written Float64 column reads back as Float64.
// A zero-column table serializes to zero bytes.
func Write(t *frame.Table, opts WriteOptions) ([]byte, error) {
	start := time.Now()

	cfg, err := opts.normalize()
	if err != nil {
		return nil, err
	}

	ncols := t.NumCols()
	if ncols == 0 {
		return []byte{}, nil
	}
	nrows := t.NumRows()

	var header stringpool.Builder
	for i, name := range t.Names() {
		if i > 0 {
			header.WriteByte(cfg.delim)
		}
		writeString(&header, name, cfg)
	}
	header.WriteString(cfg.terminator)

	nparts := cfg.threads
	if nparts > nrows {
		nparts = nrows
	}
	if nparts < 1 {
		nparts = 1
	}

	parts := make([]*stringpool.Builder, nparts)
	tasks := make([]func(), nparts)
	for p := 0; p < nparts; p++ {
		p := p
		lo := p * nrows / nparts
		hi := (p + 1) * nrows / nparts
		tasks[p] = func() {
			parts[p] = writeRows(t, lo, hi, cfg)
		}
	}
	workerpool.Default().Do(tasks...)

	total := header.Len()
	for _, part := range parts {
		total += part.Len()
	}
	out := make([]byte, 0, total)
	out = append(out, header.Bytes()...)
	for _, part := range parts {
		out = append(out, part.Bytes()...)
	}

	metrics.ObserveWrite(nrows, len(out), time.Since(start))
	cfg.log.Debug("csv write complete",
		zap.Int("rows", nrows),
		zap.Int("columns", ncols),
		zap.Int("bytes", len(out)),
		zap.Duration("elapsed", time.Since(start)))

	return out, nil
}

// writeRows serializes the half-open row range [lo, hi) into its own buffer.
func writeRows(t *frame.Table, lo, hi int, cfg writeConfig) *stringpool.Builder {
	b := &stringpool.Builder{}
	// Rough estimate: 8 bytes per field plus delimiters.
	b.Grow((hi - lo) * t.NumCols() * 9)

	ncols := t.NumCols()
	cols := make([]frame.Column, ncols)
	for i := 0; i < ncols; i++ {
		cols[i] = t.ColumnAt(i)
	}

	for row := lo; row < hi; row++ {
		for i, col := range cols {
			if i > 0 {
				b.WriteByte(cfg.delim)
			}
			writeField(b, col, row, cfg)
		}
		b.WriteString(cfg.terminator)
	}
	return b
}

func writeField(b *stringpool.Builder, col frame.Column, row int, cfg writeConfig) {
	if col.IsNA(row) {
		return
	}
	switch c := col.(type) {
	case *frame.BoolColumn:
		v, _ := c.Bool(row)
		if v {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	case *frame.Int32Column:
		v, _ := c.Int32(row)
		b.WriteInt(int64(v))
	case *frame.Int64Column:
		v, _ := c.Int64(row)
		b.WriteInt(v)
	case *frame.Float64Column:
		v, _ := c.Float64(row)
		writeFloat(b, v)
	case *frame.StringColumn:
		v, _ := c.Str(row)
		writeString(b, v, cfg)
	}
}

// writeFloat renders v in shortest round-trip form and appends ".0" when
// the rendering carries no fractional or exponent part, so the value still
// reads back as a float rather than an integer.
func writeFloat(b *stringpool.Builder, v float64) {
	mark := b.Len()
	b.WriteFloat(v)
	if math.IsInf(v, 0) {
		return
	}
	for _, c := range b.Bytes()[mark:] {
		if c == '.' || c == 'e' || c == 'E' {
			return
		}
	}
	b.WriteString(".0")
}

// writeString quotes s when it contains the delimiter, the quote character,
// or a line break, doubling embedded quotes.
func writeString(b *stringpool.Builder, s string, cfg writeConfig) {
	if !needsQuoting(s, cfg) {
		b.WriteString(s)
		return
	}
	b.WriteByte(cfg.quote)
	for i := 0; i < len(s); i++ {
		if s[i] == cfg.quote {
			b.WriteByte(cfg.quote)
		}
		b.WriteByte(s[i])
	}
	b.WriteByte(cfg.quote)
}

func needsQuoting(s string, cfg writeConfig) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case cfg.delim, cfg.quote, '\n', '\r':
			return true
		}
	}
	return false
}
