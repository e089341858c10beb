package csv

import (
	"errors"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/tabular-dev/tabular/pkg/frame"
	"github.com/tabular-dev/tabular/pkg/metrics"
	stringpool "github.com/tabular-dev/tabular/pkg/strings"
	"github.com/tabular-dev/tabular/pkg/taberrors"
	"github.com/tabular-dev/tabular/pkg/workerpool"
)

// Read parses CSV bytes into a table.
//
// The input is split into line-aligned chunks (one parse task per chunk),
// column types are inferred from a sample, and every chunk is converted
// concurrently into per-chunk column buffers that are concatenated in
// chunk order, so row order always matches the input regardless of which
// worker parsed which chunk. A token that does not fit the inferred type
// widens the column and the parse pass re-runs with the promoted types,
// guaranteeing the same result as single-threaded inference over the whole
// input. Zero-length input yields a zero-row, zero-column table.
func Read(data []byte, opts ReadOptions) (*frame.Table, error) {
	start := time.Now()

	cfg, err := opts.normalize()
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return frame.Empty(), nil
	}

	names, body, bodyOffset, bodyLine, err := splitHeader(data, cfg)
	if err != nil {
		return nil, err
	}
	ncols := len(names)

	chunks, err := detectChunks(body, cfg.quote, cfg.threads, cfg.minChunkBytes)
	if err != nil {
		return nil, shiftOffset(err, bodyOffset, bodyLine-1)
	}

	inf := newInferrer(cfg)
	types := inf.inferTypes(body, bodyOffset, bodyLine, cfg, ncols, cfg.sampleRows)

	results := make([]*chunkResult, len(chunks))
	for pass := 0; ; pass++ {
		tasks := make([]func(), len(chunks))
		for i := range chunks {
			i := i
			ch := chunks[i]
			tasks[i] = func() {
				results[i] = parseChunk(body[ch.start:ch.end], bodyOffset+ch.start,
					bodyLine+ch.line-1, types, cfg, inf)
			}
		}
		workerpool.Default().Do(tasks...)

		// First error by chunk order wins; the work of the remaining
		// tasks is discarded.
		for _, res := range results {
			if res.err != nil {
				return nil, res.err
			}
		}

		promoted := false
		for col := 0; col < ncols; col++ {
			want := types[col]
			for _, res := range results {
				if res.wanted[col] > want {
					want = res.wanted[col]
				}
			}
			if want > types[col] {
				cfg.log.Debug("column type promoted",
					zap.String("column", names[col]),
					zap.String("from", types[col].String()),
					zap.String("to", want.String()))
				metrics.TypePromotions.Inc()
				types[col] = want
				promoted = true
			}
		}
		if !promoted {
			break
		}
		// Widened types invalidate every chunk's buffers for the affected
		// columns; re-running the pass keeps the result identical to a
		// single-threaded parse.
	}

	nrows := 0
	for _, res := range results {
		nrows += res.rows
	}

	cols := make([]frame.Column, ncols)
	for i := 0; i < ncols; i++ {
		col := newColumn(names[i], types[i], nrows)
		for _, res := range results {
			if err := col.AppendFrom(res.cols[i]); err != nil {
				return nil, err
			}
		}
		cols[i] = col
	}

	table, err := frame.NewTable(cols...)
	if err != nil {
		return nil, err
	}

	metrics.ObserveRead(nrows, len(data), time.Since(start))
	cfg.log.Debug("csv read complete",
		zap.Int("rows", nrows),
		zap.Int("columns", ncols),
		zap.Int("chunks", len(chunks)),
		zap.Duration("elapsed", time.Since(start)))

	return table, nil
}

// ReadFrom reads everything from r and parses it with Read.
func ReadFrom(r io.Reader, opts ReadOptions) (*frame.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, taberrors.Wrap(err, taberrors.ErrorTypeFile, "failed to read input")
	}
	return Read(data, opts)
}

// splitHeader consumes the header record (or synthesizes positional names)
// and returns the column names, the data region, and the byte/line offset
// at which it begins.
func splitHeader(data []byte, cfg readConfig) (names []string, body []byte, offset, line int, err error) {
	z := newTokenizer(data, 0, 1, cfg.delim, cfg.quote)
	defer z.release()
	fields, err := z.next()
	if err != nil {
		return nil, nil, 0, 0, err
	}
	if fields == nil {
		return nil, data[len(data):], len(data), 1, nil
	}

	if cfg.header {
		names = make([]string, len(fields))
		for i, f := range fields {
			// The tokenizer reuses its buffers; names must own their bytes.
			names[i] = stringpool.Clone(stringpool.BytesToString(f))
		}
		return names, data[z.pos:], z.pos, z.line, nil
	}

	names = make([]string, len(fields))
	for i := range fields {
		names[i] = stringpool.Sprintf("C%d", i)
	}
	return names, data, 0, 1, nil
}

// chunkResult is the output of one parse task: per-column buffers owned
// exclusively by the task, the number of rows parsed, and any promotion
// the chunk discovered.
type chunkResult struct {
	cols   []frame.Column
	rows   int
	wanted []frame.Type
	err    error
}

// parseChunk tokenizes one chunk and converts every field against the
// inferred types. A token that fails conversion does not abort the chunk:
// the column's target type is widened in wanted and scanning continues so
// one pass can surface every needed promotion.
func parseChunk(data []byte, base, line int, types []frame.Type, cfg readConfig, inf *inferrer) *chunkResult {
	ncols := len(types)
	res := &chunkResult{
		cols:   make([]frame.Column, ncols),
		wanted: make([]frame.Type, ncols),
	}
	copy(res.wanted, types)

	// Rough row estimate to seed buffer capacity.
	estRows := len(data)/(8*ncols+8) + 1
	for i, t := range types {
		res.cols[i] = newColumn("", t, estRows)
	}

	z := newTokenizer(data, base, line, cfg.delim, cfg.quote)
	defer z.release()
	for {
		recLine := z.line
		fields, err := z.next()
		if err != nil {
			res.err = err
			return res
		}
		if fields == nil {
			break
		}

		if len(fields) > ncols {
			res.err = taberrors.Newf(taberrors.ErrorTypeFieldCount,
				"row has %d fields, header has %d", len(fields), ncols).
				WithDetail("line", recLine).
				WithDetail("expected", ncols).
				WithDetail("actual", len(fields))
			return res
		}
		if len(fields) < ncols && !cfg.fillMissing {
			res.err = taberrors.Newf(taberrors.ErrorTypeFieldCount,
				"row has %d fields, header has %d", len(fields), ncols).
				WithDetail("line", recLine).
				WithDetail("expected", ncols).
				WithDetail("actual", len(fields))
			return res
		}

		for i := 0; i < ncols; i++ {
			if i >= len(fields) {
				appendNA(res.cols[i])
				continue
			}
			tok := fields[i]
			if inf.isNA(tok) {
				appendNA(res.cols[i])
				continue
			}
			if !appendToken(res.cols[i], res.wanted[i], tok, inf) {
				// Conversion failed: record the promotion and keep the
				// row count consistent with an NA placeholder. The pass
				// re-runs, so the buffered value is never observed.
				res.wanted[i] = inf.promote(tok, res.wanted[i])
				appendNA(res.cols[i])
			}
		}
		res.rows++
	}

	return res
}

// newColumn creates an empty column of the given type with row capacity.
func newColumn(name string, t frame.Type, capacity int) frame.Column {
	switch t {
	case frame.Bool:
		return frame.EmptyBoolColumn(name, capacity)
	case frame.Int32:
		return frame.EmptyInt32Column(name, capacity)
	case frame.Int64:
		return frame.EmptyInt64Column(name, capacity)
	case frame.Float64:
		return frame.EmptyFloat64Column(name, capacity)
	default:
		return frame.EmptyStringColumn(name, capacity, capacity*8)
	}
}

func appendNA(col frame.Column) {
	switch c := col.(type) {
	case *frame.BoolColumn:
		c.AppendNA()
	case *frame.Int32Column:
		c.AppendNA()
	case *frame.Int64Column:
		c.AppendNA()
	case *frame.Float64Column:
		c.AppendNA()
	case *frame.StringColumn:
		c.AppendNA()
	}
}

// appendToken converts tok to the column's type and appends it, reporting
// whether the conversion succeeded. The wanted type may already be wider
// than the column's buffer type mid-pass; conversions are checked against
// wanted so a chunk discovers the widest promotion it needs in one pass.
func appendToken(col frame.Column, wanted frame.Type, tok []byte, inf *inferrer) bool {
	switch wanted {
	case frame.Bool:
		v, ok := inf.parseBool(tok)
		if !ok {
			return false
		}
		if c, isBool := col.(*frame.BoolColumn); isBool {
			c.Append(v)
		}
		return true
	case frame.Int32:
		v, ok, _ := parseInt(tok)
		if !ok || !fitsInt32(v) {
			return false
		}
		if c, isInt := col.(*frame.Int32Column); isInt {
			c.Append(int32(v))
		}
		return true
	case frame.Int64:
		v, ok, _ := parseInt(tok)
		if !ok || !fitsInt64(v) {
			return false
		}
		if c, isInt := col.(*frame.Int64Column); isInt {
			c.Append(v)
		}
		return true
	case frame.Float64:
		v, ok := parseFloat(tok)
		if !ok {
			return false
		}
		if c, isFloat := col.(*frame.Float64Column); isFloat {
			c.Append(v)
		}
		return true
	default:
		if c, isStr := col.(*frame.StringColumn); isStr {
			c.AppendBytes(tok)
		}
		return true
	}
}

// shiftOffset rebases the byte_offset and line details of a structural
// error detected on the body slice onto the whole input.
func shiftOffset(err error, byteBase, lineBase int) error {
	var e *taberrors.Error
	if !errors.As(err, &e) {
		return err
	}
	if off, ok := e.Detail("byte_offset").(int); ok {
		e.WithDetail("byte_offset", off+byteBase)
	}
	if ln, ok := e.Detail("line").(int); ok {
		e.WithDetail("line", ln+lineBase)
	}
	return e
}
