package csv

import (
	"github.com/tabular-dev/tabular/pkg/taberrors"
)

// chunk is a contiguous, line-aligned byte range of the input assigned to
// one parse task, plus the 1-based line number at which the range begins.
// Chunks never escape the read call that created them.
type chunk struct {
	start int
	end   int
	line  int
}

// detectChunks partitions data into at most maxChunks contiguous ranges
// covering [0, len(data)) such that every boundary falls immediately after
// an unquoted newline. It makes a single pass tracking quote parity, so a
// boundary can never land inside a quoted field, and an LF is always the
// last byte of its terminator, so no boundary splits a CRLF pair.
//
// Inputs smaller than minChunkBytes collapse to a single chunk; otherwise
// the chunk count is capped so each chunk spans at least minChunkBytes.
// An unterminated quote at EOF is a malformed-input error carrying the
// byte offset of the opening quote.
func detectChunks(data []byte, quote byte, maxChunks, minChunkBytes int) ([]chunk, error) {
	total := len(data)
	if total == 0 {
		return nil, nil
	}

	nchunks := maxChunks
	if limit := total / minChunkBytes; nchunks > limit {
		nchunks = limit
	}
	if nchunks < 1 {
		nchunks = 1
	}

	chunks := make([]chunk, 0, nchunks)
	prev := 0
	prevLine := 1
	line := 1

	inQuotes := false
	openAt := 0
	next := 1
	target := total * next / nchunks

	for pos := 0; pos < total; pos++ {
		switch data[pos] {
		case quote:
			inQuotes = !inQuotes
			if inQuotes {
				openAt = pos
			}
		case '\n':
			if inQuotes {
				line++
				continue
			}
			line++
			if next < nchunks && pos+1 >= target && pos+1 < total {
				chunks = append(chunks, chunk{start: prev, end: pos + 1, line: prevLine})
				prev = pos + 1
				prevLine = line
				next++
				target = total * next / nchunks
				// Long lines can overrun several candidate split points
				// at once.
				for next < nchunks && target <= pos+1 {
					next++
					target = total * next / nchunks
				}
			}
		}
	}

	if inQuotes {
		return nil, taberrors.New(taberrors.ErrorTypeMalformed,
			"quoted field is not terminated before end of input").
			WithDetail("byte_offset", openAt)
	}

	chunks = append(chunks, chunk{start: prev, end: total, line: prevLine})
	return chunks, nil
}
