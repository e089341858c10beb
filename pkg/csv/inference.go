package csv

import (
	"math"
	"strconv"

	"github.com/tabular-dev/tabular/pkg/frame"
	stringpool "github.com/tabular-dev/tabular/pkg/strings"
)

// inferrer classifies text tokens against the type order
// Bool < Int32 < Int64 < Float64 < String and determines the narrowest
// sufficient type for a column. An NA token is compatible with every type.
type inferrer struct {
	na        map[string]struct{}
	boolTrue  map[string]struct{}
	boolFalse map[string]struct{}
}

func newInferrer(cfg readConfig) *inferrer {
	return &inferrer{
		na:        cfg.na,
		boolTrue:  cfg.boolTrue,
		boolFalse: cfg.boolFalse,
	}
}

func (f *inferrer) isNA(tok []byte) bool {
	_, ok := f.na[string(tok)]
	return ok
}

// parseBool resolves tok against the recognized boolean token sets.
func (f *inferrer) parseBool(tok []byte) (value, ok bool) {
	if _, hit := f.boolTrue[string(tok)]; hit {
		return true, true
	}
	if _, hit := f.boolFalse[string(tok)]; hit {
		return false, true
	}
	return false, false
}

// parseInt parses a decimal integer with an optional sign. It rejects
// empty digits and leading zeros (other than "0" itself), which must stay
// textual to survive a round trip, and reports overflow distinctly so the
// caller can widen instead of falling back to String.
func parseInt(tok []byte) (v int64, ok, overflow bool) {
	i := 0
	neg := false
	if len(tok) > 0 && (tok[0] == '-' || tok[0] == '+') {
		neg = tok[0] == '-'
		i = 1
	}
	if i >= len(tok) {
		return 0, false, false
	}
	if tok[i] == '0' && len(tok)-i > 1 {
		return 0, false, false
	}
	const cutoff = math.MaxInt64/10 + 1
	var u uint64
	for ; i < len(tok); i++ {
		c := tok[i]
		if c < '0' || c > '9' {
			return 0, false, false
		}
		if u >= cutoff {
			return 0, false, true
		}
		u = u*10 + uint64(c-'0')
	}
	if neg {
		if u > math.MaxInt64 {
			return 0, false, true
		}
		v = -int64(u)
	} else {
		if u > math.MaxInt64 {
			return 0, false, true
		}
		v = int64(u)
	}
	return v, true, false
}

// fitsInt32 excludes the NA sentinel along with out-of-range values.
func fitsInt32(v int64) bool {
	return v > math.MinInt32 && v <= math.MaxInt32
}

// fitsInt64 excludes the NA sentinel.
func fitsInt64(v int64) bool {
	return v != math.MinInt64
}

// leadingZero reports whether tok starts, after an optional sign, with a
// zero that has more characters behind it ("007", "+01", "0x...").
func leadingZero(tok []byte) bool {
	i := 0
	if len(tok) > 0 && (tok[0] == '-' || tok[0] == '+') {
		i = 1
	}
	return len(tok)-i > 1 && tok[i] == '0'
}

// parseFloat accepts decimal and exponential forms only. Hex floats,
// "inf", and "nan" are rejected: the writer never emits them and the NA
// sentinel must not be forgeable from text. Integral tokens with leading
// zeros are rejected too; they must stay textual, same as in parseInt,
// or a round trip would rewrite "007" as "7.0".
func parseFloat(tok []byte) (float64, bool) {
	digits := false
	integral := true
	for _, c := range tok {
		switch {
		case c >= '0' && c <= '9':
			digits = true
		case c == '.' || c == 'e' || c == 'E':
			integral = false
		case c == '+' || c == '-':
		default:
			return 0, false
		}
	}
	if !digits {
		return 0, false
	}
	if integral && leadingZero(tok) {
		return 0, false
	}
	v, err := strconv.ParseFloat(stringpool.BytesToString(tok), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// classify returns the narrowest type that losslessly represents tok.
// NA tokens classify as Bool, the bottom of the order.
func (f *inferrer) classify(tok []byte) frame.Type {
	if f.isNA(tok) {
		return frame.Bool
	}
	if _, ok := f.parseBool(tok); ok {
		return frame.Bool
	}
	if v, ok, overflow := parseInt(tok); ok {
		if fitsInt32(v) {
			return frame.Int32
		}
		if fitsInt64(v) {
			return frame.Int64
		}
		return frame.Float64
	} else if overflow {
		if _, ok := parseFloat(tok); ok {
			return frame.Float64
		}
		return frame.String
	}
	if _, ok := parseFloat(tok); ok {
		return frame.Float64
	}
	return frame.String
}

// compatible reports whether tok can be converted to type t.
func (f *inferrer) compatible(tok []byte, t frame.Type) bool {
	if t == frame.String {
		return true
	}
	if f.isNA(tok) {
		return true
	}
	switch t {
	case frame.Bool:
		_, ok := f.parseBool(tok)
		return ok
	case frame.Int32:
		v, ok, _ := parseInt(tok)
		return ok && fitsInt32(v)
	case frame.Int64:
		v, ok, _ := parseInt(tok)
		return ok && fitsInt64(v)
	case frame.Float64:
		_, ok := parseFloat(tok)
		return ok
	default:
		return false
	}
}

// promote returns the narrowest type at or above current that can
// represent tok. String accepts everything, so the loop always terminates.
func (f *inferrer) promote(tok []byte, current frame.Type) frame.Type {
	for t := current; t < frame.String; t++ {
		if f.compatible(tok, t) {
			return t
		}
	}
	return frame.String
}

// inferTypes samples up to maxRows records from the start of body and
// returns the narrowest type per column. Columns whose sampled tokens are
// all NA stay at Bool, the bottom of the order. Structural errors are left
// for the parse phase, which reports them with full positional context.
func (f *inferrer) inferTypes(body []byte, base, line int, cfg readConfig, ncols, maxRows int) []frame.Type {
	types := make([]frame.Type, ncols)

	z := newTokenizer(body, base, line, cfg.delim, cfg.quote)
	defer z.release()
	for row := 0; row < maxRows; row++ {
		fields, err := z.next()
		if err != nil || fields == nil {
			break
		}
		for i, tok := range fields {
			if i >= ncols {
				break
			}
			if t := f.classify(tok); t > types[i] {
				types[i] = t
			}
		}
	}

	return types
}
