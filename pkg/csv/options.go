// Package csv implements the multi-threaded CSV engine over the columnar
// table store: Read parses CSV bytes into a frame.Table using parallel
// chunked scanning with type inference, and Write serializes a table back
// to CSV text such that reading the output reproduces the table exactly in
// shape, names, types, and values.
//
// The dialect is comma-delimited RFC 4180-style quoting: fields containing
// the delimiter, the quote character, or a line terminator are wrapped in
// quotes, and a quote inside a quoted field is doubled. Missing values
// render as zero-length fields.
package csv

import (
	"runtime"

	"go.uber.org/zap"

	"github.com/tabular-dev/tabular/pkg/logger"
	"github.com/tabular-dev/tabular/pkg/taberrors"
)

// Inputs below this size parse as a single chunk; splitting smaller
// buffers costs more in coordination than the parallelism returns.
const defaultMinChunkBytes = 1 << 18

// Sample rows fed to type inference before the parallel parse. Tokens past
// the sample that do not fit the inferred type trigger promotion and a
// re-parse, so the sample size affects performance only.
const defaultSampleRows = 200

// Default recognized boolean tokens.
var (
	defaultTrueStrings  = []string{"1", "T", "true", "True", "TRUE"}
	defaultFalseStrings = []string{"0", "F", "false", "False", "FALSE"}
)

// ReadOptions configures Read. The zero value means: comma delimiter,
// double-quote quoting, the empty string as the only NA token, a header
// row, and one thread per available CPU.
type ReadOptions struct {
	// Delimiter is the field separator. Default ','.
	Delimiter byte
	// Quote is the quote character. Default '"'.
	Quote byte
	// NAStrings are the tokens read as missing values. Default: the empty
	// string only.
	NAStrings []string
	// TrueStrings and FalseStrings are the recognized boolean tokens.
	TrueStrings  []string
	FalseStrings []string
	// NoHeader indicates the first row is data; columns are named
	// positionally (C0, C1, ...).
	NoHeader bool
	// FillMissing fills missing trailing fields with NA instead of
	// failing the read. Extra fields fail regardless.
	FillMissing bool
	// Threads is the maximum number of parse chunks. 0 means the host's
	// available parallelism.
	Threads int
	// Logger overrides the global logger.
	Logger *zap.Logger

	// minChunkBytes overrides the single-chunk threshold; tests use it to
	// force multi-chunk parsing on small inputs.
	minChunkBytes int
	// sampleRows overrides the inference sample size.
	sampleRows int
}

// WriteOptions configures Write. The zero value means: comma delimiter,
// double-quote quoting, "\n" terminator, one thread per available CPU.
type WriteOptions struct {
	// Delimiter is the field separator. Default ','.
	Delimiter byte
	// Quote is the quote character. Default '"'.
	Quote byte
	// LineTerminator ends every row, including the last. Default "\n".
	LineTerminator string
	// Threads is the maximum number of writer row ranges. 0 means the
	// host's available parallelism.
	Threads int
	// Logger overrides the global logger.
	Logger *zap.Logger
}

type readConfig struct {
	delim         byte
	quote         byte
	na            map[string]struct{}
	boolTrue      map[string]struct{}
	boolFalse     map[string]struct{}
	header        bool
	fillMissing   bool
	threads       int
	minChunkBytes int
	sampleRows    int
	log           *zap.Logger
}

type writeConfig struct {
	delim      byte
	quote      byte
	terminator string
	threads    int
	log        *zap.Logger
}

func (o ReadOptions) normalize() (readConfig, error) {
	cfg := readConfig{
		delim:         o.Delimiter,
		quote:         o.Quote,
		header:        !o.NoHeader,
		fillMissing:   o.FillMissing,
		threads:       o.Threads,
		minChunkBytes: o.minChunkBytes,
		sampleRows:    o.sampleRows,
		log:           o.Logger,
	}
	if cfg.delim == 0 {
		cfg.delim = ','
	}
	if cfg.quote == 0 {
		cfg.quote = '"'
	}
	if cfg.threads <= 0 {
		cfg.threads = runtime.GOMAXPROCS(0)
	}
	if cfg.minChunkBytes <= 0 {
		cfg.minChunkBytes = defaultMinChunkBytes
	}
	if cfg.sampleRows <= 0 {
		cfg.sampleRows = defaultSampleRows
	}
	if cfg.log == nil {
		cfg.log = logger.Get()
	}

	if cfg.delim == cfg.quote {
		return cfg, taberrors.New(taberrors.ErrorTypeConfig,
			"delimiter and quote character must differ")
	}
	if cfg.delim == '\n' || cfg.delim == '\r' || cfg.quote == '\n' || cfg.quote == '\r' {
		return cfg, taberrors.New(taberrors.ErrorTypeConfig,
			"delimiter and quote character cannot be line terminators")
	}

	na := o.NAStrings
	if na == nil {
		na = []string{""}
	}
	cfg.na = make(map[string]struct{}, len(na))
	for _, s := range na {
		cfg.na[s] = struct{}{}
	}

	trues := o.TrueStrings
	if trues == nil {
		trues = defaultTrueStrings
	}
	falses := o.FalseStrings
	if falses == nil {
		falses = defaultFalseStrings
	}
	cfg.boolTrue = make(map[string]struct{}, len(trues))
	for _, s := range trues {
		cfg.boolTrue[s] = struct{}{}
	}
	cfg.boolFalse = make(map[string]struct{}, len(falses))
	for _, s := range falses {
		cfg.boolFalse[s] = struct{}{}
	}

	return cfg, nil
}

func (o WriteOptions) normalize() (writeConfig, error) {
	cfg := writeConfig{
		delim:      o.Delimiter,
		quote:      o.Quote,
		terminator: o.LineTerminator,
		threads:    o.Threads,
		log:        o.Logger,
	}
	if cfg.delim == 0 {
		cfg.delim = ','
	}
	if cfg.quote == 0 {
		cfg.quote = '"'
	}
	if cfg.terminator == "" {
		cfg.terminator = "\n"
	}
	if cfg.threads <= 0 {
		cfg.threads = runtime.GOMAXPROCS(0)
	}
	if cfg.log == nil {
		cfg.log = logger.Get()
	}

	if cfg.delim == cfg.quote {
		return cfg, taberrors.New(taberrors.ErrorTypeConfig,
			"delimiter and quote character must differ")
	}
	if cfg.terminator != "\n" && cfg.terminator != "\r\n" {
		return cfg, taberrors.Newf(taberrors.ErrorTypeConfig,
			"unsupported line terminator %q", cfg.terminator)
	}

	return cfg, nil
}
