// Package tabular provides a multi-threaded CSV engine over an immutable
// columnar table store.
//
// Reading splits the input into line-aligned chunks, infers column types
// from a sample, and parses every chunk concurrently; a value that does
// not fit the inferred type widens the column and triggers a re-parse, so
// the result is always identical to a single-threaded pass. Writing
// serializes contiguous row ranges concurrently and concatenates them in
// order.
//
// # Quick Start
//
//	import (
//	    "github.com/tabular-dev/tabular/pkg/csv"
//	)
//
//	table, err := csv.ReadFile("data.csv.gz", csv.ReadOptions{})
//	if err != nil {
//	    return err
//	}
//	err = csv.WriteFile("out.csv", table, csv.WriteOptions{})
//
// # Key Packages
//
//	pkg/csv         - Parallel CSV reader and writer
//	pkg/frame       - Columnar table store with sentinel-encoded NAs
//	pkg/compression - Gzip/Zstd/LZ4/S2 codecs for the file layer
//	pkg/mmap        - Zero-copy memory-mapped input
//	pkg/workerpool  - Process-wide worker pool backing the parallel phases
//	pkg/taberrors   - Structured error handling
//	pkg/logger      - Structured logging
//	pkg/metrics     - Prometheus collectors
//	pkg/config      - YAML configuration for the engine and CLI
//
// # Types and Missing Values
//
// Columns are one of five types, ordered Bool < Int32 < Int64 < Float64 <
// String. Missing values are stored in-band: the minimum value of each
// integer width, NaN for floats, and a negative length for strings.
// Values that would collide with a sentinel are parsed into the next
// wider type, so a round trip through CSV preserves every table exactly.
package tabular
