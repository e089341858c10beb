package csv

import (
	"os"

	"github.com/tabular-dev/tabular/pkg/compression"
	"github.com/tabular-dev/tabular/pkg/frame"
	"github.com/tabular-dev/tabular/pkg/mmap"
	"github.com/tabular-dev/tabular/pkg/taberrors"
)

// ReadFile reads a CSV file into a table. The file is memory-mapped and
// parsed in place; the resulting table owns all of its memory, so the
// mapping is released before returning. Compressed files (gzip, zstd,
// lz4, s2) are detected by their magic bytes and decompressed before
// parsing, regardless of extension.
func ReadFile(path string, opts ReadOptions) (*frame.Table, error) {
	m, err := mmap.Map(path)
	if err != nil {
		return nil, err
	}
	defer m.Close()

	data, err := compression.Decompress(m.Data())
	if err != nil {
		return nil, err
	}
	return Read(data, opts)
}

// WriteFile serializes a table and writes it to path. The file is
// compressed when the extension names a codec (.gz, .zst, .lz4, .sz).
func WriteFile(path string, t *frame.Table, opts WriteOptions) error {
	data, err := Write(t, opts)
	if err != nil {
		return err
	}
	data, err = compression.Compress(compression.ForExtension(path), data)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return taberrors.Wrap(err, taberrors.ErrorTypeFile, "failed to write file").
			WithDetail("path", path)
	}
	return nil
}
